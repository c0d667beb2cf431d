// Package main provides the report command that computes campaign metrics for a filter and prints a signed markdown report.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"influencerdash/internal/api"
	"influencerdash/internal/config"
	"influencerdash/internal/formatter"
	"influencerdash/internal/loader"
	"influencerdash/internal/logger"
	"influencerdash/internal/metrics"
	"influencerdash/internal/normalizer"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dataDir := flag.String("data-dir", "", "Directory holding the four CSV files (overrides config)")
	outputPath := flag.String("output", "", "Write the report to this file instead of stdout")
	asJSON := flag.Bool("json", false, "Print the metrics result as JSON instead of markdown")
	currency := flag.String("currency", formatter.DefaultCurrency, "Currency symbol used in the report")

	// Filters
	platform := flag.String("platform", "", "Comma separated platforms (default: all)")
	product := flag.String("product", "", "Comma separated products (default: all)")
	campaign := flag.String("campaign", "", "Comma separated campaigns (default: all)")
	category := flag.String("category", "", "Comma separated influencer categories (default: all)")
	gender := flag.String("gender", "", "Comma separated genders (default: all)")
	followersMin := flag.Int64("followers-min", -1, "Minimum follower count")
	followersMax := flag.Int64("followers-max", -1, "Maximum follower count")
	from := flag.String("from", "", "Start date YYYY-MM-DD (inclusive)")
	to := flag.String("to", "", "End date YYYY-MM-DD (inclusive)")
	baseline := flag.String("baseline", "", "Baseline revenue for iROAS (overrides config)")
	topN := flag.Int("top-n", 0, "Number of influencers in ranked insights (overrides config)")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if *dataDir != "" {
		cfg.Data.BaseDir = *dataDir
	}

	log := logger.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}

	set("platform", *platform)
	set("product", *product)
	set("campaign", *campaign)
	set("category", *category)
	set("gender", *gender)
	set("from", *from)
	set("to", *to)
	set("baseline_revenue", *baseline)

	if *followersMin >= 0 {
		q.Set("followers_min", strconv.FormatInt(*followersMin, 10))
	}

	if *followersMax >= 0 {
		q.Set("followers_max", strconv.FormatInt(*followersMax, 10))
	}

	if *topN > 0 {
		q.Set("top_n", strconv.Itoa(*topN))
	}

	req, err := api.ParseQuery(q)
	if err != nil {
		log.Error("invalid filter", "error", err)
		os.Exit(2)
	}

	filter, opts, err := req.Resolve(metrics.Options{
		BaselineRevenue:   cfg.Metrics.Baseline(),
		PoorROASThreshold: cfg.Metrics.PoorThreshold(),
		TopN:              cfg.Metrics.TopN,
	})
	if err != nil {
		log.Error("invalid filter", "error", err)
		os.Exit(2)
	}

	// Phase 1: load and normalize
	session, err := loader.Open(cfg, log)
	if err != nil {
		var cfgErr *normalizer.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "❌ Cannot build the dashboard: %s file %s: %v\n", cfgErr.Table, cfgErr.Path, cfgErr.Err)
		} else {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}

		os.Exit(1)
	}

	for _, issue := range session.Issues {
		log.Debug("row issue", "table", issue.Table, "row", issue.Row, "field", issue.Field, "value", issue.Value, "problem", issue.Problem)
	}

	if !session.Quality.IsValid {
		log.Warn("dataset has integrity errors", "errors", len(session.Quality.Errors))
	}

	// Phase 2: compute
	res := metrics.Compute(session.Dataset, filter, opts)

	log.Info("metrics computed",
		"revenue", res.Headline.TotalRevenue.StringFixed(2),
		"orders", res.Headline.TotalOrders,
		"influencers", len(res.Influencers),
	)

	// Phase 3: render
	var out []byte

	if *asJSON {
		out, err = json.MarshalIndent(res, "", "  ")
		if err != nil {
			log.Error("failed to encode result", "error", err)
			os.Exit(1)
		}

		out = append(out, '\n')
	} else {
		out = []byte(formatter.Render(&formatter.Report{
			Result:   res,
			Quality:  session.Quality,
			Currency: *currency,
		}) + "\n")
	}

	if *outputPath == "" {
		_, _ = os.Stdout.Write(out)
		return
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(*outputPath), 0755); mkdirErr != nil {
		log.Error("failed to create output directory", "error", mkdirErr)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputPath, out, 0644); err != nil {
		log.Error("failed to write report", "error", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Saved to: %s\n", *outputPath)
}
