// Package main provides the validate command that checks the input files and verifies saved reports.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"influencerdash/internal/config"
	"influencerdash/internal/loader"
	"influencerdash/internal/logger"
	"influencerdash/internal/normalizer"
	"influencerdash/pkg/metadata"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dataDir := flag.String("data-dir", "", "Directory holding the four CSV files (overrides config)")
	verify := flag.String("verify", "", "Verify the signature of a saved report instead of checking data")
	strict := flag.Bool("strict", false, "Exit non-zero on integrity errors")

	flag.Parse()

	if *verify != "" {
		os.Exit(verifyReport(*verify))
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	if *dataDir != "" {
		cfg.Data.BaseDir = *dataDir
	}

	log := logger.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	session, err := loader.Open(cfg, log)
	if err != nil {
		var cfgErr *normalizer.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Printf("❌ Configuration error in %s (%s): %v\n", cfgErr.Table, cfgErr.Path, cfgErr.Err)
		} else {
			fmt.Printf("❌ %v\n", err)
		}

		os.Exit(1)
	}

	fmt.Println("📂 Input files")

	for _, t := range session.Tables {
		fmt.Printf("  - %-12s %s (%d rows, %d bytes)\n", t.Table, t.Path, t.Rows, t.Size)
	}

	fmt.Printf("\n🔍 Row issues: %d\n", len(session.Issues))

	for _, issue := range session.Issues {
		fmt.Printf("  - %s\n", issue)
	}

	q := session.Quality
	fmt.Printf("\n📊 Integrity: %d errors, %d warnings over %d rows\n", len(q.Errors), len(q.Warnings), q.Stats.TotalRows)

	for _, e := range q.Errors {
		fmt.Printf("  ❌ %s\n", e)
	}

	for _, w := range q.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}

	if q.IsValid {
		fmt.Println("\n✅ Dataset is valid")
		return
	}

	fmt.Println("\n⚠️  Dataset has integrity errors; affected rows are left out of every metric")

	if *strict {
		os.Exit(1)
	}
}

func verifyReport(path string) int {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ Error reading file: %v\n", err)
		return 1
	}

	fmt.Printf("📂 Reading: %s (%d bytes)\n", path, len(content))

	meta, err := metadata.Verify(string(content))
	if err != nil {
		fmt.Printf("❌ Verification failed: %v\n", err)
		return 1
	}

	fmt.Printf("✅ Signature valid\n")
	fmt.Printf("   Report ID:    %s\n", meta.ReportID)
	fmt.Printf("   Generated at: %s\n", meta.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("   Validation:   %t\n", meta.Validation)

	return 0
}
