// Package main provides the dashboard command that serves campaign metrics over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"influencerdash/internal/api"
	"influencerdash/internal/config"
	"influencerdash/internal/loader"
	"influencerdash/internal/logger"
	"influencerdash/internal/metrics"
	"influencerdash/internal/normalizer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	dataDir := flag.String("data-dir", "", "Directory holding the four CSV files (overrides config)")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if *dataDir != "" {
		cfg.Data.BaseDir = *dataDir
	}

	log := logger.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	log.Info("🚀 Starting dashboard", "config", cfg.String())

	// The dataset is loaded once; a configuration error means no partial dashboard.
	session, err := loader.Open(cfg, log)
	if err != nil {
		var cfgErr *normalizer.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Error("❌ cannot start dashboard", "table", cfgErr.Table, "path", cfgErr.Path, "error", cfgErr.Err)
		} else {
			log.Error("❌ cannot start dashboard", "error", err)
		}

		os.Exit(1)
	}

	handler := api.NewHandler(session, metrics.Options{
		BaselineRevenue:   cfg.Metrics.Baseline(),
		PoorROASThreshold: cfg.Metrics.PoorThreshold(),
		TopN:              cfg.Metrics.TopN,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handler),
		ReadTimeout:       cfg.Server.ReadTimeout(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
		WriteTimeout:      cfg.Server.WriteTimeout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		log.Info("✅ Listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}
}
