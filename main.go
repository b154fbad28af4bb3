package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"listing-profiler/config"
	"listing-profiler/models"
	"listing-profiler/services"
	"listing-profiler/storage"
	"listing-profiler/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger()
	if cfg.LogLevel != "" {
		logger = utils.NewLoggerWithLevel(cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("=== Listing Profiler starting ===")
	logger.Info("Config: source %s | price ceiling %.0f | charts %s (%s)",
		cfg.Source, cfg.PriceCeiling, cfg.ChartOutputDir, cfg.ChartFormat)

	reader, err := newReader(cfg, logger)
	if err != nil {
		logger.Error("Invalid source configuration: %v", err)
		os.Exit(1)
	}

	listings, err := reader.Read(ctx)
	if err != nil {
		logger.Error("Failed to load listings: %v", err)
		os.Exit(1)
	}
	if listings.Len() == 0 {
		logger.Error("Dataset is empty. Exiting.")
		os.Exit(1)
	}

	profiler, err := services.NewProfiler(cfg, logger, os.Stdout)
	if err != nil {
		logger.Error("Failed to set up profiler: %v", err)
		os.Exit(1)
	}

	res, err := profiler.Run(ctx, listings)
	if err != nil {
		logger.Error("Profiling failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("  Done. %d charts -> %s | report -> %s\n\n", len(res.Charts), cfg.ChartOutputDir, res.ReportPath)
}

// newReader picks the listings source named by DATASET_SOURCE.
func newReader(cfg *config.Config, logger *utils.Logger) (storage.TableReader, error) {
	switch cfg.Source {
	case "", "csv":
		policy, err := storage.ParseEncodingPolicy(cfg.EncodingErrors)
		if err != nil {
			return nil, err
		}
		r := storage.NewCSVReader(cfg.DatasetPath, policy, models.ListingSchema(), logger)
		r.Delimiter = cfg.CSVDelimiter
		r.Charset = cfg.Charset
		return r, nil
	case "postgres", "sqlite":
		return storage.NewSQLReader(cfg.Source, cfg.DSN(), cfg.SourceQuery, models.ListingSchema(), logger, cfg.MaxRetries)
	}
	return nil, fmt.Errorf("unknown DATASET_SOURCE %q (want csv, postgres or sqlite)", cfg.Source)
}
