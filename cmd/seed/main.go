package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"time"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/events"
	"weather-dashboard/internal/location"
	"weather-dashboard/internal/storage"
	"weather-dashboard/pkg/graceful"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the locations table before seeding")
	limit := flag.Int("limit", 0, "insert at most this many cities, 0 for all")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger, *reset, *limit); err != nil {
		logger.Error("seed failed", "error", err)
		log.Fatal(err)
	}
}

func run(cfg *config.Config, logger *slog.Logger, reset bool, limit int) error {
	ctx, cancel := graceful.Context(context.Background(), logger)
	defer cancel()
	start := time.Now()

	store, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to open location store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if reset {
		if err := store.Reset(ctx); err != nil {
			return err
		}
	}

	cities, err := catalog.Load(ctx, cfg.Catalog, logger)
	if err != nil {
		return fmt.Errorf("failed to load city catalog: %w", err)
	}

	publisher := events.NewPublisher(cfg.Events, logger)
	defer func() { _ = publisher.Close() }()

	svc := location.NewLocationService(cfg, store, publisher, logger)
	result, err := seed(ctx, svc, cities.Search("", limit), logger)
	if err != nil {
		return err
	}

	logger.Info("seeding finished",
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"took", time.Since(start),
	)
	return nil
}
