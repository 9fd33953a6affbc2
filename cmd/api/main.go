package main

import (
	"context"
	"log"
	"log/slog"

	"weather-dashboard/internal/config"
	"weather-dashboard/pkg/graceful"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := graceful.Context(context.Background(), logger)
	defer cancel()

	// Create app
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to release resources", "error", err)
		}
	}()

	// Start server
	return app.Run(ctx, cfg.GetServerAddr())
}
