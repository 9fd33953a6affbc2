package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/config"
	"weather-dashboard/internal/dashboard"
	"weather-dashboard/internal/events"
	"weather-dashboard/internal/location"
	"weather-dashboard/internal/storage"
	"weather-dashboard/internal/weather"
)

const defaultShutdownTimeout = 10 * time.Second

// App encapsulates application dependencies
type App struct {
	router           *gin.Engine
	api              huma.API
	logger           *slog.Logger
	cfg              *config.Config
	locationService  location.Service
	dashboardService dashboard.Service
	catalog          *catalog.Catalog
	closers          []io.Closer
}

// Services are the collaborators the HTTP layer delegates to
type Services struct {
	Locations location.Service
	Dashboard dashboard.Service
	Catalog   *catalog.Catalog
}

// NewApp creates a new application with injected dependencies
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open location store: %w", err)
	}

	cities, err := catalog.Load(ctx, cfg.Catalog, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load city catalog: %w", err)
	}

	weatherSvc, err := weather.NewWeatherService(cfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	publisher := events.NewPublisher(cfg.Events, logger)
	locationSvc := location.NewLocationService(cfg, store, publisher, logger)

	app := NewAppWithServices(cfg, logger, Services{
		Locations: locationSvc,
		Dashboard: dashboard.NewDashboardService(locationSvc, weatherSvc, cfg, logger),
		Catalog:   cities,
	})
	app.closers = append(app.closers, publisher, store)

	logger.Info("application initialized",
		"database", cfg.Database.Driver,
		"catalog_cities", cities.Len(),
		"list_failure_policy", cfg.App.ListFailurePolicy,
		"weather_concurrency", cfg.App.WeatherConcurrency,
	)

	return app, nil
}

// NewAppWithServices wires the router around existing services
// This is useful for testing with mock services
func NewAppWithServices(cfg *config.Config, logger *slog.Logger, svc Services) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// Create Huma API on top of the Gin router
	humaConfig := huma.DefaultConfig("Weather Dashboard API", "1.0.0")
	humaConfig.Info.Description = "Saved locations enriched with current weather and 7-day forecasts from Open-Meteo"
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://localhost:%d", cfg.Server.Port), Description: "Development server"},
	}

	app := &App{
		router:           router,
		api:              humagin.New(router, humaConfig),
		logger:           logger,
		cfg:              cfg,
		locationService:  svc.Locations,
		dashboardService: svc.Dashboard,
		catalog:          svc.Catalog,
	}

	// Register routes
	app.registerRoutes()

	return app
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := app.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	app.logger.Info("shutting down server", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.logger.Info("server stopped")
	return nil
}

// Close releases the store and the event publisher
func (app *App) Close() error {
	var errs []error
	for _, c := range app.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
