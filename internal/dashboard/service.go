package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/types"
	"weather-dashboard/internal/weather"
)

// ErrBadGateway is returned when the weather provider fails and the result
// cannot be served without it
var ErrBadGateway = errors.New("weather provider unavailable")

// LocationWithWeather is a persisted location with its current conditions
type LocationWithWeather struct {
	types.Location
	Current weather.CurrentWeather `json:"current"`
}

// LocationForecast is the multi-day forecast for one persisted location
type LocationForecast struct {
	LocationID   int64                   `json:"location_id"`
	LocationName string                  `json:"location_name"`
	Timezone     string                  `json:"timezone"`
	Daily        []weather.DailyForecast `json:"daily"`
}

// LocationReader loads persisted locations
type LocationReader interface {
	List(ctx context.Context) ([]types.Location, error)
	Get(ctx context.Context, id int64) (*types.Location, error)
}

// Service merges persisted locations with weather
type Service interface {
	// ListWithWeather returns every location in store order with current weather attached
	ListWithWeather(ctx context.Context) ([]LocationWithWeather, error)
	// ForecastFor returns the forecast of one location. A provider failure is
	// always reported, never replaced with a placeholder.
	ForecastFor(ctx context.Context, id int64) (*LocationForecast, error)
}

type dashboardService struct {
	locations    LocationReader
	weather      weather.Service
	concurrency  int
	failOnError  bool
	forecastDays int
	logger       *slog.Logger
}

func NewDashboardService(
	locations LocationReader,
	weatherService weather.Service,
	cfg *config.Config,
	logger *slog.Logger,
) Service {
	concurrency := cfg.App.WeatherConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &dashboardService{
		locations:    locations,
		weather:      weatherService,
		concurrency:  concurrency,
		failOnError:  cfg.App.ListFailurePolicy == config.ListFailureFail,
		forecastDays: cfg.Weather.ForecastDays,
		logger:       logger.With("component", "dashboard-service"),
	}
}

func (s *dashboardService) ListWithWeather(ctx context.Context) ([]LocationWithWeather, error) {
	locations, err := s.locations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	// Fetches run independently; one failure does not cancel the others
	mapper := iter.Mapper[types.Location, LocationWithWeather]{MaxGoroutines: s.concurrency}
	results, err := mapper.MapErr(locations, func(loc *types.Location) (LocationWithWeather, error) {
		entry := LocationWithWeather{Location: *loc}

		current, err := s.weather.FetchCurrent(ctx, loc.Coords())
		if err != nil {
			if s.failOnError {
				return entry, fmt.Errorf("location %d (%s): %w", loc.ID, loc.Name, err)
			}
			s.logger.Warn("using placeholder weather",
				"location_id", loc.ID,
				"name", loc.Name,
				"error", err,
			)
			return entry, nil
		}

		entry.Current = *current
		return entry, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadGateway, err)
	}

	return results, nil
}

func (s *dashboardService) ForecastFor(ctx context.Context, id int64) (*LocationForecast, error) {
	loc, err := s.locations.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	forecast, err := s.weather.FetchForecast(ctx, loc.Coords(), s.forecastDays)
	if err != nil {
		s.logger.Error("forecast unavailable", "location_id", loc.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrBadGateway, err)
	}

	return &LocationForecast{
		LocationID:   loc.ID,
		LocationName: loc.Name,
		Timezone:     forecast.Timezone,
		Daily:        forecast.Days,
	}, nil
}
