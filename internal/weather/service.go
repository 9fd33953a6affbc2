package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/providers/openmeteo"
	"weather-dashboard/internal/timezone"
	"weather-dashboard/internal/types"
)

type ForecastProvider interface {
	// GetCurrent fetches current conditions for the coordinates in the given timezone
	GetCurrent(ctx context.Context, latitude, longitude float64, timezone string) (*openmeteo.CurrentAPIResponse, error)
	// GetDaily fetches daily aggregates for the inclusive date range
	GetDaily(ctx context.Context, latitude, longitude float64, timezone, startDate, endDate string) (*openmeteo.DailyAPIResponse, error)
}

// Service translates coordinates into current or multi-day weather.
// Every call performs exactly one provider request; nothing is cached or retried.
type Service interface {
	FetchCurrent(ctx context.Context, coords types.Coords) (*CurrentWeather, error)
	FetchForecast(ctx context.Context, coords types.Coords, days int) (*Forecast, error)
}

type weatherService struct {
	forecastProvider ForecastProvider
	timezoneService  timezone.Service
	logger           *slog.Logger
	now              func() time.Time
}

func NewWeatherService(cfg *config.Config, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}
	client := openmeteo.NewForecastClient(cfg.Weather.BaseURL, cfg.Weather.Timeout, logger)
	return NewWeatherServiceWithProvider(client, tzSvc, logger), nil
}

func NewWeatherServiceWithProvider(
	forecastProvider ForecastProvider,
	timezoneService timezone.Service,
	logger *slog.Logger,
) Service {
	return &weatherService{
		forecastProvider: forecastProvider,
		timezoneService:  timezoneService,
		logger:           logger.With("component", "weather-service"),
		now:              time.Now,
	}
}

func (s *weatherService) FetchCurrent(ctx context.Context, coords types.Coords) (*CurrentWeather, error) {
	tz, _ := s.resolveTimezone(coords)

	apiResponse, err := s.forecastProvider.GetCurrent(ctx, coords.Latitude, coords.Longitude, tz)
	if err != nil {
		return nil, upstream("fetch current weather", err)
	}

	current := apiResponse.Current
	if current == nil {
		return nil, malformed("fetch current weather", "response has no current block")
	}
	if current.Temperature2M == nil || current.Rain == nil || current.WeatherCode == nil {
		return nil, malformed("fetch current weather", "current block is missing temperature_2m, rain or weather_code")
	}

	result := NewCurrentWeather(*current.Temperature2M, *current.Rain, *current.WeatherCode)
	return &result, nil
}

// FetchForecast returns days ordered from today (in the location's timezone) onward
func (s *weatherService) FetchForecast(ctx context.Context, coords types.Coords, days int) (*Forecast, error) {
	if days <= 0 {
		days = DefaultForecastDays
	}

	tz, loc := s.resolveTimezone(coords)
	today := s.now().In(loc)
	startDate := today.Format(time.DateOnly)
	endDate := today.AddDate(0, 0, days-1).Format(time.DateOnly)

	apiResponse, err := s.forecastProvider.GetDaily(ctx, coords.Latitude, coords.Longitude, tz, startDate, endDate)
	if err != nil {
		return nil, upstream("fetch forecast", err)
	}

	forecast, err := mapDailyAPIResponseToForecast(apiResponse)
	if err != nil {
		return nil, err
	}
	if forecast.Timezone == "" {
		forecast.Timezone = tz
	}

	if len(forecast.Days) != days {
		s.logger.Warn("provider returned unexpected number of forecast days",
			"requested", days,
			"received", len(forecast.Days),
			"start_date", startDate,
		)
	}

	return forecast, nil
}

// resolveTimezone falls back to provider-side resolution and UTC dates when the
// coordinate is outside every known zone.
func (s *weatherService) resolveTimezone(coords types.Coords) (string, *time.Location) {
	loc, err := s.timezoneService.GetLocation(coords)
	if err != nil {
		s.logger.Debug("falling back to automatic timezone",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		// Dates are then computed in UTC while the provider reports local days, so
		// near the antimeridian the window can start one day early or late.
		return openmeteo.TimezoneAuto, time.UTC
	}
	return loc.String(), loc
}

func mapDailyAPIResponseToForecast(apiResponse *openmeteo.DailyAPIResponse) (*Forecast, error) {
	const op = "fetch forecast"

	daily := apiResponse.Daily
	if daily == nil {
		return nil, malformed(op, "response has no daily block")
	}

	n := len(daily.Time)
	if n == 0 {
		return nil, malformed(op, "daily block has no days")
	}
	if len(daily.Temperature2MMax) != n || len(daily.Temperature2MMin) != n ||
		len(daily.RainSum) != n || len(daily.WeatherCode) != n {
		return nil, malformed(op, "daily arrays have mismatched lengths")
	}

	forecast := &Forecast{
		Timezone: apiResponse.Timezone,
		Days:     make([]DailyForecast, 0, n),
	}

	var previous time.Time
	for i, date := range daily.Time {
		day, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return nil, malformed(op, fmt.Sprintf("invalid date %q", date))
		}
		if i > 0 && !day.After(previous) {
			return nil, malformed(op, fmt.Sprintf("dates out of order at %q", date))
		}
		previous = day

		maxTemp, minTemp, rain, wmo := daily.Temperature2MMax[i], daily.Temperature2MMin[i], daily.RainSum[i], daily.WeatherCode[i]
		switch {
		case maxTemp == nil:
			return nil, malformed(op, "null value for temperature_2m_max on "+date)
		case minTemp == nil:
			return nil, malformed(op, "null value for temperature_2m_min on "+date)
		case rain == nil:
			return nil, malformed(op, "null value for rain_sum on "+date)
		case wmo == nil:
			return nil, malformed(op, "null value for weather_code on "+date)
		}

		code := types.WeatherCode(*wmo)
		forecast.Days = append(forecast.Days, DailyForecast{
			Date:           date,
			TemperatureMax: *maxTemp,
			TemperatureMin: *minTemp,
			RainfallSum:    *rain,
			WeatherCode:    *wmo,
			Description:    code.Description(),
			Icon:           code.Icon(),
		})
	}

	return forecast, nil
}

func upstream(op string, err error) error {
	upstreamErr := &UpstreamError{Op: op, Err: err}
	var apiErr *openmeteo.APIError
	if errors.As(err, &apiErr) {
		upstreamErr.StatusCode = apiErr.StatusCode
	}
	return upstreamErr
}

func malformed(op, reason string) error {
	return &UpstreamError{Op: op, Err: fmt.Errorf("malformed payload: %s", reason)}
}
