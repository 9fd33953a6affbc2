package main

import (
	"context"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/dashboard"
)

// ForecastOutput is the daily forecast of one saved location
type ForecastOutput struct {
	Body dashboard.LocationForecast
}

func (app *App) handleGetForecast(ctx context.Context, input *LocationIDInput) (*ForecastOutput, error) {
	forecast, err := app.dashboardService.ForecastFor(ctx, input.ID)
	if err != nil {
		return nil, app.toHTTPError(err, "failed to get forecast")
	}
	return &ForecastOutput{Body: *forecast}, nil
}

// AvailableLocationsInput filters the city catalog
type AvailableLocationsInput struct {
	Query string `query:"q" doc:"Case-insensitive match on city or country name"`
	Limit int    `query:"limit" minimum:"0" maximum:"1000" doc:"Maximum number of cities, 0 for all"`
}

// AvailableLocationsOutput lists candidate cities
type AvailableLocationsOutput struct {
	Body []catalog.City
}

func (app *App) handleListAvailableLocations(ctx context.Context, input *AvailableLocationsInput) (*AvailableLocationsOutput, error) {
	return &AvailableLocationsOutput{Body: app.catalog.Search(input.Query, input.Limit)}, nil
}
