package main

import (
	"context"

	"weather-dashboard/internal/dashboard"
	"weather-dashboard/internal/location"
	"weather-dashboard/internal/types"
)

// ListLocationsOutput is the saved locations with their current weather
type ListLocationsOutput struct {
	Body []dashboard.LocationWithWeather
}

func (app *App) handleListLocations(ctx context.Context, input *struct{}) (*ListLocationsOutput, error) {
	locations, err := app.dashboardService.ListWithWeather(ctx)
	if err != nil {
		return nil, app.toHTTPError(err, "failed to list locations")
	}
	return &ListLocationsOutput{Body: locations}, nil
}

// CreateLocationInput defines the body accepted by POST /locations
type CreateLocationInput struct {
	Body struct {
		Name        string  `json:"name" minLength:"1" maxLength:"200" example:"London" doc:"Unique display name"`
		Latitude    float64 `json:"latitude" example:"51.5074" doc:"Latitude in decimal degrees"`
		Longitude   float64 `json:"longitude" example:"-0.1278" doc:"Longitude in decimal degrees"`
		Country     *string `json:"country,omitempty" doc:"Country name, looked up from the coordinates when omitted and geocoding is enabled"`
		Population  *int64  `json:"population,omitempty" minimum:"0"`
		CapitalType *string `json:"capitalType,omitempty" example:"primary"`
	}
}

// LocationOutput is a single saved location
type LocationOutput struct {
	Body types.Location
}

func (app *App) handleCreateLocation(ctx context.Context, input *CreateLocationInput) (*LocationOutput, error) {
	loc, err := app.locationService.Create(ctx, types.NewLocation{
		Name:        input.Body.Name,
		Latitude:    input.Body.Latitude,
		Longitude:   input.Body.Longitude,
		Country:     input.Body.Country,
		Population:  input.Body.Population,
		CapitalType: input.Body.CapitalType,
	})
	if err != nil {
		return nil, app.toHTTPError(err, "failed to create location")
	}
	return &LocationOutput{Body: *loc}, nil
}

// LocationIDInput identifies a saved location in the path
type LocationIDInput struct {
	ID int64 `path:"id" doc:"Location id"`
}

func (app *App) handleDeleteLocation(ctx context.Context, input *LocationIDInput) (*struct{}, error) {
	if err := app.locationService.Delete(ctx, input.ID); err != nil {
		return nil, app.toHTTPError(err, "failed to delete location")
	}
	return nil, nil
}

const geoJSONContentType = "application/geo+json"

// GeoJSONOutput is a pre-encoded FeatureCollection written as-is
type GeoJSONOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// handleLocationsGeoJSON serves saved locations as a GeoJSON FeatureCollection
func (app *App) handleLocationsGeoJSON(ctx context.Context, input *struct{}) (*GeoJSONOutput, error) {
	locations, err := app.locationService.List(ctx)
	if err != nil {
		return nil, app.toHTTPError(err, "failed to list locations")
	}

	body, err := location.ToFeatureCollection(locations).MarshalJSON()
	if err != nil {
		return nil, app.toHTTPError(err, "failed to encode locations")
	}

	return &GeoJSONOutput{ContentType: geoJSONContentType, Body: body}, nil
}
