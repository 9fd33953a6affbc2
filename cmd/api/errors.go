package main

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"weather-dashboard/internal/dashboard"
	"weather-dashboard/internal/location"
	"weather-dashboard/internal/storage"
)

// toHTTPError maps domain errors to HTTP problems. Unexpected errors are
// logged and hidden behind msg.
func (app *App) toHTTPError(err error, msg string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return huma.Error404NotFound("location not found")
	case errors.Is(err, storage.ErrConflict):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, location.ErrInvalid):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, dashboard.ErrBadGateway):
		app.logger.Warn(msg, "error", err)
		return huma.Error502BadGateway("weather provider unavailable")
	default:
		app.logger.Error(msg, "error", err)
		return huma.Error500InternalServerError(msg)
	}
}
