package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/location"
	"weather-dashboard/internal/storage"
)

type seedResult struct {
	Inserted int
	Skipped  int
}

// seed inserts cities in order. Cities whose name is already stored are skipped.
func seed(ctx context.Context, svc location.Service, cities []catalog.City, logger *slog.Logger) (seedResult, error) {
	var result seedResult
	for _, city := range cities {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		loc, err := svc.Create(ctx, city.NewLocation())
		if errors.Is(err, storage.ErrConflict) {
			logger.Debug("city already stored", "name", city.Name)
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("failed to insert %q: %w", city.Name, err)
		}

		logger.Debug("city stored", "id", loc.ID, "name", loc.Name)
		result.Inserted++
	}
	return result, nil
}
