package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/types"
)

var (
	// ErrNotFound is returned when no location has the requested id
	ErrNotFound = errors.New("location not found")
	// ErrConflict is returned when a location with the same name already exists
	ErrConflict = errors.New("location already exists")
)

// Store persists locations. Rows are never updated in place.
type Store interface {
	// List returns every location ordered by id
	List(ctx context.Context) ([]types.Location, error)
	Get(ctx context.Context, id int64) (*types.Location, error)
	Create(ctx context.Context, loc types.NewLocation) (*types.Location, error)
	Delete(ctx context.Context, id int64) error
	// Reset drops and recreates the locations table
	Reset(ctx context.Context) error
	Close() error
}

const createTableSQLite = `CREATE TABLE IF NOT EXISTS locations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	population INTEGER,
	country TEXT,
	capital_type TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS locations_name_key ON locations (name);`

const createTablePostgres = `CREATE TABLE IF NOT EXISTS locations (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL,
	population BIGINT,
	country TEXT,
	capital_type TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS locations_name_key ON locations (name);`

const selectColumns = `SELECT id, name, latitude, longitude, population, country, capital_type FROM locations`

// Open connects to the store selected by the database configuration and
// ensures the locations table exists.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgres(ctx, cfg.URL, logger)
	case config.DriverSQLite:
		return NewSQLite(ctx, cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
