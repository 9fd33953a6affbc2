package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"weather-dashboard/internal/types"
)

// SQLiteStore implements Store using the pure Go modernc.org/sqlite driver
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLite opens (or creates) the database at path and applies the schema
func NewSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger.With("component", "sqlite-store"),
	}

	// WAL lets readers proceed during small writes
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		s.logger.Warn("could not set WAL mode", "error", err)
	}

	if _, err := db.ExecContext(ctx, createTableSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create locations table: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]types.Location, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	locations := make([]types.Location, 0)
	for rows.Next() {
		loc, err := scanSQLiteLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int64) (*types.Location, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	loc, err := scanSQLiteLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location %d: %w", id, err)
	}
	return &loc, nil
}

func (s *SQLiteStore) Create(ctx context.Context, in types.NewLocation) (*types.Location, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (name, latitude, longitude, population, country, capital_type) VALUES (?, ?, ?, ?, ?, ?)`,
		in.Name, in.Latitude, in.Longitude, in.Population, in.Country, in.CapitalType,
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return nil, fmt.Errorf("%w: %q", ErrConflict, in.Name)
		}
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return &types.Location{
		ID:          id,
		Name:        in.Name,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Country:     in.Country,
		Population:  in.Population,
		CapitalType: in.CapitalType,
	}, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete location %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS locations`); err != nil {
		return fmt.Errorf("failed to drop locations table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, createTableSQLite); err != nil {
		return fmt.Errorf("failed to create locations table: %w", err)
	}
	s.logger.Warn("locations table reset")
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteLocation(row rowScanner) (types.Location, error) {
	var (
		loc         types.Location
		population  sql.NullInt64
		country     sql.NullString
		capitalType sql.NullString
	)
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &population, &country, &capitalType); err != nil {
		return types.Location{}, err
	}
	if population.Valid {
		loc.Population = &population.Int64
	}
	if country.Valid {
		loc.Country = &country.String
	}
	if capitalType.Valid {
		loc.CapitalType = &capitalType.String
	}
	return loc, nil
}
