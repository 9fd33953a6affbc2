package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"weather-dashboard/internal/types"
)

const pgUniqueViolation = "23505"

// PostgresStore implements Store on a pgx connection pool
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(ctx context.Context, url string, logger *slog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	s := &PostgresStore{
		pool:   pool,
		logger: logger.With("component", "postgres-store"),
	}
	if _, err := pool.Exec(ctx, createTablePostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create locations table: %w", err)
	}

	s.logger.Info("connected to postgres")
	return s, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]types.Location, error) {
	rows, err := s.pool.Query(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	locations, err := pgx.CollectRows(rows, scanPgLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to scan locations: %w", err)
	}
	return locations, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*types.Location, error) {
	rows, err := s.pool.Query(ctx, selectColumns+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get location %d: %w", id, err)
	}

	loc, err := pgx.CollectExactlyOneRow(rows, scanPgLocation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan location %d: %w", id, err)
	}
	return &loc, nil
}

func (s *PostgresStore) Create(ctx context.Context, in types.NewLocation) (*types.Location, error) {
	rows, err := s.pool.Query(ctx,
		`INSERT INTO locations (name, latitude, longitude, population, country, capital_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, latitude, longitude, population, country, capital_type`,
		in.Name, in.Latitude, in.Longitude, in.Population, in.Country, in.CapitalType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	loc, err := pgx.CollectExactlyOneRow(rows, scanPgLocation)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: %q", ErrConflict, in.Name)
		}
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}
	return &loc, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DROP TABLE IF EXISTS locations`); err != nil {
		return fmt.Errorf("failed to drop locations table: %w", err)
	}
	if _, err := s.pool.Exec(ctx, createTablePostgres); err != nil {
		return fmt.Errorf("failed to create locations table: %w", err)
	}
	s.logger.Warn("locations table reset")
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPgLocation(row pgx.CollectableRow) (types.Location, error) {
	var loc types.Location
	err := row.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.Population, &loc.Country, &loc.CapitalType)
	return loc, err
}
