package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"weather-dashboard/internal/config"
	"weather-dashboard/internal/events"
	"weather-dashboard/internal/providers/openstreetmap"
	"weather-dashboard/internal/types"
)

// ErrInvalid is returned when a new location fails validation
var ErrInvalid = errors.New("invalid location")

// Service manages persisted locations
type Service interface {
	List(ctx context.Context) ([]types.Location, error)
	Get(ctx context.Context, id int64) (*types.Location, error)
	// Create persists a new location. Duplicate names fail with storage.ErrConflict.
	Create(ctx context.Context, in types.NewLocation) (*types.Location, error)
	// Delete removes a location. Unknown ids fail with storage.ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

// Repository is the part of the location store the service uses
type Repository interface {
	List(ctx context.Context) ([]types.Location, error)
	Get(ctx context.Context, id int64) (*types.Location, error)
	Create(ctx context.Context, in types.NewLocation) (*types.Location, error)
	Delete(ctx context.Context, id int64) error
}

// ReverseGeocodeProvider defines the interface for location data providers
type ReverseGeocodeProvider interface {
	Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}

// locationService implements the Service interface
type locationService struct {
	repo      Repository
	geocoder  ReverseGeocodeProvider // nil disables country lookup
	publisher events.Publisher
	logger    *slog.Logger
}

// NewLocationService creates a location service, with reverse geocoding when enabled
func NewLocationService(cfg *config.Config, repo Repository, publisher events.Publisher, logger *slog.Logger) Service {
	var geocoder ReverseGeocodeProvider
	if cfg.Geocode.Enabled {
		geocoder = openstreetmap.NewClient(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent, logger)
	}
	return NewLocationServiceWithProviders(repo, geocoder, publisher, logger)
}

// NewLocationServiceWithProviders creates a new location service with custom providers
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(
	repo Repository,
	geocoder ReverseGeocodeProvider,
	publisher events.Publisher,
	logger *slog.Logger,
) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &locationService{
		repo:      repo,
		geocoder:  geocoder,
		publisher: publisher,
		logger:    logger.With("component", "location-service"),
	}
}

func (s *locationService) List(ctx context.Context) ([]types.Location, error) {
	return s.repo.List(ctx)
}

func (s *locationService) Get(ctx context.Context, id int64) (*types.Location, error) {
	return s.repo.Get(ctx, id)
}

func (s *locationService) Create(ctx context.Context, in types.NewLocation) (*types.Location, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalid)
	}

	if in.Country == nil && s.geocoder != nil {
		in.Country = s.lookupCountry(ctx, in.Latitude, in.Longitude)
	}

	loc, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.logger.Info("location created", "id", loc.ID, "name", loc.Name)
	s.publish(ctx, events.NewEvent(events.LocationCreated, loc.ID, loc))
	return loc, nil
}

func (s *locationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("location deleted", "id", id)
	s.publish(ctx, events.NewEvent(events.LocationDeleted, id, nil))
	return nil
}

// lookupCountry is best effort; a failed lookup leaves the country empty
func (s *locationService) lookupCountry(ctx context.Context, latitude, longitude float64) *string {
	if !types.NewCoords(latitude, longitude).OnGlobe() {
		return nil
	}

	resp, err := s.geocoder.Lookup(ctx, latitude, longitude)
	if err != nil {
		s.logger.Warn("reverse geocoding failed",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil
	}
	if resp == nil || resp.Address.Country == "" {
		return nil
	}
	country := resp.Address.Country
	return &country
}

// publish never fails the calling operation
func (s *locationService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish location event",
			"type", event.Type,
			"location_id", event.LocationID,
			"error", err,
		)
	}
}
