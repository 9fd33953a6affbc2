package timezone

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // LoadLocation must not depend on the host zoneinfo

	"github.com/ringsaturn/tzf"

	"weather-dashboard/internal/types"
)

// Service resolves the IANA timezone for a coordinate
type Service interface {
	// GetTimezone returns names like "Europe/London" or "America/Denver"
	GetTimezone(coords types.Coords) (string, error)
	// GetLocation returns the loaded *time.Location for the coordinate
	GetLocation(coords types.Coords) (*time.Location, error)
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the singleton timezone service
// Uses singleton pattern because tzf.Finder loads timezone data into memory (~50MB)
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{
			finder: finder,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

func (s *service) GetTimezone(coords types.Coords) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates %s", coords)
	}

	return name, nil
}

func (s *service) GetLocation(coords types.Coords) (*time.Location, error) {
	name, err := s.GetTimezone(coords)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", name, err)
	}

	return loc, nil
}
