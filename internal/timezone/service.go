package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
)

// Service provides timezone lookup functionality
type Service interface {
	GetTimezone(coords types.Coords) (string, error)
	// Location loads the *time.Location for coords, falling back to UTC over open ocean
	Location(coords types.Coords) *time.Location
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
// Uses singleton pattern because tzf.Finder loads timezone data into memory
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

// GetTimezone returns the IANA timezone name for the given coordinates
// Returns timezone names like "America/Panama", "Europe/London", etc.
func (s *service) GetTimezone(coords types.Coords) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name := s.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates %s", coords)
	}

	return name, nil
}

func (s *service) Location(coords types.Coords) *time.Location {
	name, err := s.GetTimezone(coords)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// UTC is a Service that always answers UTC. The weather service falls back to
// it when the finder cannot be loaded.
type UTC struct{}

func (UTC) GetTimezone(types.Coords) (string, error) {
	return "UTC", nil
}

func (UTC) Location(types.Coords) *time.Location {
	return time.UTC
}
