package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
)

const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 5
)

var ErrEmptyQuery = errors.New("location query must not be empty")

// NotFoundError is returned when geocoding yields no candidates for a query.
// It unwraps to a 404 ProviderError.
type NotFoundError struct {
	Query string
	err   *openweathermap.ProviderError
}

func newNotFoundError(query string) *NotFoundError {
	return &NotFoundError{
		Query: query,
		err:   openweathermap.NewProviderError(http.StatusNotFound, fmt.Sprintf("Location not found: %s", query)),
	}
}

func (e *NotFoundError) Error() string {
	return e.err.Error()
}

func (e *NotFoundError) Unwrap() error {
	return e.err
}

// Source tells where a Place came from.
type Source string

const (
	SourcePreset    Source = "preset"
	SourceGeocoding Source = "geocoding"
)

// Place is a named location with coordinates.
type Place struct {
	Location string  `json:"location"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	types.LocationInfo
	Source Source `json:"source"`
}

// locationService implements the Service interface
type locationService struct {
	geocoder Geocoder
	logger   *slog.Logger
}

// NewLocationService creates a location service backed by the OpenWeatherMap geocoding API
func NewLocationService(client *openweathermap.Client, logger *slog.Logger) Service {
	return NewLocationServiceWithProviders(client, logger)
}

// NewLocationServiceWithProviders creates a new location service with a custom geocoder
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(geocoder Geocoder, logger *slog.Logger) Service {
	return &locationService{
		geocoder: geocoder,
		logger:   logger.With("component", "location-service"),
	}
}

// Resolve parses literal coordinates without a network call and otherwise
// falls back to the single best geocoding match.
func (s *locationService) Resolve(ctx context.Context, query string) (types.Coords, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.Coords{}, ErrEmptyQuery
	}

	if coords, ok := types.ParseCoords(query); ok {
		s.logger.Debug("resolved literal coordinates", "query", query)
		return coords, nil
	}

	results, err := s.geocoder.Geocode(ctx, query, 1)
	if err != nil {
		s.logger.Error("failed to geocode location", "query", query, "error", err)
		return types.Coords{}, err
	}

	if len(results) == 0 {
		s.logger.Warn("no geocoding candidates for location", "query", query)
		return types.Coords{}, newNotFoundError(query)
	}

	top := results[0]
	s.logger.Debug("resolved location via geocoding",
		"query", query,
		"name", top.Name,
		"country", top.Country,
		"latitude", top.Lat,
		"longitude", top.Lon,
	)

	return types.NewCoords(top.Lat, top.Lon), nil
}

// Search returns ranked candidates in provider order. limit is clamped to 1..MaxSearchLimit;
// a non-positive limit means DefaultSearchLimit.
func (s *locationService) Search(ctx context.Context, query string, limit int) ([]openweathermap.GeocodingResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}

	results, err := s.geocoder.Geocode(ctx, query, limit)
	if err != nil {
		s.logger.Error("failed to search locations", "query", query, "error", err)
		return nil, err
	}

	s.logger.Debug("location search completed", "query", query, "candidates", len(results))
	return results, nil
}

// Lookup returns a preset Place when the name matches one, otherwise the top geocoding match.
func (s *locationService) Lookup(ctx context.Context, query string) (*Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if preset, ok := FindPreset(query); ok {
		return &Place{
			Location:     query,
			Lat:          preset.Coords.Latitude,
			Lon:          preset.Coords.Longitude,
			LocationInfo: types.LocationInfo{Name: preset.Name, CountryCode: preset.CountryCode},
			Source:       SourcePreset,
		}, nil
	}

	results, err := s.geocoder.Geocode(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, newNotFoundError(query)
	}

	return translatePlace(query, results[0]), nil
}

// translatePlace converts a geocoding candidate to a Place
func translatePlace(query string, result openweathermap.GeocodingResult) *Place {
	info := types.LocationInfo{
		Name:        result.Name,
		CountryCode: result.Country,
	}
	if result.State != nil {
		info.State = *result.State
	}

	return &Place{
		Location:     query,
		Lat:          result.Lat,
		Lon:          result.Lon,
		LocationInfo: info,
		Source:       SourceGeocoding,
	}
}
