package location

import (
	"context"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
)

// Service turns free-form location strings into coordinates.
type Service interface {
	// Resolve returns the coordinates for a "<lat>,<lon>" literal or the top geocoding match
	Resolve(ctx context.Context, query string) (types.Coords, error)
	// Search returns up to limit ranked candidates so a caller can disambiguate
	Search(ctx context.Context, query string, limit int) ([]openweathermap.GeocodingResult, error)
	// Lookup resolves a place name to a Place, consulting the preset table first
	Lookup(ctx context.Context, query string) (*Place, error)
}

// Geocoder defines the interface for forward geocoding providers
type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]openweathermap.GeocodingResult, error)
}
