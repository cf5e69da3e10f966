package location

import (
	"strings"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
)

// Preset is a well-known location with fixed coordinates.
type Preset struct {
	Name        string
	CountryCode string
	Coords      types.Coords
}

// presets are checked in order; partial matches return the first hit.
var presets = []Preset{
	{Name: "Panama City", CountryCode: "PA", Coords: types.NewCoords(8.9824, -79.5199)},
	{Name: "David", CountryCode: "PA", Coords: types.NewCoords(8.4270, -82.4278)},
	{Name: "Colón", CountryCode: "PA", Coords: types.NewCoords(9.3592, -79.9009)},
	{Name: "Santiago", CountryCode: "PA", Coords: types.NewCoords(8.1000, -80.9833)},
	{Name: "Chitré", CountryCode: "PA", Coords: types.NewCoords(7.9614, -80.4289)},
	{Name: "La Chorrera", CountryCode: "PA", Coords: types.NewCoords(8.8800, -79.7833)},
	{Name: "Bocas del Toro", CountryCode: "PA", Coords: types.NewCoords(9.3400, -82.2400)},
	{Name: "Penonomé", CountryCode: "PA", Coords: types.NewCoords(8.5167, -80.3500)},
}

// FindPreset matches name against the preset table: exact, then case-insensitive,
// then substring in either direction.
func FindPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}

	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return Preset{}, false
	}

	for _, p := range presets {
		if strings.ToLower(p.Name) == lower {
			return p, true
		}
	}

	for _, p := range presets {
		presetLower := strings.ToLower(p.Name)
		if strings.Contains(presetLower, lower) || strings.Contains(lower, presetLower) {
			return p, true
		}
	}

	return Preset{}, false
}
