package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Coords is a geographic point in decimal degrees.
type Coords struct {
	Latitude  float64 `json:"lat" example:"51.5074"`
	Longitude float64 `json:"lon" example:"-0.1278"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// Validate reports whether both components lie inside their valid ranges.
// NaN fails both checks.
func (c Coords) Validate() error {
	if !(c.Latitude >= -90 && c.Latitude <= 90) {
		return fmt.Errorf("%w: got %v", ErrInvalidLatitude, c.Latitude)
	}
	if !(c.Longitude >= -180 && c.Longitude <= 180) {
		return fmt.Errorf("%w: got %v", ErrInvalidLongitude, c.Longitude)
	}
	return nil
}

func (c Coords) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// ParseCoords parses a literal "<lat>,<lon>" pair. It returns false unless the
// string holds exactly one comma, both halves are numbers and the pair is in range.
func ParseCoords(s string) (Coords, bool) {
	if strings.Count(s, ",") != 1 {
		return Coords{}, false
	}

	latPart, lonPart, _ := strings.Cut(s, ",")
	lat, err := parseDecimal(latPart)
	if err != nil {
		return Coords{}, false
	}
	lon, err := parseDecimal(lonPart)
	if err != nil {
		return Coords{}, false
	}

	coords := NewCoords(lat, lon)
	if coords.Validate() != nil {
		return Coords{}, false
	}
	return coords, true
}

// parseDecimal parses a base 10 number. Hex floats such as "0x1p3" are rejected.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}
