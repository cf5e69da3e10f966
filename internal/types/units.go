package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidUnits = errors.New("units must be one of metric, imperial, standard")

// Units selects the measurement system of upstream responses.
type Units string

const (
	UnitsMetric   Units = "metric"   // Celsius, m/s
	UnitsImperial Units = "imperial" // Fahrenheit, mph
	UnitsStandard Units = "standard" // Kelvin, m/s
)

// DefaultUnits is used when a caller does not choose a unit system.
const DefaultUnits = UnitsMetric

// ParseUnits normalizes a caller supplied unit system. An empty string yields DefaultUnits.
func ParseUnits(s string) (Units, error) {
	switch u := Units(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return DefaultUnits, nil
	case UnitsMetric, UnitsImperial, UnitsStandard:
		return u, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidUnits, s)
	}
}

func (u Units) String() string {
	if u == "" {
		return string(DefaultUnits)
	}
	return string(u)
}
