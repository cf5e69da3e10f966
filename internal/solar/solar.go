// Package solar estimates solar irradiance from latitude, season and sky conditions.
//
// The model is a closed-form approximation intended for sizing conversations,
// not for engineering use.
package solar

import (
	"math"
	"time"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
)

// Source is reported on every Report.
const Source = "OpenWeatherMap"

// DefaultCloudCover is used when no observation is available.
const DefaultCloudCover = 50.0

// Estimate is the solar radiation estimate for a single set of conditions.
type Estimate struct {
	AvgDailyKWhM2    float64 `json:"avg_daily_kwh_m2"`
	PeakSunHours     float64 `json:"peak_sun_hours"`
	CloudCoverFactor float64 `json:"cloud_cover_factor"`
	UVFactor         float64 `json:"uv_factor"`
}

// Report is the full solar radiation answer for a location.
type Report struct {
	Location         string             `json:"location"`
	Coordinates      types.Coords       `json:"coordinates"`
	AvgDailyKWhM2    float64            `json:"avg_daily_kwh_m2"`
	PeakSunHours     float64            `json:"peak_sun_hours"`
	MonthlyAverages  map[string]float64 `json:"monthly_averages"`
	Source           string             `json:"source"`
	CloudCoverFactor *float64           `json:"cloud_cover_factor,omitempty"`
	UVIndexAvg       *float64           `json:"uv_index_avg,omitempty"`
}

// baseRadiation returns kWh/m²/day by latitude zone.
func baseRadiation(lat float64) float64 {
	absLat := math.Abs(lat)
	switch {
	case absLat < 10:
		return 5.8
	case absLat < 23.5:
		return 5.5
	case absLat < 35:
		return 4.5
	default:
		return 3.5
	}
}

// seasonalFactor peaks in June north of the equator and in December south of it.
func seasonalFactor(lat float64, month time.Month) float64 {
	peak := 6.0
	if lat < 0 {
		peak = 12.0
	}
	return 1 + 0.3*math.Cos((float64(month)-peak)*math.Pi/6)
}

// Calculate estimates radiation for the given cloud cover percentage.
// uvi and month are optional; a zero month skips the seasonal adjustment.
func Calculate(lat, cloudCover float64, uvi *float64, month time.Month) Estimate {
	radiation := baseRadiation(lat)
	if month >= time.January && month <= time.December {
		radiation *= seasonalFactor(lat, month)
	}

	// Clouds reduce radiation by up to 75%
	cloudFactor := 1 - (cloudCover/100)*0.75

	uvFactor := 1.0
	if uvi != nil {
		uvFactor = math.Min(1.5, 0.7+*uvi*0.08)
	}

	avg := radiation * cloudFactor * uvFactor

	return Estimate{
		AvgDailyKWhM2:    round(avg, 2),
		PeakSunHours:     round(avg, 2),
		CloudCoverFactor: round(cloudFactor, 3),
		UVFactor:         round(uvFactor, 3),
	}
}

// MonthlyAverages returns the estimate for every month keyed by lower-case month name,
// holding cloud cover constant and ignoring UV.
func MonthlyAverages(lat, cloudCover float64) map[string]float64 {
	averages := make(map[string]float64, 12)
	for m := time.January; m <= time.December; m++ {
		averages[monthKey(m)] = Calculate(lat, cloudCover, nil, m).AvgDailyKWhM2
	}
	return averages
}

// NewReport builds a Report for a location.
func NewReport(location string, coords types.Coords, cloudCover float64, uvi *float64, month time.Month) *Report {
	estimate := Calculate(coords.Latitude, cloudCover, uvi, month)
	cloudFactor := estimate.CloudCoverFactor

	return &Report{
		Location:         location,
		Coordinates:      coords,
		AvgDailyKWhM2:    estimate.AvgDailyKWhM2,
		PeakSunHours:     estimate.PeakSunHours,
		MonthlyAverages:  MonthlyAverages(coords.Latitude, cloudCover),
		Source:           Source,
		CloudCoverFactor: &cloudFactor,
		UVIndexAvg:       uvi,
	}
}

var monthKeys = [...]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

func monthKey(m time.Month) string {
	return monthKeys[m-1]
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
