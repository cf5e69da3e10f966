package weather

import (
	"encoding/json"
	"fmt"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
)

// Source identifies which upstream tier produced a forecast.
type Source string

const (
	SourceOneCall  Source = "one_call"
	SourceFreeTier Source = "free_tier"
)

// FreeTierNote explains why a forecast came from the free tier.
const FreeTierNote = "One Call API 3.0 is not available for this API key, so this is the free 5-day forecast in " +
	"3-hour steps. Hourly forecasts and weather alerts require a One Call API 3.0 subscription."

// OneCallForecast is the rich forecast payload.
type OneCallForecast struct {
	Current  *openweathermap.Conditions     `json:"current"`
	Hourly   []openweathermap.Conditions    `json:"hourly"`
	Daily    []openweathermap.DailyForecast `json:"daily"`
	Alerts   []openweathermap.WeatherAlert  `json:"alerts"`
	Timezone string                         `json:"timezone"`
}

// FreeTierForecast is the degraded forecast payload.
type FreeTierForecast struct {
	ForecastList []openweathermap.ForecastItem `json:"forecast_list"`
	City         openweathermap.City           `json:"city"`
	Alerts       []openweathermap.WeatherAlert `json:"alerts"`
	Note         string                        `json:"note"`
}

// ForecastResult carries exactly one of OneCall or FreeTier, selected by Source.
type ForecastResult struct {
	Source   Source
	OneCall  *OneCallForecast
	FreeTier *FreeTierForecast
}

func newOneCallResult(resp *openweathermap.OneCallResponse) *ForecastResult {
	forecast := &OneCallForecast{
		Current:  resp.Current,
		Hourly:   resp.Hourly,
		Daily:    resp.Daily,
		Alerts:   resp.Alerts,
		Timezone: resp.Timezone,
	}
	if forecast.Hourly == nil {
		forecast.Hourly = []openweathermap.Conditions{}
	}
	if forecast.Daily == nil {
		forecast.Daily = []openweathermap.DailyForecast{}
	}
	if forecast.Alerts == nil {
		forecast.Alerts = []openweathermap.WeatherAlert{}
	}
	return &ForecastResult{Source: SourceOneCall, OneCall: forecast}
}

func newFreeTierResult(resp *openweathermap.ForecastResponse) *ForecastResult {
	forecast := &FreeTierForecast{
		ForecastList: resp.List,
		City:         resp.City,
		Alerts:       []openweathermap.WeatherAlert{},
		Note:         FreeTierNote,
	}
	if forecast.ForecastList == nil {
		forecast.ForecastList = []openweathermap.ForecastItem{}
	}
	return &ForecastResult{Source: SourceFreeTier, FreeTier: forecast}
}

// MarshalJSON flattens the result into {"source": ..., <payload fields>}.
func (r ForecastResult) MarshalJSON() ([]byte, error) {
	switch r.Source {
	case SourceOneCall:
		if r.OneCall == nil || r.FreeTier != nil {
			return nil, fmt.Errorf("forecast result %q must carry only the one_call payload", r.Source)
		}
		return json.Marshal(struct {
			Source Source `json:"source"`
			*OneCallForecast
		}{r.Source, r.OneCall})
	case SourceFreeTier:
		if r.FreeTier == nil || r.OneCall != nil {
			return nil, fmt.Errorf("forecast result %q must carry only the free_tier payload", r.Source)
		}
		return json.Marshal(struct {
			Source Source `json:"source"`
			*FreeTierForecast
		}{r.Source, r.FreeTier})
	default:
		return nil, fmt.Errorf("unknown forecast source %q", r.Source)
	}
}

// AlertsReport lists active alerts for a location.
type AlertsReport struct {
	Lat      float64                       `json:"lat"`
	Lon      float64                       `json:"lon"`
	Alerts   []openweathermap.WeatherAlert `json:"alerts"`
	Timezone string                        `json:"timezone"`
}
