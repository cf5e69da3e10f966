package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/location"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/solar"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/weather"
)

const maxZoom = 15

// MapLayers are the tile layers served by the weather maps 1.0 API.
var MapLayers = []string{"temp_new", "precipitation_new", "clouds_new", "pressure_new", "wind_new"}

type SearchLocationResult struct {
	Query   string                           `json:"query"`
	Results []openweathermap.GeocodingResult `json:"results"`
}

type WeatherMapResult struct {
	Layer   string `json:"layer"`
	Zoom    int    `json:"zoom"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	TileURL string `json:"tile_url"`
	Info    string `json:"info"`
}

func (ts *Toolset) searchLocation(ctx context.Context, in SearchLocationInput) (*SearchLocationResult, error) {
	results, err := ts.locations.Search(ctx, in.Query, in.Limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []openweathermap.GeocodingResult{}
	}
	return &SearchLocationResult{Query: in.Query, Results: results}, nil
}

func (ts *Toolset) checkWeather(ctx context.Context, in PlaceUnitsInput) (*openweathermap.CurrentWeatherResponse, error) {
	units, err := types.ParseUnits(in.Units)
	if err != nil {
		return nil, err
	}
	coords, err := ts.coordinates(ctx, in.Location, in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}
	return ts.provider.GetCurrentWeather(ctx, coords, units)
}

func (ts *Toolset) getForecast(ctx context.Context, in PlaceUnitsInput) (*weather.ForecastResult, error) {
	units, err := types.ParseUnits(in.Units)
	if err != nil {
		return nil, err
	}
	coords, err := ts.coordinates(ctx, in.Location, in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}
	return ts.weather.GetForecast(ctx, coords, units)
}

func (ts *Toolset) checkAirQuality(ctx context.Context, in PlaceInput) (*openweathermap.AirQualityResponse, error) {
	coords, err := ts.coordinates(ctx, in.Location, in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}
	return ts.provider.GetAirQuality(ctx, coords)
}

func (ts *Toolset) checkUVIndex(ctx context.Context, in PlaceInput) (*openweathermap.UVIndexResponse, error) {
	coords, err := ts.coordinates(ctx, in.Location, in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}
	return ts.provider.GetUVIndex(ctx, coords)
}

func (ts *Toolset) getHistoricalWeather(ctx context.Context, in HistoricalWeatherInput) (*openweathermap.TimeMachineResponse, error) {
	units, err := types.ParseUnits(in.Units)
	if err != nil {
		return nil, err
	}
	coords, err := ts.coordinates(ctx, in.Location, in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}
	return ts.weather.GetHistoricalWeather(ctx, coords, in.Date, units)
}

func (ts *Toolset) getWeatherAlerts(ctx context.Context, in PlaceInput) (*weather.AlertsReport, error) {
	coords, err := ts.coordinates(ctx, in.Location, in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}
	return ts.weather.GetAlerts(ctx, coords)
}

func (ts *Toolset) getSolarRadiation(ctx context.Context, in PlaceInput) (*solar.Report, error) {
	coords, err := ts.coordinates(ctx, in.Location, in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}
	return ts.weather.GetSolarRadiation(ctx, coords, strings.TrimSpace(in.Location))
}

func (ts *Toolset) getLocationCoordinates(ctx context.Context, in LocationCoordinatesInput) (*location.Place, error) {
	return ts.locations.Lookup(ctx, in.Location)
}

func (ts *Toolset) getWeatherByZip(ctx context.Context, in WeatherByZipInput) (*openweathermap.CurrentWeatherResponse, error) {
	zip := strings.TrimSpace(in.ZipCode)
	if zip == "" {
		return nil, ErrMissingZip
	}
	units, err := types.ParseUnits(in.Units)
	if err != nil {
		return nil, err
	}
	return ts.provider.GetWeatherByZip(ctx, zip, strings.TrimSpace(in.CountryCode), units)
}

func (ts *Toolset) getHourlyForecast(ctx context.Context, in HourlyForecastInput) (*openweathermap.ForecastResponse, error) {
	units, err := types.ParseUnits(in.Units)
	if err != nil {
		return nil, err
	}
	coords, err := ts.coordinates(ctx, in.Location, in.Lat, in.Lon)
	if err != nil {
		return nil, err
	}
	return ts.provider.GetHourlyForecast(ctx, coords, units, in.Cnt)
}

func (ts *Toolset) getWeatherMap(_ context.Context, in WeatherMapInput) (*WeatherMapResult, error) {
	if !slices.Contains(MapLayers, in.Layer) {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidLayer, in.Layer)
	}
	if in.Z < 0 || in.Z > maxZoom {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidZoom, in.Z)
	}
	tiles := 1 << in.Z
	if in.X < 0 || in.X >= tiles || in.Y < 0 || in.Y >= tiles {
		return nil, fmt.Errorf("%w: got x=%d y=%d at z=%d", ErrInvalidTile, in.X, in.Y, in.Z)
	}

	return &WeatherMapResult{
		Layer:   in.Layer,
		Zoom:    in.Z,
		X:       in.X,
		Y:       in.Y,
		TileURL: ts.provider.TileURL(in.Layer, in.Z, in.X, in.Y),
		Info:    "Use this URL to fetch the weather map tile image",
	}, nil
}
