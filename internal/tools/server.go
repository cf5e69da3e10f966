// Package tools exposes the weather services as MCP tools.
package tools

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/location"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/weather"
)

const ServerName = "mcp-openweathermap"

// Provider is the subset of the OpenWeatherMap client the tools call directly.
type Provider interface {
	GetCurrentWeather(ctx context.Context, coords types.Coords, units types.Units) (*openweathermap.CurrentWeatherResponse, error)
	GetWeatherByZip(ctx context.Context, zip, countryCode string, units types.Units) (*openweathermap.CurrentWeatherResponse, error)
	GetHourlyForecast(ctx context.Context, coords types.Coords, units types.Units, cnt int) (*openweathermap.ForecastResponse, error)
	GetAirQuality(ctx context.Context, coords types.Coords) (*openweathermap.AirQualityResponse, error)
	GetUVIndex(ctx context.Context, coords types.Coords) (*openweathermap.UVIndexResponse, error)
	TileURL(layer string, z, x, y int) string
}

// Toolset holds the dependencies shared by every tool handler.
type Toolset struct {
	provider  Provider
	locations location.Service
	weather   weather.Service
	logger    *slog.Logger
}

func NewToolset(provider Provider, locations location.Service, weatherSvc weather.Service, logger *slog.Logger) *Toolset {
	return &Toolset{
		provider:  provider,
		locations: locations,
		weather:   weatherSvc,
		logger:    logger.With("component", "mcp-tools"),
	}
}

// NewServer builds an MCP server with every tool and the guide resource registered.
func NewServer(ts *Toolset, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	ts.Register(server)
	return server
}

// Register adds the tools and resources to server.
func (ts *Toolset) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "search_location",
		Description: "Search for places by name and list up to 5 candidates with coordinates, state and country. " +
			"Use it to disambiguate names like 'Springfield' before calling other tools with lat and lon.",
	}, handle(ts, "search_location", ts.searchLocation))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_weather",
		Description: "Get current weather conditions for a location name or lat/lon coordinates.",
	}, handle(ts, "check_weather", ts.checkWeather))

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_forecast",
		Description: "Get the weather forecast. Returns hourly and daily data with alerts (source one_call) when the key " +
			"has a One Call 3.0 subscription, otherwise the 5-day 3-hour forecast (source free_tier).",
	}, handle(ts, "get_forecast", ts.getForecast))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_air_quality",
		Description: "Get the air quality index (1 good to 5 very poor) and pollutant concentrations for a location.",
	}, handle(ts, "check_air_quality", ts.checkAirQuality))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_uv_index",
		Description: "Get the current UV index for a location.",
	}, handle(ts, "check_uv_index", ts.checkUVIndex))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_historical_weather",
		Description: "Get observed weather for a past date. Requires a One Call 3.0 subscription.",
	}, handle(ts, "get_historical_weather", ts.getHistoricalWeather))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_weather_alerts",
		Description: "Get active severe weather alerts for a location. Requires a One Call 3.0 subscription.",
	}, handle(ts, "get_weather_alerts", ts.getWeatherAlerts))

	mcp.AddTool(server, &mcp.Tool{
		Name: "get_solar_radiation",
		Description: "Estimate daily solar radiation (kWh/m²), peak sun hours and monthly averages " +
			"from latitude, season, current cloud cover and UV index.",
	}, handle(ts, "get_solar_radiation", ts.getSolarRadiation))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_location_coordinates",
		Description: "Look up the coordinates of a place name. Well-known Panama cities are answered without a network call.",
	}, handle(ts, "get_location_coordinates", ts.getLocationCoordinates))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_weather_by_zip",
		Description: "Get current weather by ZIP or postal code, optionally qualified by country code.",
	}, handle(ts, "get_weather_by_zip", ts.getWeatherByZip))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_hourly_forecast",
		Description: "Get the hourly forecast for up to 4 days. Available on paid plans only.",
	}, handle(ts, "get_hourly_forecast", ts.getHourlyForecast))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_weather_map",
		Description: "Build the URL of a weather map tile for visualizations.",
	}, handle(ts, "get_weather_map", ts.getWeatherMap))

	server.AddResource(&mcp.Resource{
		URI:         GuideURI,
		Name:        "weather-guide",
		Description: "How to pick locations and interpret results from these tools",
		MIMEType:    "text/markdown",
	}, readGuide)
}

// handle adapts a typed tool function to the SDK handler signature. Failures are
// returned as error results so the model can read and act on them.
func handle[In, Out any](ts *Toolset, name string, fn func(context.Context, In) (Out, error)) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		start := time.Now()

		out, err := fn(ctx, in)
		if err != nil {
			ts.logger.Warn("tool call failed",
				"tool", name,
				"duration", time.Since(start),
				"status", openweathermap.StatusOf(err),
				"error", err,
			)
			return errorResult(err), nil, nil
		}

		ts.logger.Debug("tool call completed", "tool", name, "duration", time.Since(start))
		return nil, out, nil
	}
}

// coordinates picks explicit lat/lon over the location name. The resolver is
// only consulted when the pair is incomplete.
func (ts *Toolset) coordinates(ctx context.Context, name string, lat, lon *float64) (types.Coords, error) {
	if lat != nil && lon != nil {
		coords := types.NewCoords(*lat, *lon)
		if err := coords.Validate(); err != nil {
			return types.Coords{}, err
		}
		return coords, nil
	}

	if strings.TrimSpace(name) != "" {
		return ts.locations.Resolve(ctx, name)
	}

	return types.Coords{}, ErrMissingLocation
}
