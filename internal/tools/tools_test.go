package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/location"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/timezone"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/weather"
)

const testAPIKey = "test-key"

const currentWeatherJSON = `{
	"coord": {"lon": -0.1278, "lat": 51.5074},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"main": {"temp": 11.2, "feels_like": 10.4, "temp_min": 10.1, "temp_max": 12.3, "pressure": 1012, "humidity": 81},
	"wind": {"speed": 4.1, "deg": 230},
	"clouds": {"all": 75},
	"dt": 1704110400,
	"sys": {"country": "GB"},
	"timezone": 0,
	"id": 2643743,
	"name": "London",
	"cod": 200
}`

const forecastJSON = `{
	"cod": "200",
	"cnt": 1,
	"list": [{
		"dt": 1704110400,
		"main": {"temp": 11.0, "feels_like": 10.0, "temp_min": 10.0, "temp_max": 12.0, "pressure": 1012, "humidity": 80},
		"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
		"clouds": {"all": 90},
		"wind": {"speed": 5.0, "deg": 220}
	}],
	"city": {"id": 2643743, "name": "London", "coord": {"lat": 51.5074, "lon": -0.1278}, "country": "GB", "timezone": 0, "sunrise": 0, "sunset": 0}
}`

const oneCallJSON = `{
	"lat": 51.5074, "lon": -0.1278, "timezone": "Europe/London", "timezone_offset": 0,
	"current": {"dt": 1704110400, "temp": 11.2, "feels_like": 10.4, "pressure": 1012, "humidity": 81, "dew_point": 8.0, "clouds": 75, "wind_speed": 4.1, "wind_deg": 230, "weather": []},
	"hourly": [],
	"daily": []
}`

const airQualityJSON = `{"coord": {"lon": -0.1278, "lat": 51.5074}, "list": [{"main": {"aqi": 2}, "components": {"co": 201.9, "pm2_5": 4.2}, "dt": 1704110400}]}`

const uvJSON = `{"lat": 51.5074, "lon": -0.1278, "date_iso": "2024-01-01T12:00:00Z", "date": 1704110400, "value": 1.2}`

const springfieldJSON = `[
	{"name": "Springfield", "lat": 39.7817, "lon": -89.6501, "country": "US", "state": "Illinois"},
	{"name": "Springfield", "lat": 37.209, "lon": -93.2923, "country": "US", "state": "Missouri"}
]`

// fakeUpstream stands in for the OpenWeatherMap API and records every request.
type fakeUpstream struct {
	mu        sync.Mutex
	hits      map[string]int
	queries   map[string]url.Values
	overrides map[string]http.HandlerFunc
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.queries[r.URL.Path] = r.URL.Query()
	override := f.overrides[r.URL.Path]
	f.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	switch r.URL.Path {
	case "/data/2.5/weather":
		writeJSON(w, http.StatusOK, currentWeatherJSON)
	case "/data/2.5/forecast", "/data/2.5/forecast/hourly":
		writeJSON(w, http.StatusOK, forecastJSON)
	case "/data/2.5/air_pollution":
		writeJSON(w, http.StatusOK, airQualityJSON)
	case "/data/2.5/uvi":
		writeJSON(w, http.StatusOK, uvJSON)
	case "/data/3.0/onecall":
		writeJSON(w, http.StatusOK, oneCallJSON)
	case "/data/3.0/onecall/timemachine":
		writeJSON(w, http.StatusOK, `{"lat": 51.5074, "lon": -0.1278, "timezone": "Europe/London", "timezone_offset": 0, "data": []}`)
	case "/geo/1.0/direct":
		if strings.EqualFold(r.URL.Query().Get("q"), "Springfield") {
			writeJSON(w, http.StatusOK, springfieldJSON)
			return
		}
		writeJSON(w, http.StatusOK, `[]`)
	default:
		writeJSON(w, http.StatusNotFound, `{"cod": "404", "message": "Internal error"}`)
	}
}

func (f *fakeUpstream) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeUpstream) lastQuery(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func statusHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, body)
	}
}

// countingLocations wraps a location.Service and counts resolver calls.
type countingLocations struct {
	location.Service
	resolveCalls atomic.Int32
}

func (c *countingLocations) Resolve(ctx context.Context, query string) (types.Coords, error) {
	c.resolveCalls.Add(1)
	return c.Service.Resolve(ctx, query)
}

type testEnv struct {
	upstream  *fakeUpstream
	locations *countingLocations
	session   *mcp.ClientSession
}

func newTestEnv(t *testing.T, overrides map[string]http.HandlerFunc) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	upstream := &fakeUpstream{
		hits:      map[string]int{},
		queries:   map[string]url.Values{},
		overrides: overrides,
	}
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	client := openweathermap.NewClient(openweathermap.Config{
		APIKey:     testAPIKey,
		BaseURL:    srv.URL + "/data/2.5",
		GeoURL:     srv.URL + "/geo/1.0",
		OneCallURL: srv.URL + "/data/3.0",
		TileURL:    srv.URL + "/map",
	}, logger)
	t.Cleanup(func() { _ = client.Close() })

	locations := &countingLocations{Service: location.NewLocationServiceWithProviders(client, logger)}
	weatherSvc := weather.NewWeatherServiceWithProviders(client, client, client, timezone.UTC{}, logger)
	server := NewServer(NewToolset(client, locations, weatherSvc, logger), "test")

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("server.Connect: %v", err)
	}

	mcpClient := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := mcpClient.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("client.Connect: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
		cancel()
	})

	return &testEnv{upstream: upstream, locations: locations, session: session}
}

// call invokes a tool and decodes its JSON text content.
func (e *testEnv) call(t *testing.T, name string, args map[string]any) (*mcp.CallToolResult, map[string]any) {
	t.Helper()

	result, err := e.session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body), "content: %s", text.Text)
	return result, body
}

func TestServer_ListTools(t *testing.T) {
	env := newTestEnv(t, nil)

	result, err := env.session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s has no description", tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %s has no input schema", tool.Name)
	}

	assert.ElementsMatch(t, []string{
		"search_location",
		"check_weather",
		"get_forecast",
		"check_air_quality",
		"check_uv_index",
		"get_historical_weather",
		"get_weather_alerts",
		"get_solar_radiation",
		"get_location_coordinates",
		"get_weather_by_zip",
		"get_hourly_forecast",
		"get_weather_map",
	}, names)
}

func TestServer_GuideResource(t *testing.T) {
	env := newTestEnv(t, nil)

	result, err := env.session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: GuideURI})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "search_location")
}

func TestCheckWeather_CoordinatesWinOverLocation(t *testing.T) {
	env := newTestEnv(t, nil)

	result, body := env.call(t, "check_weather", map[string]any{
		"location": "Springfield",
		"lat":      40.7128,
		"lon":      -74.006,
	})

	require.False(t, result.IsError, "unexpected error: %v", body)
	assert.Equal(t, int32(0), env.locations.resolveCalls.Load())
	assert.Equal(t, 0, env.upstream.hitCount("/geo/1.0/direct"))

	q := env.upstream.lastQuery("/data/2.5/weather")
	assert.Equal(t, "40.7128", q.Get("lat"))
	assert.Equal(t, "-74.006", q.Get("lon"))
	assert.Equal(t, "metric", q.Get("units"))
	assert.Equal(t, testAPIKey, q.Get("appid"))
}

func TestCheckWeather_LiteralCoordinateString(t *testing.T) {
	env := newTestEnv(t, nil)

	result, body := env.call(t, "check_weather", map[string]any{
		"location": "51.5074,-0.1278",
		"units":    "imperial",
	})

	require.False(t, result.IsError, "unexpected error: %v", body)
	assert.Equal(t, int32(1), env.locations.resolveCalls.Load())
	assert.Equal(t, 0, env.upstream.hitCount("/geo/1.0/direct"))

	q := env.upstream.lastQuery("/data/2.5/weather")
	assert.Equal(t, "51.5074", q.Get("lat"))
	assert.Equal(t, "-0.1278", q.Get("lon"))
	assert.Equal(t, "imperial", q.Get("units"))
	assert.Equal(t, "London", body["name"])
}

func TestCheckWeather_GeocodedName(t *testing.T) {
	env := newTestEnv(t, nil)

	result, body := env.call(t, "check_weather", map[string]any{"location": "Springfield"})

	require.False(t, result.IsError, "unexpected error: %v", body)
	assert.Equal(t, "1", env.upstream.lastQuery("/geo/1.0/direct").Get("limit"))

	q := env.upstream.lastQuery("/data/2.5/weather")
	assert.Equal(t, "39.7817", q.Get("lat"))
	assert.Equal(t, "-89.6501", q.Get("lon"))
}

func TestGetForecast(t *testing.T) {
	t.Run("one call with no alerts field", func(t *testing.T) {
		env := newTestEnv(t, nil)

		result, body := env.call(t, "get_forecast", map[string]any{"lat": 51.5074, "lon": -0.1278})

		require.False(t, result.IsError, "unexpected error: %v", body)
		assert.Equal(t, "one_call", body["source"])
		assert.Equal(t, []any{}, body["alerts"])
		assert.Equal(t, "Europe/London", body["timezone"])
		assert.NotContains(t, body, "forecast_list")
		assert.Equal(t, 0, env.upstream.hitCount("/data/2.5/forecast"))
		assert.Equal(t, "minutely", env.upstream.lastQuery("/data/3.0/onecall").Get("exclude"))
	})

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status)+" falls back to free tier", func(t *testing.T) {
			env := newTestEnv(t, map[string]http.HandlerFunc{
				"/data/3.0/onecall": statusHandler(status, `{"cod": 401, "message": "Please note that using One Call 3.0 requires a separate subscription"}`),
			})

			result, body := env.call(t, "get_forecast", map[string]any{"location": "51.5074,-0.1278"})

			require.False(t, result.IsError, "unexpected error: %v", body)
			assert.Equal(t, "free_tier", body["source"])
			assert.Contains(t, strings.ToLower(body["note"].(string)), "subscription")
			assert.IsType(t, []any{}, body["forecast_list"])
			assert.Len(t, body["forecast_list"], 1)
			assert.Equal(t, []any{}, body["alerts"])
			assert.NotContains(t, body, "hourly")
			assert.Equal(t, 1, env.upstream.hitCount("/data/2.5/forecast"))
		})
	}

	t.Run("free tier with no list still returns a sequence", func(t *testing.T) {
		env := newTestEnv(t, map[string]http.HandlerFunc{
			"/data/3.0/onecall":  statusHandler(http.StatusForbidden, `{"cod": 403, "message": "Forbidden"}`),
			"/data/2.5/forecast": statusHandler(http.StatusOK, `{"cod": "200", "cnt": 0, "city": {"name": "Nowhere"}}`),
		})

		result, body := env.call(t, "get_forecast", map[string]any{"lat": 0, "lon": 0})

		require.False(t, result.IsError, "unexpected error: %v", body)
		assert.Equal(t, []any{}, body["forecast_list"])
	})

	t.Run("500 is reported without fallback", func(t *testing.T) {
		env := newTestEnv(t, map[string]http.HandlerFunc{
			"/data/3.0/onecall": statusHandler(http.StatusInternalServerError, `{"cod": 500, "message": "Internal error"}`),
		})

		result, body := env.call(t, "get_forecast", map[string]any{"lat": 0, "lon": 0})

		require.True(t, result.IsError)
		errBody := body["error"].(map[string]any)
		assert.Equal(t, ErrorTypeProvider, errBody["type"])
		assert.Equal(t, float64(500), errBody["status"])
		assert.Equal(t, 0, env.upstream.hitCount("/data/2.5/forecast"))
	})
}

func TestToolErrors(t *testing.T) {
	tests := []struct {
		name           string
		tool           string
		args           map[string]any
		overrides      map[string]http.HandlerFunc
		wantType       string
		wantStatus     float64
		wantMessage    string
		wantSuggestion string
	}{
		{
			name:        "missing location and coordinates",
			tool:        "check_weather",
			args:        map[string]any{},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "Must provide either a location name or coordinates",
		},
		{
			name:        "only latitude given",
			tool:        "check_air_quality",
			args:        map[string]any{"lat": 10.0},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "Must provide either a location name or coordinates",
		},
		{
			name:        "latitude out of range",
			tool:        "check_uv_index",
			args:        map[string]any{"lat": 91.0, "lon": 0.0},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "latitude",
		},
		{
			name:        "unknown units",
			tool:        "check_weather",
			args:        map[string]any{"location": "London", "units": "kelvin"},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "units",
		},
		{
			name:        "malformed historical date",
			tool:        "get_historical_weather",
			args:        map[string]any{"lat": 1.0, "lon": 1.0, "date": "last week"},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "invalid date",
		},
		{
			name:           "unknown place",
			tool:           "check_weather",
			args:           map[string]any{"location": "Waimea, Hawaii, United States"},
			wantType:       ErrorTypeNotFound,
			wantStatus:     404,
			wantMessage:    "Location not found: Waimea, Hawaii, United States",
			wantSuggestion: "search_location",
		},
		{
			name: "historical weather without subscription",
			tool: "get_historical_weather",
			args: map[string]any{"lat": 1.0, "lon": 1.0, "date": "2024-01-15"},
			overrides: map[string]http.HandlerFunc{
				"/data/3.0/onecall/timemachine": statusHandler(http.StatusUnauthorized, `{"cod": 401, "message": "Invalid API key"}`),
			},
			wantType:       ErrorTypeSubscription,
			wantStatus:     401,
			wantMessage:    "historical weather",
			wantSuggestion: "One Call API 3.0",
		},
		{
			name: "alerts without subscription",
			tool: "get_weather_alerts",
			args: map[string]any{"lat": 1.0, "lon": 1.0},
			overrides: map[string]http.HandlerFunc{
				"/data/3.0/onecall": statusHandler(http.StatusForbidden, `{"cod": 403, "message": "Forbidden"}`),
			},
			wantType:       ErrorTypeSubscription,
			wantStatus:     403,
			wantMessage:    "weather alerts",
			wantSuggestion: "One Call API 3.0",
		},
		{
			name: "upstream error keeps status and message",
			tool: "check_air_quality",
			args: map[string]any{"lat": 1.0, "lon": 1.0},
			overrides: map[string]http.HandlerFunc{
				"/data/2.5/air_pollution": statusHandler(http.StatusTooManyRequests, `{"cod": 429, "message": "Your account is temporary blocked"}`),
			},
			wantType:    ErrorTypeProvider,
			wantStatus:  429,
			wantMessage: "Your account is temporary blocked",
		},
		{
			name: "invalid key suggests checking it",
			tool: "check_weather",
			args: map[string]any{"lat": 1.0, "lon": 1.0},
			overrides: map[string]http.HandlerFunc{
				"/data/2.5/weather": statusHandler(http.StatusUnauthorized, `{"cod": 401, "message": "Invalid API key"}`),
			},
			wantType:       ErrorTypeProvider,
			wantStatus:     401,
			wantMessage:    "Invalid API key",
			wantSuggestion: "OPENWEATHERMAP_API_KEY",
		},
		{
			name:        "empty zip code",
			tool:        "get_weather_by_zip",
			args:        map[string]any{"zip_code": "  "},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "zip_code",
		},
		{
			name:        "unknown map layer",
			tool:        "get_weather_map",
			args:        map[string]any{"layer": "snow_new", "z": 1, "x": 0, "y": 0},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "layer",
		},
		{
			name:        "zoom out of range",
			tool:        "get_weather_map",
			args:        map[string]any{"layer": "clouds_new", "z": 16, "x": 0, "y": 0},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "zoom",
		},
		{
			name:        "tile outside zoom grid",
			tool:        "get_weather_map",
			args:        map[string]any{"layer": "clouds_new", "z": 1, "x": 2, "y": 0},
			wantType:    ErrorTypeCaller,
			wantStatus:  400,
			wantMessage: "tile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.overrides)

			result, body := env.call(t, tt.tool, tt.args)

			require.True(t, result.IsError, "expected an error result, got %v", body)
			errBody, ok := body["error"].(map[string]any)
			require.True(t, ok, "missing error object in %v", body)

			assert.Equal(t, tt.wantType, errBody["type"])
			assert.Equal(t, tt.wantStatus, errBody["status"])
			assert.Contains(t, errBody["message"], tt.wantMessage)
			if tt.wantSuggestion != "" {
				assert.Contains(t, errBody["suggestion"], tt.wantSuggestion)
			}
		})
	}
}

func TestSearchLocation(t *testing.T) {
	env := newTestEnv(t, nil)

	result, body := env.call(t, "search_location", map[string]any{"query": "Springfield", "limit": 3})

	require.False(t, result.IsError, "unexpected error: %v", body)
	assert.Equal(t, "Springfield", body["query"])
	assert.Equal(t, "3", env.upstream.lastQuery("/geo/1.0/direct").Get("limit"))

	results := body["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "Illinois", results[0].(map[string]any)["state"])
	assert.Equal(t, "Missouri", results[1].(map[string]any)["state"])
}

func TestSearchLocation_NoMatches(t *testing.T) {
	env := newTestEnv(t, nil)

	result, body := env.call(t, "search_location", map[string]any{"query": "Atlantis"})

	require.False(t, result.IsError, "unexpected error: %v", body)
	assert.Equal(t, []any{}, body["results"])
	assert.Equal(t, "5", env.upstream.lastQuery("/geo/1.0/direct").Get("limit"))
}

func TestGetLocationCoordinates(t *testing.T) {
	t.Run("preset", func(t *testing.T) {
		env := newTestEnv(t, nil)

		result, body := env.call(t, "get_location_coordinates", map[string]any{"location": "colón"})

		require.False(t, result.IsError, "unexpected error: %v", body)
		assert.Equal(t, "preset", body["source"])
		assert.Equal(t, 0, env.upstream.hitCount("/geo/1.0/direct"))
	})

	t.Run("geocoded", func(t *testing.T) {
		env := newTestEnv(t, nil)

		result, body := env.call(t, "get_location_coordinates", map[string]any{"location": "Springfield"})

		require.False(t, result.IsError, "unexpected error: %v", body)
		assert.Equal(t, "geocoding", body["source"])
		assert.Equal(t, 39.7817, body["lat"])
		assert.Equal(t, "Illinois", body["state"])
	})
}

func TestPassThroughTools(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		args      map[string]any
		path      string
		wantQuery map[string]string
		wantKey   string
	}{
		{
			name:      "air quality",
			tool:      "check_air_quality",
			args:      map[string]any{"lat": 51.5074, "lon": -0.1278},
			path:      "/data/2.5/air_pollution",
			wantQuery: map[string]string{"lat": "51.5074"},
			wantKey:   "list",
		},
		{
			name:      "uv index",
			tool:      "check_uv_index",
			args:      map[string]any{"lat": 51.5074, "lon": -0.1278},
			path:      "/data/2.5/uvi",
			wantQuery: map[string]string{"lon": "-0.1278"},
			wantKey:   "value",
		},
		{
			name:      "zip with country",
			tool:      "get_weather_by_zip",
			args:      map[string]any{"zip_code": "94040", "country_code": "US"},
			path:      "/data/2.5/weather",
			wantQuery: map[string]string{"zip": "94040,US", "units": "metric"},
			wantKey:   "main",
		},
		{
			name:      "zip without country",
			tool:      "get_weather_by_zip",
			args:      map[string]any{"zip_code": "SW1A", "units": "standard"},
			path:      "/data/2.5/weather",
			wantQuery: map[string]string{"zip": "SW1A", "units": "standard"},
			wantKey:   "main",
		},
		{
			name:      "hourly forecast",
			tool:      "get_hourly_forecast",
			args:      map[string]any{"lat": 51.5074, "lon": -0.1278, "cnt": 12},
			path:      "/data/2.5/forecast/hourly",
			wantQuery: map[string]string{"cnt": "12"},
			wantKey:   "list",
		},
		{
			name:      "historical weather by timestamp",
			tool:      "get_historical_weather",
			args:      map[string]any{"lat": 51.5074, "lon": -0.1278, "date": "1704110400"},
			path:      "/data/3.0/onecall/timemachine",
			wantQuery: map[string]string{"dt": "1704110400"},
			wantKey:   "data",
		},
		{
			name:      "historical weather by date at UTC noon",
			tool:      "get_historical_weather",
			args:      map[string]any{"lat": 51.5074, "lon": -0.1278, "date": "2024-01-01"},
			path:      "/data/3.0/onecall/timemachine",
			wantQuery: map[string]string{"dt": "1704110400"},
			wantKey:   "data",
		},
		{
			name:      "alerts",
			tool:      "get_weather_alerts",
			args:      map[string]any{"lat": 51.5074, "lon": -0.1278},
			path:      "/data/3.0/onecall",
			wantQuery: map[string]string{"exclude": "current,minutely,hourly,daily"},
			wantKey:   "alerts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)

			result, body := env.call(t, tt.tool, tt.args)

			require.False(t, result.IsError, "unexpected error: %v", body)
			assert.Contains(t, body, tt.wantKey)
			q := env.upstream.lastQuery(tt.path)
			for key, want := range tt.wantQuery {
				assert.Equal(t, want, q.Get(key), "query parameter %s", key)
			}
		})
	}
}

func TestGetSolarRadiation(t *testing.T) {
	env := newTestEnv(t, map[string]http.HandlerFunc{
		"/data/2.5/uvi": statusHandler(http.StatusServiceUnavailable, `{"message": "down"}`),
	})

	result, body := env.call(t, "get_solar_radiation", map[string]any{"lat": 51.5074, "lon": -0.1278})

	require.False(t, result.IsError, "unexpected error: %v", body)
	assert.Equal(t, "London", body["location"])
	assert.Equal(t, "OpenWeatherMap", body["source"])
	assert.NotContains(t, body, "uv_index_avg")
	assert.Len(t, body["monthly_averages"], 12)
}

func TestGetWeatherMap(t *testing.T) {
	env := newTestEnv(t, nil)

	result, body := env.call(t, "get_weather_map", map[string]any{"layer": "clouds_new", "z": 3, "x": 2, "y": 1})

	require.False(t, result.IsError, "unexpected error: %v", body)
	assert.Equal(t, float64(3), body["zoom"])
	assert.True(t, strings.HasSuffix(body["tile_url"].(string), "/map/clouds_new/3/2/1.png?appid="+testAPIKey), body["tile_url"])
	assert.Equal(t, 0, env.upstream.hitCount("/map/clouds_new/3/2/1.png"))
}
