package openweathermap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
	"github.com/tidwall/gjson"
)

// API Docs: https://openweathermap.org/api
// Sample requests:
// - https://api.openweathermap.org/data/2.5/weather?lat=51.5074&lon=-0.1278&units=metric&appid=KEY
// - https://api.openweathermap.org/geo/1.0/direct?q=London&limit=5&appid=KEY
// - https://api.openweathermap.org/data/3.0/onecall?lat=51.5074&lon=-0.1278&appid=KEY
const (
	DefaultBaseURL    = "https://api.openweathermap.org/data/2.5"
	DefaultGeoURL     = "https://api.openweathermap.org/geo/1.0"
	DefaultOneCallURL = "https://api.openweathermap.org/data/3.0"
	DefaultTileURL    = "https://tile.openweathermap.org/map"
	DefaultTimeout    = 30 * time.Second

	userAgent = "mcp-server-openweathermap/1.0"
)

// Config holds the credentials and endpoints of a Client. Zero values fall back to defaults.
type Config struct {
	APIKey     string
	BaseURL    string
	GeoURL     string
	OneCallURL string
	TileURL    string
	Timeout    time.Duration
}

// Client wraps the OpenWeatherMap HTTP API. It is safe for concurrent use.
// The underlying *http.Client is created on first use and released by Close.
type Client struct {
	apiKey     string
	baseURL    string
	geoURL     string
	oneCallURL string
	tileURL    string
	timeout    time.Duration
	logger     *slog.Logger

	mu         sync.Mutex
	httpClient *http.Client
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(orDefault(cfg.BaseURL, DefaultBaseURL), "/"),
		geoURL:     strings.TrimRight(orDefault(cfg.GeoURL, DefaultGeoURL), "/"),
		oneCallURL: strings.TrimRight(orDefault(cfg.OneCallURL, DefaultOneCallURL), "/"),
		tileURL:    strings.TrimRight(orDefault(cfg.TileURL, DefaultTileURL), "/"),
		timeout:    cfg.Timeout,
		logger:     logger.With("component", "openweathermap-client"),
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Open creates the underlying HTTP session if it does not exist yet.
// Requests call it implicitly; pairing it with a deferred Close scopes the session.
func (c *Client) Open() *Client {
	c.session()
	return c
}

func (c *Client) session() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	return c.httpClient
}

// Close releases the HTTP session. Closing an unopened or already closed client is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
		c.httpClient = nil
	}
	return nil
}

// GetCurrentWeather fetches current conditions at the given coordinates.
func (c *Client) GetCurrentWeather(ctx context.Context, coords types.Coords, units types.Units) (*CurrentWeatherResponse, error) {
	q := coordsQuery(coords)
	q.Set("units", units.String())

	var apiResp CurrentWeatherResponse
	if err := c.get(ctx, c.baseURL+"/weather", q, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// GetWeatherByCity fetches current conditions using upstream name matching, e.g. "London,GB".
func (c *Client) GetWeatherByCity(ctx context.Context, city string, units types.Units) (*CurrentWeatherResponse, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("units", units.String())

	var apiResp CurrentWeatherResponse
	if err := c.get(ctx, c.baseURL+"/weather", q, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// GetWeatherByZip fetches current conditions for a postal code, optionally
// qualified by a two letter country code.
func (c *Client) GetWeatherByZip(ctx context.Context, zip, countryCode string, units types.Units) (*CurrentWeatherResponse, error) {
	q := url.Values{}
	if countryCode != "" {
		q.Set("zip", zip+","+countryCode)
	} else {
		q.Set("zip", zip)
	}
	q.Set("units", units.String())

	var apiResp CurrentWeatherResponse
	if err := c.get(ctx, c.baseURL+"/weather", q, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// GetForecast fetches the free 5 day forecast in 3 hour steps. cnt limits the
// number of steps (max 40); zero leaves it to the upstream default.
func (c *Client) GetForecast(ctx context.Context, coords types.Coords, units types.Units, cnt int) (*ForecastResponse, error) {
	q := coordsQuery(coords)
	q.Set("units", units.String())
	setCount(q, cnt)

	var apiResp ForecastResponse
	if err := c.get(ctx, c.baseURL+"/forecast", q, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

func (c *Client) GetForecastByCity(ctx context.Context, city string, units types.Units, cnt int) (*ForecastResponse, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("units", units.String())
	setCount(q, cnt)

	var apiResp ForecastResponse
	if err := c.get(ctx, c.baseURL+"/forecast", q, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// GetHourlyForecast fetches the 4 day hourly forecast (max 96 steps).
// The endpoint needs a paid plan; free keys get a 401.
func (c *Client) GetHourlyForecast(ctx context.Context, coords types.Coords, units types.Units, cnt int) (*ForecastResponse, error) {
	q := coordsQuery(coords)
	q.Set("units", units.String())
	setCount(q, cnt)

	var apiResp ForecastResponse
	if err := c.get(ctx, c.baseURL+"/forecast/hourly", q, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// GetAirQuality fetches the air quality index and pollutant concentrations.
func (c *Client) GetAirQuality(ctx context.Context, coords types.Coords) (*AirQualityResponse, error) {
	var apiResp AirQualityResponse
	if err := c.get(ctx, c.baseURL+"/air_pollution", coordsQuery(coords), &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

func (c *Client) GetUVIndex(ctx context.Context, coords types.Coords) (*UVIndexResponse, error) {
	var apiResp UVIndexResponse
	if err := c.get(ctx, c.baseURL+"/uvi", coordsQuery(coords), &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// GetOneCall fetches current, minutely, hourly, daily and alert data in one
// request. exclude lists the parts to leave out.
func (c *Client) GetOneCall(ctx context.Context, coords types.Coords, units types.Units, exclude []string) (*OneCallResponse, error) {
	q := coordsQuery(coords)
	q.Set("units", units.String())
	if len(exclude) > 0 {
		q.Set("exclude", strings.Join(exclude, ","))
	}

	var apiResp OneCallResponse
	if err := c.get(ctx, c.oneCallURL+"/onecall", q, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// GetHistoricalWeather fetches the observation closest to the Unix timestamp dt.
func (c *Client) GetHistoricalWeather(ctx context.Context, coords types.Coords, dt int64, units types.Units) (*TimeMachineResponse, error) {
	q := coordsQuery(coords)
	q.Set("dt", strconv.FormatInt(dt, 10))
	q.Set("units", units.String())

	var apiResp TimeMachineResponse
	if err := c.get(ctx, c.oneCallURL+"/onecall/timemachine", q, &apiResp); err != nil {
		return nil, err
	}
	return &apiResp, nil
}

// Geocode returns up to limit candidates for a place name, in provider order.
func (c *Client) Geocode(ctx context.Context, query string, limit int) ([]GeocodingResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.do(ctx, c.geoURL+"/direct", q)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.logger.Warn("geocoding returned a non-array body", "query", query)
		return []GeocodingResult{}, nil
	}

	results := []GeocodingResult{}
	if err := json.Unmarshal(trimmed, &results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return results, nil
}

// TileURL builds the URL of a weather map tile. No request is made.
func (c *Client) TileURL(layer string, z, x, y int) string {
	u := fmt.Sprintf("%s/%s/%d/%d/%d.png", c.tileURL, url.PathEscape(layer), z, x, y)
	if c.apiKey != "" {
		u += "?appid=" + url.QueryEscape(c.apiKey)
	}
	return u
}

func coordsQuery(coords types.Coords) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	return q
}

func setCount(q url.Values, cnt int) {
	if cnt > 0 {
		q.Set("cnt", strconv.Itoa(cnt))
	}
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	body, err := c.do(ctx, endpoint, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("failed to decode response", "url", endpoint, "error", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// do performs a GET request and returns the JSON body. Non-JSON bodies are
// wrapped as {"result": "<text>"} and reported as a ProviderError.
func (c *Client) do(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if c.apiKey != "" {
		q.Set("appid", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching", "url", endpoint, "lat", q.Get("lat"), "lon", q.Get("lon"))

	resp, err := c.session().Do(req)
	if err != nil {
		c.logger.Error("request failed", "url", endpoint, "error", err)
		return nil, newNetworkError(err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("failed to read response body", "url", endpoint, "error", err)
		return nil, newNetworkError(err)
	}

	body, isJSON := normalizeBody(resp.Header.Get("Content-Type"), raw)

	if resp.StatusCode >= http.StatusBadRequest {
		perr := &ProviderError{
			Status:  resp.StatusCode,
			Message: errorMessage(body),
			Details: decodeDetails(body),
		}
		c.logger.Warn("OpenWeatherMap API returned error",
			"url", endpoint,
			"status_code", resp.StatusCode,
			"message", perr.Message,
		)
		return nil, perr
	}

	// A success status with a body we cannot decode is still a failed call
	if !isJSON {
		c.logger.Warn("OpenWeatherMap API returned non-JSON body",
			"url", endpoint,
			"status_code", resp.StatusCode,
			"content_type", resp.Header.Get("Content-Type"),
		)
		return nil, &ProviderError{
			Status:  http.StatusBadGateway,
			Message: "Unexpected non-JSON response",
			Details: decodeDetails(body),
		}
	}

	return body, nil
}

// normalizeBody returns the JSON body, or {"result": "<text>"} and false when
// the upstream did not send JSON.
func normalizeBody(contentType string, raw []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(raw)
	if strings.Contains(contentType, "application/json") || bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		if json.Valid(trimmed) {
			return trimmed, true
		}
	}

	wrapped, _ := json.Marshal(map[string]string{"result": string(raw)})
	return wrapped, false
}

// errorMessage mirrors the shapes the API uses for errors:
// {"cod":401,"message":"..."} and {"error":{"message":"..."}} or {"error":"..."}.
func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	if msg := gjson.GetBytes(body, "error"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	return "Unknown error"
}

func decodeDetails(body []byte) any {
	var details any
	if err := json.Unmarshal(body, &details); err != nil {
		return nil
	}
	return details
}
