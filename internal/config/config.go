package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
)

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config holds all configuration for the application
type Config struct {
	Server         ServerConfig
	Log            LogConfig
	OpenWeatherMap OpenWeatherMapConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port      int
	GinMode   string // debug, release, test
	Transport string // http, stdio
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// OpenWeatherMapConfig holds the upstream API credentials and endpoints
type OpenWeatherMapConfig struct {
	APIKey     string
	BaseURL    string
	GeoURL     string
	OneCallURL string
	TileURL    string
	Timeout    time.Duration `mapstructure:"-"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.mcp-openweathermap")

	// Set defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.transport", TransportHTTP)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("openweathermap.apikey", "")
	v.SetDefault("openweathermap.baseurl", openweathermap.DefaultBaseURL)
	v.SetDefault("openweathermap.geourl", openweathermap.DefaultGeoURL)
	v.SetDefault("openweathermap.onecallurl", openweathermap.DefaultOneCallURL)
	v.SetDefault("openweathermap.tileurl", openweathermap.DefaultTileURL)
	v.SetDefault("openweathermap.timeout", openweathermap.DefaultTimeout.String())

	// Read from environment variables, e.g. MCP_OWM_SERVER_PORT
	v.SetEnvPrefix("MCP_OWM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional variable names win over the prefixed ones
	if err := v.BindEnv("openweathermap.apikey", "OPENWEATHERMAP_API_KEY", "MCP_OWM_OPENWEATHERMAP_APIKEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key: %w", err)
	}
	if err := v.BindEnv("openweathermap.timeout", "OPENWEATHERMAP_TIMEOUT", "MCP_OWM_OPENWEATHERMAP_TIMEOUT"); err != nil {
		return nil, fmt.Errorf("failed to bind timeout: %w", err)
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	timeout, err := parseTimeout(v.GetString("openweathermap.timeout"))
	if err != nil {
		return nil, err
	}
	cfg.OpenWeatherMap.Timeout = timeout

	cfg.Server.Transport = strings.ToLower(strings.TrimSpace(cfg.Server.Transport))
	switch cfg.Server.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return nil, fmt.Errorf("invalid server.transport %q: must be %s or %s", cfg.Server.Transport, TransportHTTP, TransportStdio)
	}

	return &cfg, nil
}

// parseTimeout accepts a Go duration ("45s") or a bare number of seconds ("45").
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return openweathermap.DefaultTimeout, nil
	}

	if seconds, err := strconv.ParseFloat(s, 64); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("invalid openweathermap.timeout %q: must be positive", s)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid openweathermap.timeout %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid openweathermap.timeout %q: must be positive", s)
	}
	return d, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// ClientConfig converts the upstream settings for openweathermap.NewClient
func (c *Config) ClientConfig() openweathermap.Config {
	return openweathermap.Config{
		APIKey:     c.OpenWeatherMap.APIKey,
		BaseURL:    c.OpenWeatherMap.BaseURL,
		GeoURL:     c.OpenWeatherMap.GeoURL,
		OneCallURL: c.OpenWeatherMap.OneCallURL,
		TileURL:    c.OpenWeatherMap.TileURL,
		Timeout:    c.OpenWeatherMap.Timeout,
	}
}

// NewLogger creates a new slog.Logger based on the configuration.
// Logs go to stderr so that stdout stays free for the stdio transport.
func (c *Config) NewLogger() *slog.Logger {
	return c.newLogger(os.Stderr)
}

func (c *Config) newLogger(w io.Writer) *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
