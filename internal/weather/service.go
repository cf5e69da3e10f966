package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/solar"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/timezone"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
)

// forecastExclude trims the One Call payload to what a forecast needs.
var forecastExclude = []string{"minutely"}

// alertsExclude leaves only alerts in the One Call payload.
var alertsExclude = []string{"current", "minutely", "hourly", "daily"}

type OneCallProvider interface {
	// GetOneCall fetches the One Call 3.0 payload, omitting the excluded sections
	GetOneCall(ctx context.Context, coords types.Coords, units types.Units, exclude []string) (*openweathermap.OneCallResponse, error)
	GetHistoricalWeather(ctx context.Context, coords types.Coords, dt int64, units types.Units) (*openweathermap.TimeMachineResponse, error)
}

type ForecastProvider interface {
	// GetForecast fetches the free 5-day / 3-hour forecast
	GetForecast(ctx context.Context, coords types.Coords, units types.Units, cnt int) (*openweathermap.ForecastResponse, error)
}

type ConditionsProvider interface {
	GetCurrentWeather(ctx context.Context, coords types.Coords, units types.Units) (*openweathermap.CurrentWeatherResponse, error)
	GetUVIndex(ctx context.Context, coords types.Coords) (*openweathermap.UVIndexResponse, error)
}

type Service interface {
	// GetForecast tries One Call first and degrades to the free tier when the key is not entitled
	GetForecast(ctx context.Context, coords types.Coords, units types.Units) (*ForecastResult, error)
	GetHistoricalWeather(ctx context.Context, coords types.Coords, when string, units types.Units) (*openweathermap.TimeMachineResponse, error)
	GetAlerts(ctx context.Context, coords types.Coords) (*AlertsReport, error)
	GetSolarRadiation(ctx context.Context, coords types.Coords, label string) (*solar.Report, error)
}

type weatherService struct {
	oneCallProvider    OneCallProvider
	forecastProvider   ForecastProvider
	conditionsProvider ConditionsProvider
	timezoneService    timezone.Service
	logger             *slog.Logger
}

var newTimezoneService = timezone.NewService

// NewWeatherService wires every provider to the OpenWeatherMap client. When the
// timezone finder cannot be loaded, dates are interpreted in UTC.
func NewWeatherService(client *openweathermap.Client, logger *slog.Logger) Service {
	tzSvc, err := newTimezoneService()
	if err != nil {
		logger.Warn("timezone lookup unavailable, interpreting dates in UTC", "error", err)
		tzSvc = timezone.UTC{}
	}
	return NewWeatherServiceWithProviders(client, client, client, tzSvc, logger)
}

func NewWeatherServiceWithProviders(
	oneCallProvider OneCallProvider,
	forecastProvider ForecastProvider,
	conditionsProvider ConditionsProvider,
	timezoneService timezone.Service,
	logger *slog.Logger,
) Service {
	return &weatherService{
		oneCallProvider:    oneCallProvider,
		forecastProvider:   forecastProvider,
		conditionsProvider: conditionsProvider,
		timezoneService:    timezoneService,
		logger:             logger.With("component", "weather-service"),
	}
}

func (s *weatherService) GetForecast(ctx context.Context, coords types.Coords, units types.Units) (*ForecastResult, error) {
	oneCall, err := s.oneCallProvider.GetOneCall(ctx, coords, units, forecastExclude)
	if err == nil {
		return newOneCallResult(oneCall), nil
	}

	if !openweathermap.IsUnauthorized(err) {
		s.logger.Error("failed to get One Call forecast",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"status", openweathermap.StatusOf(err),
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("One Call not authorized, falling back to free tier forecast",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"status", openweathermap.StatusOf(err),
	)

	forecast, err := s.forecastProvider.GetForecast(ctx, coords, units, 0)
	if err != nil {
		s.logger.Error("failed to get free tier forecast", "error", err)
		return nil, err
	}

	return newFreeTierResult(forecast), nil
}

func (s *weatherService) GetHistoricalWeather(ctx context.Context, coords types.Coords, when string, units types.Units) (*openweathermap.TimeMachineResponse, error) {
	dt, err := parseWhen(when, s.timezoneService.Location(coords))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("requesting historical weather",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"dt", dt,
	)

	resp, err := s.oneCallProvider.GetHistoricalWeather(ctx, coords, dt, units)
	if err != nil {
		if openweathermap.IsUnauthorized(err) {
			return nil, &SubscriptionError{Feature: "historical weather", Err: err}
		}
		s.logger.Error("failed to get historical weather", "dt", dt, "error", err)
		return nil, err
	}

	return resp, nil
}

func (s *weatherService) GetAlerts(ctx context.Context, coords types.Coords) (*AlertsReport, error) {
	resp, err := s.oneCallProvider.GetOneCall(ctx, coords, types.DefaultUnits, alertsExclude)
	if err != nil {
		if openweathermap.IsUnauthorized(err) {
			return nil, &SubscriptionError{Feature: "weather alerts", Err: err}
		}
		s.logger.Error("failed to get weather alerts", "error", err)
		return nil, err
	}

	report := &AlertsReport{
		Lat:      coords.Latitude,
		Lon:      coords.Longitude,
		Alerts:   resp.Alerts,
		Timezone: resp.Timezone,
	}
	if report.Alerts == nil {
		report.Alerts = []openweathermap.WeatherAlert{}
	}

	return report, nil
}

// GetSolarRadiation estimates irradiance from the current cloud cover. The UV index
// refines the estimate when available; failing to fetch it is not an error.
func (s *weatherService) GetSolarRadiation(ctx context.Context, coords types.Coords, label string) (*solar.Report, error) {
	current, err := s.conditionsProvider.GetCurrentWeather(ctx, coords, types.UnitsMetric)
	if err != nil {
		s.logger.Error("failed to get current weather for solar estimate", "error", err)
		return nil, err
	}

	var uvi *float64
	uv, err := s.conditionsProvider.GetUVIndex(ctx, coords)
	if err != nil {
		s.logger.Warn("UV index unavailable, estimating without it",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
	} else {
		uvi = &uv.Value
	}

	observed := time.Now()
	if current.Dt > 0 {
		observed = time.Unix(current.Dt, 0)
	}
	month := observed.In(s.timezoneService.Location(coords)).Month()

	if label == "" {
		label = current.Name
	}
	if label == "" {
		label = coords.String()
	}

	cloudCover := solar.DefaultCloudCover
	if current.Clouds.All != nil {
		cloudCover = float64(*current.Clouds.All)
	}

	return solar.NewReport(label, coords, cloudCover, uvi, month), nil
}
