package tools

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NimbleBrainInc/mcp-openweathermap/internal/location"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/providers/openweathermap"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/types"
	"github.com/NimbleBrainInc/mcp-openweathermap/internal/weather"
)

var (
	ErrMissingLocation = errors.New("Must provide either a location name or coordinates (lat and lon)")
	ErrMissingZip      = errors.New("zip_code must not be empty")
	ErrInvalidLayer    = errors.New("layer must be one of temp_new, precipitation_new, clouds_new, pressure_new, wind_new")
	ErrInvalidZoom     = errors.New("zoom level z must be between 0 and 15")
	ErrInvalidTile     = errors.New("tile x and y must be between 0 and 2^z - 1")
)

// Error types reported to tool callers.
const (
	ErrorTypeCaller       = "caller_error"
	ErrorTypeProvider     = "provider_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeSubscription = "subscription_required"
)

const (
	suggestSearch       = "Use search_location to list matching places, then retry with the lat and lon of the right one."
	suggestSubscription = "This feature needs a One Call API 3.0 subscription: https://openweathermap.org/api/one-call-3"
	suggestAPIKey       = "Check that OPENWEATHERMAP_API_KEY holds a valid, activated key."
)

var callerErrors = []error{
	ErrMissingLocation,
	ErrMissingZip,
	ErrInvalidLayer,
	ErrInvalidZoom,
	ErrInvalidTile,
	types.ErrInvalidLatitude,
	types.ErrInvalidLongitude,
	types.ErrInvalidUnits,
	weather.ErrInvalidDate,
	location.ErrEmptyQuery,
}

// ToolError is the body of a failed tool call.
type ToolError struct {
	Type       string `json:"type"`
	Status     int    `json:"status"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// classify maps an error onto the caller facing taxonomy.
func classify(err error) ToolError {
	for _, target := range callerErrors {
		if errors.Is(err, target) {
			return ToolError{Type: ErrorTypeCaller, Status: http.StatusBadRequest, Message: err.Error()}
		}
	}

	var perr *openweathermap.ProviderError
	hasProvider := errors.As(err, &perr)

	var notFound *location.NotFoundError
	if errors.As(err, &notFound) {
		return ToolError{
			Type:       ErrorTypeNotFound,
			Status:     http.StatusNotFound,
			Message:    perr.Message,
			Suggestion: suggestSearch,
		}
	}

	var subErr *weather.SubscriptionError
	if errors.As(err, &subErr) {
		te := ToolError{
			Type:       ErrorTypeSubscription,
			Status:     openweathermap.StatusOf(err),
			Message:    subErr.Error(),
			Suggestion: suggestSubscription,
		}
		if hasProvider {
			te.Details = perr.Details
		}
		return te
	}

	if hasProvider {
		te := ToolError{
			Type:    ErrorTypeProvider,
			Status:  perr.Status,
			Message: perr.Error(),
			Details: perr.Details,
		}
		if openweathermap.IsUnauthorized(err) {
			te.Suggestion = suggestAPIKey
		}
		return te
	}

	return ToolError{Type: ErrorTypeProvider, Status: http.StatusInternalServerError, Message: err.Error()}
}

// errorResult renders err as an error tool result whose text is {"error": {...}}.
func errorResult(err error) *mcp.CallToolResult {
	body, marshalErr := json.Marshal(map[string]ToolError{"error": classify(err)})
	if marshalErr != nil {
		body, _ = json.Marshal(map[string]ToolError{"error": {
			Type:    ErrorTypeProvider,
			Status:  http.StatusInternalServerError,
			Message: err.Error(),
		}})
	}

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(body)},
		},
	}
}
