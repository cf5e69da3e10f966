package openweathermap

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderError is returned for any non-2xx upstream response and for transport
// failures. Transport failures carry http.StatusInternalServerError.
type ProviderError struct {
	Status  int
	Message string
	Details any
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("OpenWeatherMap API Error %d: %s", e.Status, e.Message)
}

// NewProviderError creates a ProviderError without diagnostic details.
func NewProviderError(status int, message string) *ProviderError {
	return &ProviderError{Status: status, Message: message}
}

func newNetworkError(err error) *ProviderError {
	return &ProviderError{
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Network error: %v", err),
	}
}

// StatusOf returns the upstream status carried by err, or 0 when err is not a ProviderError.
func StatusOf(err error) int {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Status
	}
	return 0
}

// HasStatus reports whether err wraps a ProviderError with one of the given statuses.
func HasStatus(err error, statuses ...int) bool {
	status := StatusOf(err)
	if status == 0 {
		return false
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsUnauthorized reports whether the credential is not allowed to use an endpoint.
func IsUnauthorized(err error) bool {
	return HasStatus(err, http.StatusUnauthorized, http.StatusForbidden)
}
