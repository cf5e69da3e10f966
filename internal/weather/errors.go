package weather

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is returned when a historical date cannot be interpreted.
var ErrInvalidDate = errors.New("invalid date: expected a Unix timestamp, YYYY-MM-DD or RFC 3339 time")

// SubscriptionError reports that the configured key is not entitled to a premium
// endpoint that has no free-tier equivalent. It unwraps to the upstream ProviderError.
type SubscriptionError struct {
	Feature string
	Err     error
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("%s requires a One Call API 3.0 subscription: %v", e.Feature, e.Err)
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}
