package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseWhen converts a historical point in time to a Unix timestamp.
// A bare date is read as noon in loc.
func parseWhen(when string, loc *time.Location) (int64, error) {
	when = strings.TrimSpace(when)
	if when == "" {
		return 0, ErrInvalidDate
	}

	if unix, err := strconv.ParseInt(when, 10, 64); err == nil {
		if unix < 0 {
			return 0, fmt.Errorf("%w: %q is before 1970", ErrInvalidDate, when)
		}
		return unix, nil
	}

	if loc == nil {
		loc = time.UTC
	}
	if day, err := time.ParseInLocation(dateLayout, when, loc); err == nil {
		return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc).Unix(), nil
	}

	if ts, err := time.Parse(time.RFC3339, when); err == nil {
		return ts.Unix(), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidDate, when)
}
