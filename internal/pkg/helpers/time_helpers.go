package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
)

// DateTimeLayout is the wire format for record timestamps.
const DateTimeLayout = "2006-01-02T15:04:05"

// DateLayout is the wire format for drive dates.
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDateTime parses a record timestamp in the portal wire format.
func ParseDateTime(value string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(apperrors.ErrInvalidDateFormat,
			"invalid date format, expected yyyy-MM-ddTHH:mm:ss")
	}
	return t, nil
}

// ParseDate parses a drive date in yyyy-MM-dd form.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(apperrors.ErrInvalidDateFormat,
			"invalid date format, expected yyyy-MM-dd")
	}
	return t, nil
}

// Midnight takes the calendar date of t as observed in its own
// location and pins it to UTC midnight. Subtracting two such values
// counts whole days, no matter which locations the inputs carried.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
