package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolvax/vaccine-portal/internal/pkg/apperrors"
)

func TestParseDateTime(t *testing.T) {
	parsed, err := ParseDateTime("2026-03-16T09:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC), parsed)

	_, err = ParseDateTime("2026-03-16")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateFormat)

	_, err = ParseDateTime("16/03/2026 09:30")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateFormat)
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2015-08-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, 8, 20, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("20-08-2015")
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateFormat)
}

func TestMidnight(t *testing.T) {
	at := time.Date(2026, 3, 16, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), Midnight(at))

	// the calendar date is read in the input's own location, then
	// pinned to UTC so day arithmetic never mixes locations
	loc := time.FixedZone("IST", 5*3600+1800)
	at = time.Date(2026, 3, 16, 1, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), Midnight(at))

	west := time.FixedZone("UTC-5", -5*3600)
	at = time.Date(2026, 3, 1, 22, 0, 0, 0, west)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Midnight(at))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("bogus", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
