package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.January, parsed.Month())
	assert.Equal(t, 10, parsed.Day())

	_, err = ParseDate("10/01/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	day := func(s string) time.Time {
		parsed, err := ParseDate(s)
		require.NoError(t, err)
		return parsed
	}

	assert.Equal(t, 2, DaysBetween(day("2024-01-10"), day("2024-01-12")))
	assert.Equal(t, 1, DaysBetween(day("2024-01-10"), day("2024-01-11")))
	assert.Equal(t, 0, DaysBetween(day("2024-01-10"), day("2024-01-10")))

	// Time-of-day does not change the day count.
	late := time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC)
	early := time.Date(2024, 1, 12, 0, 15, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(late, early))
}

func TestStartOfDay(t *testing.T) {
	afternoon := time.Date(2024, 3, 15, 14, 45, 30, 123, time.UTC)
	start := StartOfDay(afternoon)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 15, start.Day())
	assert.Equal(t, afternoon.Location(), start.Location())
}
