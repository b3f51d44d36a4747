package utils

import (
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// StartOfDay strips the time-of-day component so rental pricing is not
// affected by when during the day the dates were picked.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole rental days the range spans,
// rounding any partial day up.
func DaysBetween(start, end time.Time) int {
	diff := StartOfDay(end).Sub(StartOfDay(start))
	return int(math.Ceil(diff.Hours() / 24))
}
