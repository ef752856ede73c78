// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
)

const (
	// DateTimeLayout is the format expected for start dates and is also the
	// label format for dated schedule rows.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseMonth parses a "2006-01" string into the first day of that month (UTC).
func ParseMonth(date string) (time.Time, error) {
	return time.Parse(DateTimeLayout, date)
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// FirstOfMonth truncates t to midnight UTC on the first day of its month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	return FirstOfMonth(t).AddDate(0, 1, -1).Day()
}
