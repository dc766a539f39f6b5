package utils

import (
	"time"

	"github.com/julianstephens/sknn/internal/constants"
)

// DateOf returns the calendar date (YYYY-MM-DD) of t in its own location.
// No timezone conversion is performed: a local clock yields the local date.
func DateOf(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the local calendar date.
func Today() string {
	return DateOf(time.Now())
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, dateStr, time.Local)
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}
