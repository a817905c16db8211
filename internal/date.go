package internal

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate reads a calendar date ("2006-01-02") or an RFC 3339 timestamp. An empty value
// yields fallback.
func ParseDate(value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, NewValidationFieldError("date", "date must be formatted as YYYY-MM-DD", ErrCodeInvalidDate)
	}
	return t, nil
}

// Today is the current calendar date at midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
