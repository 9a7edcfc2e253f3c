package util

import (
	"time"
)

// ParseDate parses a YYYY-MM-DD string. Malformed date input is rejected
// here at the boundary so the scoring package never sees it.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrMalformedDate
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, ErrMalformedDate
	}
	return t, nil
}
