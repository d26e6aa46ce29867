// Package repository provides SQLite-backed data access for the application's
// entities. Repositories scan dates as strings and parse them on the way out;
// the date column stores calendar dates, created_at stores RFC3339 timestamps.
package repository

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseTime parses a stored time string, accepting the bare date layout first
// and falling back to RFC3339.
func ParseTime(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", value, err)
	}
	return t, nil
}
