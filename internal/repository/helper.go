package repository

import (
	"fmt"
	"time"
)

// timestampLayout is the fixed-width RFC3339 layout used for created_at and
// updated_at columns. Fixed width keeps lexicographic ORDER BY identical to
// chronological order, which the rate tie-break relies on.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// Timestamp formats a time for storage in a created_at/updated_at column.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Note: mirrors validation date parsing; both are intentionally kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}
