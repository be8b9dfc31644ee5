package validation

import (
	"fmt"
	"strings"
	"time"
)

// isoFormats are tried in order by ParseISODate.
var isoFormats = []string{
	time.RFC3339Nano,      // 2024-01-01T09:30:00.000Z
	time.RFC3339,          // 2024-01-01T09:30:00Z
	"2006-01-02T15:04:05", // local time without zone, read as UTC
	time.DateOnly,         // 2024-01-01
}

// ParseISODate parses an ISO-8601 date or date-time string and returns it in UTC.
// Plain dates are midnight UTC.
func ParseISODate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, format := range isoFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
