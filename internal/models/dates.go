package models

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"01/02/2006",
	"January 2, 2006",
	"January 2006",
	"Jan 2006",
}

// ParseDate parses the date formats seen in snapshots. The second return is
// false when the value is empty or unparsable.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthsElapsed returns how many months of the year the snapshot covers,
// taken from LastUpdated and clamped to 1..12.
func (s MetricsSnapshot) MonthsElapsed() int {
	t, ok := ParseDate(s.LastUpdated)
	if !ok {
		return 12
	}
	return int(t.Month())
}
