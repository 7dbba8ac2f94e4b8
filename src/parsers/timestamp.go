// src/parsers/timestamp.go
package parsers

import (
	"strings"
	"time"

	"github.com/ldallalio/TradeWise/src/models"
)

// Full-timestamp columns tried in fixed priority order before falling back to
// separate date + time columns.
var timestampColumns = []string{
	"entry_timestamp",
	"timestamp",
	"fill_time",
	"closing_time",
	"placing_time",
	"close_time",
	"open_time",
	"trade_time",
}

// ReconstructTimestamp builds a UTC instant from whichever timestamp-like
// columns the record carries. Failure to parse is reported as absence; rows
// without a reconstructable instant are still imported.
func ReconstructTimestamp(rec models.RawRecord) (time.Time, bool) {
	for _, col := range timestampColumns {
		if v := rec.Get(col); v != "" {
			if t, ok := parseInstant(v); ok {
				return t, true
			}
		}
	}
	date := rec.Get("date")
	if date == "" {
		return time.Time{}, false
	}
	candidate := date
	if tm := rec.Get("time"); tm != "" {
		candidate = date + " " + tm
	}
	return parseInstant(candidate)
}

// parseInstant normalizes loose ISO-like text to RFC 3339 before parsing:
// a space between date and time becomes "T", and text without an explicit
// zone marker is treated as UTC by appending "Z".
func parseInstant(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len("2006-01-02") {
		return time.Time{}, false
	}
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	if !hasZoneMarker(s) {
		s += "Z"
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02Z07:00",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func hasZoneMarker(s string) bool {
	if strings.HasSuffix(s, "Z") {
		return true
	}
	// Offsets only ever appear after the time portion; the date's own
	// hyphens end before index 10.
	return strings.ContainsAny(s[10:], "+-")
}
