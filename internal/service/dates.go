package service

import (
	"time"
)

// shiftDateLayouts are tried in order when parsing the cashier-supplied
// shift datetime. The frontend is not consistent about the separator.
var shiftDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// parseShiftDate parses a shift datetime string. ok is false when the value
// is empty or unparseable; the caller falls back to the current time.
func parseShiftDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range shiftDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dayStart returns midnight of the given YYYY-MM-DD date, or nil for empty
// or malformed input.
func dayStart(s string) *time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil
	}
	return &d
}

// dayEnd returns the last instant of the given YYYY-MM-DD date so that
// range filtering is inclusive on both ends.
func dayEnd(s string) *time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil
	}
	t := d.Add(24*time.Hour - time.Nanosecond)
	return &t
}
