package domain

import (
	"strings"
	"time"
)

// calendarLayouts are tried in order after the canonical YYYY-MM-DD form.
// All are parsed in local time so a date entered by the user never shifts by
// a day across timezones.
var calendarLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseCalendarDate parses a user-entered calendar-date string.
// The canonical form is "2006-01-02", parsed as a local calendar date rather
// than UTC; other common layouts are attempted as a fallback. The result is
// normalized to local midnight. An empty or unparsable string returns
// ok == false — malformed dates are treated as absent, never as errors.
func ParseCalendarDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, true
	}
	for _, layout := range calendarLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Midnight(t), true
		}
	}
	return time.Time{}, false
}

// Midnight truncates t to local midnight. All calendar-date comparisons in
// the classifier normalize both sides with this first.
func Midnight(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// FormatCalendarDate renders t in the canonical YYYY-MM-DD form.
func FormatCalendarDate(t time.Time) string {
	return t.Format("2006-01-02")
}
