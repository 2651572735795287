package models

import (
	"strings"
	"time"
)

// Trip is one entry of the user's travel log. Dates are kept as the raw ISO
// strings the trip manager stored; parsing happens on demand so a malformed
// date never blocks loading the rest of the log.
type Trip struct {
	ID           string   `json:"id"`
	CountryCodes []string `json:"countryCodes"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate parses an ISO date (YYYY-MM-DD, taken as UTC) or an RFC 3339
// timestamp. Timestamps keep their own offset so the calendar year is the one
// the traveller wrote down.
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

// Start returns the parsed start date. ok is false for unparsable dates; such
// trips take no part in any visit computation.
func (t Trip) Start() (time.Time, bool) {
	return ParseDate(t.StartDate)
}

// End returns the parsed end date, falling back to the start date when the end
// is missing or unparsable.
func (t Trip) End() (time.Time, bool) {
	if end, ok := ParseDate(t.EndDate); ok {
		return end, true
	}
	return t.Start()
}

// YearSpan returns the inclusive [startYear, endYear] range the trip touches.
// An end before the start collapses the span to the start year.
func (t Trip) YearSpan() (startYear, endYear int, ok bool) {
	start, ok := t.Start()
	if !ok {
		return 0, 0, false
	}
	end, _ := t.End()
	if end.Year() < start.Year() {
		return start.Year(), start.Year(), true
	}
	return start.Year(), end.Year(), true
}

// StartedBy reports whether the trip has a parsable start on or before now.
func (t Trip) StartedBy(now time.Time) bool {
	start, ok := t.Start()
	return ok && !start.After(now)
}
