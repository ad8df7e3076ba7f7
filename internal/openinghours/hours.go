// Package openinghours models a week of opening-hour ranges for a restaurant.
//
// A WeeklyHours value keeps its days in insertion order and is never mutated
// in place: SetBoundary returns a new value and leaves the receiver untouched.
package openinghours

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NotAvailable is what Format renders for absent opening hours.
const NotAvailable = "N/A"

// Boundary selects one end of a DayInterval.
type Boundary string

const (
	// BoundaryOpen is the opening time of a day.
	BoundaryOpen Boundary = "open"
	// BoundaryClose is the closing time of a day.
	BoundaryClose Boundary = "close"
)

// IsValid checks if the boundary is open or close
func (b Boundary) IsValid() bool {
	return b == BoundaryOpen || b == BoundaryClose
}

// String returns the string representation of the boundary
func (b Boundary) String() string {
	return string(b)
}

// ParseBoundary parses a form or query value into a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	b := Boundary(s)
	if !b.IsValid() {
		return "", fmt.Errorf("invalid boundary: %s (must be 'open' or 'close')", s)
	}
	return b, nil
}

// DayInterval is the open/close pair for one day. Either side may be empty.
// Values are stored as given; "HH:MM" is expected but never enforced.
type DayInterval struct {
	Open  string `json:"open" mapstructure:"open"`
	Close string `json:"close" mapstructure:"close"`
}

// IsEmpty reports whether neither boundary is set.
func (d DayInterval) IsEmpty() bool {
	return d.Open == "" && d.Close == ""
}

// with returns a copy of d with the given boundary replaced.
func (d DayInterval) with(b Boundary, value string) DayInterval {
	if b == BoundaryClose {
		d.Close = value
	} else {
		d.Open = value
	}
	return d
}

// Entry is one day of a WeeklyHours in iteration order.
type Entry struct {
	Day      string
	Interval DayInterval
}

// WeeklyHours maps day keys to intervals, preserving insertion order.
// The zero value is an empty week.
type WeeklyHours struct {
	days      []string
	intervals map[string]DayInterval
}

// canonicalDays is the fixed Monday-first order used for new entities.
var canonicalDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// CanonicalDays returns the seven lowercase weekday keys, Monday first.
func CanonicalDays() []string {
	out := make([]string, len(canonicalDays))
	copy(out, canonicalDays)
	return out
}

// InitializeEmpty returns the seven canonical days, each with blank open and close.
func InitializeEmpty() WeeklyHours {
	h := WeeklyHours{
		days:      CanonicalDays(),
		intervals: make(map[string]DayInterval, len(canonicalDays)),
	}
	for _, day := range canonicalDays {
		h.intervals[day] = DayInterval{}
	}
	return h
}

// Len returns the number of days present.
func (h WeeklyHours) Len() int {
	return len(h.days)
}

// Days returns the day keys in iteration order.
func (h WeeklyHours) Days() []string {
	out := make([]string, len(h.days))
	copy(out, h.days)
	return out
}

// Get returns the interval recorded for day.
func (h WeeklyHours) Get(day string) (DayInterval, bool) {
	d, ok := h.intervals[day]
	return d, ok
}

// Entries returns every day with its interval in iteration order.
func (h WeeklyHours) Entries() []Entry {
	out := make([]Entry, 0, len(h.days))
	for _, day := range h.days {
		out = append(out, Entry{Day: day, Interval: h.intervals[day]})
	}
	return out
}

// SetBoundary returns a copy of h where day's boundary holds value.
// A day that does not exist yet is appended with the other boundary blank.
// h itself is left unchanged.
func (h WeeklyHours) SetBoundary(day string, b Boundary, value string) WeeklyHours {
	current, exists := h.intervals[day]

	next := WeeklyHours{
		days:      make([]string, len(h.days), len(h.days)+1),
		intervals: make(map[string]DayInterval, len(h.intervals)+1),
	}
	copy(next.days, h.days)
	for k, v := range h.intervals {
		next.intervals[k] = v
	}
	if !exists {
		next.days = append(next.days, day)
	}
	next.intervals[day] = current.with(b, value)
	return next
}

// Format renders one "Day open-close" line per entry, joined by newlines.
// A nil week renders as N/A; an empty one as the empty string.
func Format(h *WeeklyHours) string {
	if h == nil {
		return NotAvailable
	}
	lines := make([]string, 0, len(h.days))
	for _, day := range h.days {
		d := h.intervals[day]
		lines = append(lines, Capitalize(day)+" "+d.Open+"-"+d.Close)
	}
	return strings.Join(lines, "\n")
}

// Capitalize upper-cases the first character of s and leaves the rest alone.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
