// Package dates parses the date formats planbook accepts in worksheet
// cells and batch files.
package dates

import (
	"strings"
	"time"
)

// Layouts is the ordered list of accepted string formats. The first layout
// that parses wins, so ambiguous strings like "01/02/2024" resolve
// day-first. The order matches what existing calendar files rely on and
// must not be rearranged; it is not authoritative for ambiguous input.
var Layouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

// displayLayouts covers the default renderings excelize produces for
// natively-typed date cells, tried only after the canonical list.
var displayLayouts = []string{
	"1/2/06 15:04",
	"1/2/06",
	"01-02-06",
	"1/2/2006",
}

// Parse parses s against Layouts in order.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCell parses a cell value: first the canonical Layouts, then the
// display renderings excelize uses for natively-typed date cells.
func ParseCell(s string) (time.Time, bool) {
	if t, ok := Parse(s); ok {
		return t, true
	}
	s = strings.TrimSpace(s)
	for _, layout := range displayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseISO parses the strict YYYY-MM-DD form used by CLI arguments and
// batch files.
func ParseISO(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// SameDay reports whether a and b fall on the same calendar date,
// ignoring any time component.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
