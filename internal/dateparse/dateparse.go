// Package dateparse turns the free-text deadline strings people type into
// spreadsheet cells into timestamps. Input may use full-width digits and
// punctuation, slash or dash separators, and may omit the year, the
// time-of-day, or the seconds.
package dateparse

import (
	"fmt"
	"strings"
	"time"
)

// ParseError reports an input no candidate layout matched. Callers treat
// the value as display-only text; this is never fatal.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dateparse: unrecognized date %q", e.Raw)
}

// candidate layouts are tried in order; the first match wins. needsYear
// entries substitute the caller's reference year, needsTime entries
// default the time-of-day to end of day (23:59:00).
type candidate struct {
	layout    string
	needsYear bool
	needsTime bool
}

// Non-padded verbs accept both "01" and "1" for each component; people
// type both.
var candidates = []candidate{
	{"2006-1-2 15:4:5", false, false},
	{"2006-1-2 15:4", false, false},
	{"2006/1/2 15:4:5", false, false},
	{"2006/1/2 15:4", false, false},
	{"2006-1-2", false, true},
	{"2006/1/2", false, true},
	{"1-2 15:4:5", true, false},
	{"1-2 15:4", true, false},
	{"1/2 15:4:5", true, false},
	{"1/2 15:4", true, false},
	{"1-2", true, true},
	{"1/2", true, true},
}

// NormalizeWidth maps full-width ASCII variants (U+FF01..U+FF5E) to their
// half-width counterparts by fixed code-point offset, and the ideographic
// space to a plain space.
func NormalizeWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0xFF01 && r <= 0xFF5E:
			b.WriteRune(r - 0xFEE0)
		case r == 0x3000:
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse resolves raw into a timestamp in loc. referenceYear fills in for
// inputs that carry no year, such as "1/20 15:00".
func Parse(raw string, referenceYear int, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.Join(strings.Fields(NormalizeWidth(raw)), " ")
	if s == "" {
		return time.Time{}, &ParseError{Raw: raw}
	}
	for _, c := range candidates {
		t, err := time.ParseInLocation(c.layout, s, loc)
		if err != nil {
			continue
		}
		year := t.Year()
		if c.needsYear {
			year = referenceYear
		}
		hour, min, sec := t.Hour(), t.Minute(), t.Second()
		if c.needsTime {
			hour, min, sec = 23, 59, 0
		}
		return time.Date(year, t.Month(), t.Day(), hour, min, sec, 0, loc), nil
	}
	return time.Time{}, &ParseError{Raw: raw}
}
