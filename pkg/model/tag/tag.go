// Package tag provides the fixed library of named shift predicates
// ("tags") referenced by a Mixin preference. This is the closed predicate
// library spec.md §4.2 and §6 require in place of the original's
// runtime-compiled mixin expressions — no tag predicate here executes
// caller-supplied code.
package tag

import (
	"sort"
	"time"
)

// Shift is the minimal view of a candidate shift a tag predicate needs:
// its start and end time of day, and the weekday it falls on. Defined here
// rather than imported from pkg/model to keep this package free of a
// dependency on the rest of the domain model — it is a pure predicate
// library.
type Shift struct {
	Start   time.Time
	End     time.Time
	Weekday time.Weekday
}

// Predicate is a named boolean test over a Shift.
type Predicate func(Shift) bool

func clock(t time.Time) (h, m int) {
	hh, mm, _ := t.Clock()
	return hh, mm
}

func before(t time.Time, h, m int) bool {
	th, tm := clock(t)
	return th < h || (th == h && tm < m)
}

func atOrAfter(t time.Time, h, m int) bool {
	return !before(t, h, m)
}

func atOrBefore(t time.Time, h, m int) bool {
	th, tm := clock(t)
	return th < h || (th == h && tm <= m)
}

// Library is the fixed set of named predicates from spec.md §6.
var Library = map[string]Predicate{
	"morning": func(s Shift) bool {
		return before(s.End, 12, 0)
	},
	"afternoon": func(s Shift) bool {
		return atOrAfter(s.Start, 12, 0) && atOrBefore(s.End, 18, 0)
	},
	"evening": func(s Shift) bool {
		return atOrAfter(s.Start, 17, 0) && atOrBefore(s.End, 21, 0)
	},
	"night": func(s Shift) bool {
		return atOrAfter(s.Start, 20, 0) || atOrBefore(s.End, 6, 0)
	},
	"closing": func(s Shift) bool {
		return atOrAfter(s.End, 20, 0)
	},
	"noclosing": func(s Shift) bool {
		return before(s.End, 20, 0)
	},
	"opening": func(s Shift) bool {
		return before(s.Start, 9, 0)
	},
	"noopening": func(s Shift) bool {
		return atOrAfter(s.Start, 9, 0)
	},
	"weekend": func(s Shift) bool {
		return s.Weekday == time.Saturday || s.Weekday == time.Sunday
	},
	"noweekend": func(s Shift) bool {
		return s.Weekday != time.Saturday && s.Weekday != time.Sunday
	},
	"sunday":    weekdayIs(time.Sunday),
	"monday":    weekdayIs(time.Monday),
	"tuesday":   weekdayIs(time.Tuesday),
	"wednesday": weekdayIs(time.Wednesday),
	"thursday":  weekdayIs(time.Thursday),
	"friday":    weekdayIs(time.Friday),
}

func weekdayIs(day time.Weekday) Predicate {
	return func(s Shift) bool { return s.Weekday == day }
}

// Lookup resolves a tag name (case-insensitive, trimmed by the caller) to
// its predicate. The second return value is false for unrecognized tags —
// callers must reject unknown mixin sources rather than silently ignore
// them or attempt to evaluate arbitrary input as code.
func Lookup(name string) (Predicate, bool) {
	p, ok := Library[name]
	return p, ok
}

// Names returns the sorted list of recognized tag names, for diagnostics
// and input validation messages.
func Names() []string {
	names := make([]string, 0, len(Library))
	for n := range Library {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
