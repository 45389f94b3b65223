// Package model 定义排班引擎的核心数据模型：时间段、偏好、员工、覆盖需求与排班结果
package model

import "time"

// timespanAnchorDate is the date used to represent "time of day" timespans as
// ordinary time.Time values. A Timespan whose Start and End both fall on this
// date is a time-of-day span; any other date makes it a bound datetime span.
// Canonicalizing to a single Go type avoids carrying two representations
// (datetime vs time.Time-of-day) through the rest of the package.
var timespanAnchorDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)

// Timespan is a closed interval [Start, End] between two points in time.
// Both ends are either real dates (a "datetime" span, bound to a calendar
// day) or time-of-day values anchored to timespanAnchorDate. A Timespan is
// never multi-day: with_date/strip_date round-trip only for single-day spans.
type Timespan struct {
	Start time.Time
	End   time.Time
}

// NewTimespan constructs a Timespan, failing if start is after end.
func NewTimespan(start, end time.Time) (Timespan, error) {
	if start.After(end) {
		return Timespan{}, errTimespanOrder(start, end)
	}
	return Timespan{Start: start, End: end}, nil
}

// IsTimeOfDay reports whether this span is anchored (time-of-day), as
// opposed to bound to a real calendar date.
func (t Timespan) IsTimeOfDay() bool {
	return sameDate(t.Start, timespanAnchorDate) && sameDate(t.End, timespanAnchorDate)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StripDate erases the date components, producing a time-of-day span
// anchored to timespanAnchorDate. Fails when the start's time of day falls
// after the end's; a multi-day span whose end time of day is not earlier
// than its start's is stripped without error.
func (t Timespan) StripDate() (Timespan, error) {
	startTOD := timeOfDay(t.Start)
	endTOD := timeOfDay(t.End)
	if startTOD.After(endTOD) {
		return Timespan{}, errTimespanOrder(startTOD, endTOD)
	}
	return Timespan{Start: startTOD, End: endTOD}, nil
}

func timeOfDay(t time.Time) time.Time {
	h, m, s := t.Clock()
	return time.Date(timespanAnchorDate.Year(), timespanAnchorDate.Month(), timespanAnchorDate.Day(), h, m, s, t.Nanosecond(), time.UTC)
}

// WithDate re-binds a time-of-day span to a calendar date. The receiver is
// not checked to be a time-of-day span: a span already bound to a date has
// its date replaced the same way. Fails if the resulting span would have
// start after end (can't happen for a well-formed time-of-day span, but
// checked for defense against future callers constructing one by hand).
func (t Timespan) WithDate(day time.Time) (Timespan, error) {
	y, m, d := day.Date()
	start := replaceDate(t.Start, y, m, d)
	end := replaceDate(t.End, y, m, d)
	if start.After(end) {
		return Timespan{}, errTimespanOrder(start, end)
	}
	return Timespan{Start: start, End: end}, nil
}

func replaceDate(t time.Time, y int, m time.Month, d int) time.Time {
	h, mi, s := t.Clock()
	return time.Date(y, m, d, h, mi, s, t.Nanosecond(), time.UTC)
}

// Length returns the duration spanned.
func (t Timespan) Length() time.Duration {
	return t.End.Sub(t.Start)
}

// OverlapsWith reports whether two spans share any open interval of time.
// Half-open semantics at the endpoints even though the span itself is
// described as inclusive-inclusive elsewhere (Contains): two shifts that
// merely touch at a boundary do not overlap. See Contains for the
// intentionally asymmetric inclusive test used by availability checks.
func (t Timespan) OverlapsWith(other Timespan) bool {
	a, b := t, other
	if a.IsTimeOfDay() != b.IsTimeOfDay() {
		a, _ = a.StripDate()
		b, _ = b.StripDate()
	}
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	return start.Before(end)
}

// Contains reports whether other is entirely within t, both endpoints
// inclusive. When the operands differ in kind (datetime vs time-of-day),
// the datetime side is stripped of its date before comparing — see Design
// Notes on the availability predicate's intentional asymmetry with
// OverlapsWith (inclusive-inclusive here, strict '<' there).
func (t Timespan) Contains(other Timespan) bool {
	a, b := t, other
	if a.IsTimeOfDay() != b.IsTimeOfDay() {
		a, _ = a.StripDate()
		b, _ = b.StripDate()
	}
	return !a.Start.After(b.Start) && !b.End.After(a.End)
}

// Before orders spans by start time; used to sort spans chronologically.
func (t Timespan) Before(other Timespan) bool {
	return t.Start.Before(other.Start)
}

// After orders spans by end time.
func (t Timespan) After(other Timespan) bool {
	return t.End.After(other.End)
}

// Equal reports value equality of start and end.
func (t Timespan) Equal(other Timespan) bool {
	return t.Start.Equal(other.Start) && t.End.Equal(other.End)
}

// Shift translates both endpoints by delta. For a time-of-day span the
// result must remain within the anchor day; Shift does not wrap across
// midnight. This is one of the two operations the source's overloaded
// Timespan.__add__ conflated (translation vs union) — see Union for the
// other.
func (t Timespan) Shift(delta time.Duration) (Timespan, error) {
	start := t.Start.Add(delta)
	end := t.End.Add(delta)
	if t.IsTimeOfDay() && (!sameDate(start, timespanAnchorDate) || !sameDate(end, timespanAnchorDate)) {
		return Timespan{}, errShiftCrossesDay(delta)
	}
	return Timespan{Start: start, End: end}, nil
}

// Union returns the smallest Timespan containing both t and other. This is
// the second operation the source's overloaded __add__ conflated with
// Shift; kept separate per Design Notes.
func (t Timespan) Union(other Timespan) Timespan {
	start := t.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := t.End
	if other.End.After(end) {
		end = other.End
	}
	return Timespan{Start: start, End: end}
}

// Weekday returns the day of week of the span's start, for tag predicates.
func (t Timespan) Weekday() time.Weekday {
	return t.Start.Weekday()
}
