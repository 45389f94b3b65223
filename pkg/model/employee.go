package model

import "time"

// Employee is a worker's full scheduling record: qualifications,
// availability, preference profile, hour targets, and weighting factors.
// Parsed once from the input tables at the start of a solve and immutable
// thereafter — spec.md §3.
type Employee struct {
	Name       string
	Positions  map[string]struct{}
	Availability []Timespan
	Preferences  Preference

	PreferredHours  float64
	MaximumHours    *float64 // nil means "use the global weekly cap"
	Tenure          int
	PreferenceWeight float64
	DeviationWeight  float64
}

// NewEmployee constructs an Employee with the default weight multipliers
// (1.0), per spec.md §4.3.
func NewEmployee(name string) *Employee {
	return &Employee{
		Name:             name,
		Positions:        make(map[string]struct{}),
		PreferenceWeight: 1.0,
		DeviationWeight:  1.0,
	}
}

// HasPosition reports whether the employee is qualified for the named
// position.
func (e *Employee) HasPosition(position string) bool {
	_, ok := e.Positions[position]
	return ok
}

// IsAvailableFor reports whether shift is fully contained within at least
// one of the employee's availability windows. This uses the inclusive
// Contains test (both endpoints included), deliberately asymmetric with
// OverlapsWith's strict '<' — spec.md Design Notes §9(b).
func (e *Employee) IsAvailableFor(shift Timespan) bool {
	for _, a := range e.Availability {
		if a.Contains(shift) {
			return true
		}
	}
	return false
}

// ShiftPreferenceScore computes a single shift's satisfaction contribution
// the way the original implementation's Employee.get_shift_preference does:
// a large negative penalty if the employee is unavailable, a small distaste
// penalty for very short shifts, plus the sum of the preference tree's
// score. The model builder uses this score for each candidate's
// satisfaction term; its separate unavailability term is computed from the
// availability windows directly, so an unavailable shift carries both
// penalties (SPEC_FULL.md §4).
func (e *Employee) ShiftPreferenceScore(shift Timespan) float64 {
	satisfaction := 0.0
	if !e.IsAvailableFor(shift) {
		satisfaction -= 10_000
	}
	if shift.Length() <= 2*time.Hour {
		satisfaction -= 1
	}
	satisfaction += e.Preferences.Score(shift)
	return satisfaction
}

// SatisfactionDetails recomputes, per ISO week present among shifts, the
// total deviation from preferred hours and the total preference
// satisfaction — identical in spirit to the solver's own objective terms,
// used for post-hoc reporting (SPEC_FULL.md §4). Returns
// (weightedDeviation, weightedSatisfaction).
func (e *Employee) SatisfactionDetails(shifts []Timespan) (float64, float64) {
	weeks := make(map[int]struct{})
	for _, s := range shifts {
		_, week := s.Start.ISOWeek()
		weeks[week] = struct{}{}
	}

	var totalDeviation, totalSatisfaction float64
	for week := range weeks {
		var hoursWorked float64
		for _, s := range shifts {
			_, w := s.Start.ISOWeek()
			if w == week {
				hoursWorked += s.Length().Hours()
			}
		}
		totalDeviation += absFloat(hoursWorked - e.PreferredHours)

		var weekSatisfaction float64
		for _, s := range shifts {
			_, w := s.Start.ISOWeek()
			if w == week {
				weekSatisfaction += e.ShiftPreferenceScore(s)
			}
		}
		totalSatisfaction += weekSatisfaction
	}

	return e.DeviationWeight * totalDeviation, e.PreferenceWeight * totalSatisfaction
}

// CalculateSatisfaction combines SatisfactionDetails the way the solver's
// own objective combines the analogous terms: -5*deviation + satisfaction.
func (e *Employee) CalculateSatisfaction(shifts []Timespan) float64 {
	deviation, satisfaction := e.SatisfactionDetails(shifts)
	return -5*deviation + satisfaction
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
