package model

import "github.com/google/uuid"

// CoverageRequirement is one row of the "to-fill" table: a position that
// must be staffed continuously across window. PositionID is unique per
// row even when two rows share PositionName — two independent slots of the
// same position can coexist, per spec.md §3.
type CoverageRequirement struct {
	PositionID   int
	PositionName string
	Window       Timespan // must be single-day
}

// CandidateShift is one enumerated atomic time block that could be
// assigned to a single employee on a single position on one date.
type CandidateShift struct {
	PositionID   int
	PositionName string
	Span         Timespan
}

// ScheduleEntry is one (employee, position, shift) triple in a solved
// schedule.
type ScheduleEntry struct {
	EmployeeName string
	Position     string
	Shift        Timespan
}

// Schedule is the result of a successful solve: a run identifier and the
// list of entries for which the corresponding decision variable was set to
// 1.
type Schedule struct {
	RunID   uuid.UUID
	Entries []ScheduleEntry
}

// EntriesForEmployee filters entries down to a single employee's shifts,
// for reporting (e.g. feeding Employee.SatisfactionDetails).
func (s *Schedule) EntriesForEmployee(name string) []Timespan {
	var out []Timespan
	for _, e := range s.Entries {
		if e.EmployeeName == name {
			out = append(out, e.Shift)
		}
	}
	return out
}
