// Package build translates a scheduling problem (employees, candidate
// shifts, coverage requirements, tunables) into a CP-SAT model ready to
// hand to the solver driver. Grounded constraint-by-constraint on
// original_source/modules/solver.py's create_schedule, translated onto
// github.com/google/or-tools/ortools/sat/go/cpmodel the way
// other_examples/...nurses_sat.go.go and
// other_examples/...no_overlap_sample_sat.go.go demonstrate the API.
package build

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/shiftsat/shiftsat/pkg/errors"
	"github.com/shiftsat/shiftsat/pkg/logger"
	"github.com/shiftsat/shiftsat/pkg/model"
)

// Config carries the solver-facing tunables a caller may override, per
// spec.md §4.6 and the defaults in original_source/modules/solver.py's
// create_schedule signature.
type Config struct {
	MaxHoursPerWeek        float64
	MaxShiftsPerDay        int
	MinOneShiftPerEmployee bool
}

// DefaultConfig mirrors create_schedule's Python defaults.
func DefaultConfig() Config {
	return Config{
		MaxHoursPerWeek: 18,
		MaxShiftsPerDay: 1,
	}
}

// Variable binds a decision variable to the (employee, shift) pair it
// represents, so the solver driver can project a solution back to a
// Schedule without re-deriving the key space.
type Variable struct {
	Employee string
	Shift    model.CandidateShift
	Var      cpmodel.BoolVar
}

// Problem is the complete input to the model builder.
type Problem struct {
	Employees    map[string]*model.Employee
	Requirements []model.CoverageRequirement
	Shifts       []model.CandidateShift
	Config       Config
}

// Built is a fully constrained and weighted CP-SAT model, ready to solve.
type Built struct {
	Builder   cpmodel.CpModelBuilder
	Variables []Variable
}

// coverageSampleInterval is the sampling resolution used to enforce
// continuous coverage. 5 minutes is sufficient because candidate shifts
// are hour-aligned and their lengths are whole hours (spec.md §4.6).
const coverageSampleInterval = 5 * time.Minute

// objectiveScale converts the float weights (deviation_weight,
// preference_weight, per-shift scores) into integer coefficients CP-SAT's
// linear objective requires. Two decimal digits of precision is enough to
// distinguish the reference weights (which default to 1.0) while keeping
// well clear of int64 overflow at the problem sizes this engine targets.
const objectiveScale = 100

// Build constructs the model for problem. Its two structural failure cases
// are both user-data problems, not programmer errors, per spec.md §7: an
// empty candidate set is the spec's named EmptyCandidateSet and reported as
// *errors.AppError with CodeNotFound; an employee set none of which
// qualifies for any candidate shift can never yield a schedule either, so
// it is reported as CodeNoFeasibleSolution — the same code the solve
// package uses for genuine solver infeasibility, since both describe "no
// schedule exists for this input" just detected at different stages.
func Build(problem Problem) (*Built, error) {
	if len(problem.Shifts) == 0 {
		return nil, errors.NotFound("candidate shifts", "no coverage requirement produced a candidate shift")
	}

	m := cpmodel.NewCpModelBuilder()

	vars, byEmployee, byPosition := declareVariables(m, problem)
	if len(vars) == 0 {
		return nil, errors.NoFeasibleSolution("no employee is qualified for any candidate shift")
	}

	names := sortedEmployeeNames(problem.Employees)

	addMinOneShiftConstraint(m, problem, names, vars, byEmployee)
	addCoverageConstraints(m, problem, vars, byPosition)
	addNonOverlapConstraints(m, names, vars, byEmployee)
	addPerDayCapConstraints(m, problem, names, vars, byEmployee)
	addWeeklyCapAndObjective(m, problem, names, vars, byEmployee)

	return &Built{Builder: m, Variables: vars}, nil
}

// declareVariables creates one BoolVar per (employee, shift) pair where
// the employee is qualified for the shift's position, per spec.md §4.6.
// byEmployee and byPosition are dense indices used by the constraint
// builders below to avoid re-scanning the full variable list, per the
// memory-model guidance in spec.md §5.
func declareVariables(m cpmodel.CpModelBuilder, problem Problem) (vars []Variable, byEmployee map[string][]int, byPosition map[int][]int) {
	byEmployee = make(map[string][]int)
	byPosition = make(map[int][]int)

	for _, employee := range sortedEmployeeNames(problem.Employees) {
		emp := problem.Employees[employee]
		for _, shift := range problem.Shifts {
			if !emp.HasPosition(shift.PositionName) {
				continue
			}
			name := fmt.Sprintf("x_e%s_p%d_s%s", employee, shift.PositionID, shift.Span.Start.Format(shiftNameLayout))
			v := m.NewBoolVar().WithName(name)
			idx := len(vars)
			vars = append(vars, Variable{Employee: employee, Shift: shift, Var: v})
			byEmployee[employee] = append(byEmployee[employee], idx)
			byPosition[shift.PositionID] = append(byPosition[shift.PositionID], idx)
		}
	}
	return vars, byEmployee, byPosition
}

const shiftNameLayout = "20060102T1504"

func sortedEmployeeNames(employees map[string]*model.Employee) []string {
	names := make([]string, 0, len(employees))
	for name := range employees {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortedStringKeys and sortedIntKeys give a deterministic iteration order
// over the per-employee day/week groupings built below — ranging over a Go
// map directly would reorder the constraints and objective terms fed to
// the CP-SAT builder on every run, which can change which tied-optimal
// solution the search returns for identical inputs and seed (spec.md §5,
// §8 Testable Property #6).
func sortedStringKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntKeys(m map[int][]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// sumExpr rebuilds a fresh LinearExpr over indices every call rather than
// mutating and reusing a shared one — cpmodel's builder methods mutate
// their receiver, and the same partial sum is needed, unmodified, by more
// than one constraint below (the weekly cap and the deviation terms both
// read the same per-employee-week total).
func sumExpr(vars []Variable, indices []int, coeff func(Variable) int64) cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, idx := range indices {
		c := coeff(vars[idx])
		if c == 0 {
			continue
		}
		expr.AddTerm(vars[idx].Var, c)
	}
	return expr
}

// addMinOneShiftConstraint implements the optional min_one_shift_per_employee
// flag. Employees with zero candidate variables are exempted with a
// diagnostic rather than producing an infeasible model, per spec.md §4.6
// hard constraint 6.
func addMinOneShiftConstraint(m cpmodel.CpModelBuilder, problem Problem, names []string, vars []Variable, byEmployee map[string][]int) {
	if !problem.Config.MinOneShiftPerEmployee {
		return
	}
	for _, name := range names {
		indices := byEmployee[name]
		if len(indices) == 0 {
			logger.Warn().Str("employee", name).Msg("employee has no qualifying candidate shifts; exempt from min-one-shift")
			continue
		}
		expr := sumExpr(vars, indices, func(Variable) int64 { return 1 })
		m.AddGreaterOrEqual(expr, cpmodel.NewConstant(1))
	}
}

// addCoverageConstraints enforces, per requirement, exactly one qualifying
// shift active at every 5-minute sampled instant from the window's start up
// to, not including, its end (spec.md §4.6 hard constraint 1). The active set at each instant
// is maintained with a sweep over shifts sorted by start time rather than
// rescanning every shift at every instant.
func addCoverageConstraints(m cpmodel.CpModelBuilder, problem Problem, vars []Variable, byPosition map[int][]int) {
	for _, req := range problem.Requirements {
		indices := byPosition[req.PositionID]
		if len(indices) == 0 {
			logger.Warn().Int("position_id", req.PositionID).Str("position", req.PositionName).Msg("no qualifying candidate shifts for coverage requirement")
			continue
		}

		sorted := append([]int(nil), indices...)
		sort.Slice(sorted, func(i, j int) bool {
			return vars[sorted[i]].Shift.Span.Start.Before(vars[sorted[j]].Shift.Span.Start)
		})

		var active []int
		cursor := 0
		for t := req.Window.Start; t.Before(req.Window.End); t = t.Add(coverageSampleInterval) {
			instantEnd := t.Add(coverageSampleInterval)

			for cursor < len(sorted) && vars[sorted[cursor]].Shift.Span.Start.Before(instantEnd) {
				active = append(active, sorted[cursor])
				cursor++
			}

			kept := active[:0]
			for _, idx := range active {
				if vars[idx].Shift.Span.End.After(t) {
					kept = append(kept, idx)
				}
			}
			active = kept

			expr := sumExpr(vars, active, func(Variable) int64 { return 1 })
			m.AddEquality(expr, cpmodel.NewConstant(1))
		}
	}
}

// addNonOverlapConstraints forbids an employee from being double-booked at
// any instant. Per the spec's redesign decision, this is unconditionally
// the stronger form: one optional interval per candidate shift, gated on
// its decision variable's presence, fed to CP-SAT's own NoOverlap
// propagator — which is itself sweep-line based — rather than the
// original's quadratic pairwise enumeration or a weaker per-day surrogate.
func addNonOverlapConstraints(m cpmodel.CpModelBuilder, names []string, vars []Variable, byEmployee map[string][]int) {
	for _, name := range names {
		indices := byEmployee[name]
		if len(indices) < 2 {
			continue
		}
		intervals := make([]cpmodel.IntervalVar, 0, len(indices))
		for _, idx := range indices {
			span := vars[idx].Shift.Span
			start := span.Start.Unix()
			end := span.End.Unix()
			interval := m.NewOptionalIntervalVar(
				cpmodel.NewConstant(start),
				cpmodel.NewConstant(end-start),
				cpmodel.NewConstant(end),
				vars[idx].Var,
			)
			intervals = append(intervals, interval)
		}
		m.AddNoOverlap(intervals...)
	}
}

// addPerDayCapConstraints enforces spec.md §4.6 hard constraint 3.
func addPerDayCapConstraints(m cpmodel.CpModelBuilder, problem Problem, names []string, vars []Variable, byEmployee map[string][]int) {
	for _, name := range names {
		indices := byEmployee[name]
		byDay := make(map[string][]int)
		for _, idx := range indices {
			day := vars[idx].Shift.Span.Start.Format("2006-01-02")
			byDay[day] = append(byDay[day], idx)
		}
		for _, day := range sortedStringKeys(byDay) {
			expr := sumExpr(vars, byDay[day], func(Variable) int64 { return 1 })
			m.AddLessOrEqual(expr, cpmodel.NewConstant(int64(problem.Config.MaxShiftsPerDay)))
		}
	}
}

// addWeeklyCapAndObjective enforces the weekly hour caps (hard constraints
// 4 and 5) and builds the full soft objective — deviation, satisfaction,
// and unavailability terms — as a single combined linear expression, per
// spec.md §4.6. The three families' constant multipliers (5, -1,
// 10_000_000) are folded into each term's own coefficient so the whole
// objective can be assembled incrementally and minimized once, which is
// algebraically identical to scaling three separately-summed totals.
func addWeeklyCapAndObjective(m cpmodel.CpModelBuilder, problem Problem, names []string, vars []Variable, byEmployee map[string][]int) {
	var terms []objectiveTerm

	for _, name := range names {
		indices := byEmployee[name]
		emp := problem.Employees[name]
		tenureFactor := float64(emp.Tenure + 1)

		byWeek := make(map[int][]int)
		for _, idx := range indices {
			_, week := vars[idx].Shift.Span.Start.ISOWeek()
			byWeek[week] = append(byWeek[week], idx)
		}

		for _, week := range sortedIntKeys(byWeek) {
			weekIndices := byWeek[week]
			totalExpr := sumExpr(vars, weekIndices, func(v Variable) int64 {
				return int64(v.Shift.Span.Length().Seconds())
			})

			maxWeekSeconds := int64(problem.Config.MaxHoursPerWeek * 3600)
			m.AddLessOrEqual(totalExpr, cpmodel.NewConstant(maxWeekSeconds))
			if emp.MaximumHours != nil && *emp.MaximumHours > 0 {
				m.AddLessOrEqual(totalExpr, cpmodel.NewConstant(int64(*emp.MaximumHours*3600)))
			}

			if t, ok := addDeviationTerm(m, vars, weekIndices, emp, tenureFactor, maxWeekSeconds); ok {
				terms = append(terms, t)
			}
		}

		terms = append(terms, satisfactionAndUnavailabilityTerms(vars, indices, emp, tenureFactor)...)
	}

	objective := cpmodel.NewLinearExpr()
	for _, t := range terms {
		objective.AddTerm(t.v, t.coeff)
	}
	m.Minimize(objective)
}

// objectiveTerm is a plain (variable, integer coefficient) pair. Building
// the whole objective as a Go-level slice first, then feeding it to a
// single freshly-built cpmodel.LinearExpr in one place, avoids threading a
// mutable cpmodel.LinearExpr through helper functions across which its
// value-vs-pointer copy semantics are not contractually documented here.
type objectiveTerm struct {
	v     cpmodel.LinearArgument
	coeff int64
}

// addDeviationTerm linearizes |total_worked - preferred| for one
// (employee, week) via two indicator booleans and a nonnegative deviation
// variable, then folds percent_difference * deviation_weight * (tenure+1)
// * 5 into the shared objective expression, mirroring
// original_source/modules/solver.py's deviation_terms block line for line.
func addDeviationTerm(m cpmodel.CpModelBuilder, vars []Variable, weekIndices []int, emp *model.Employee, tenureFactor float64, maxWeekSeconds int64) (objectiveTerm, bool) {
	if emp.PreferredHours <= 0 || math.IsInf(emp.PreferredHours, 0) || math.IsNaN(emp.PreferredHours) {
		return objectiveTerm{}, false
	}

	preferredSeconds := int64(emp.PreferredHours * 3600)
	if preferredSeconds < 0 {
		preferredSeconds = 0
	}
	if preferredSeconds > maxWeekSeconds {
		preferredSeconds = maxWeekSeconds
	}
	if preferredSeconds == 0 {
		return objectiveTerm{}, false
	}

	totalExpr := sumExpr(vars, weekIndices, func(v Variable) int64 {
		return int64(v.Shift.Span.Length().Seconds())
	})

	over := m.NewBoolVar()
	under := m.NewBoolVar()
	m.AddExactlyOne(over, under)

	deviation := m.NewIntVarFromDomain(cpmodel.NewDomain(0, maxWeekSeconds))

	overBound := cpmodel.NewLinearExpr()
	overBound.AddTerm(deviation, 1)
	overBound.Add(cpmodel.NewConstant(preferredSeconds))
	m.AddLessOrEqual(totalExpr, overBound).OnlyEnforceIf(over)
	m.AddGreaterOrEqual(totalExpr, cpmodel.NewConstant(preferredSeconds)).OnlyEnforceIf(over)

	underBound := cpmodel.NewLinearExpr()
	underBound.AddTerm(deviation, 1)
	underTotal := sumExpr(vars, weekIndices, func(v Variable) int64 {
		return int64(v.Shift.Span.Length().Seconds())
	})
	underBound.Add(underTotal)
	m.AddLessOrEqual(cpmodel.NewConstant(preferredSeconds), underBound).OnlyEnforceIf(under)
	m.AddLessOrEqual(totalExpr, cpmodel.NewConstant(preferredSeconds)).OnlyEnforceIf(under)

	percentDiff := m.NewIntVarFromDomain(cpmodel.NewDomain(0, 100))
	numerator := cpmodel.NewLinearExpr()
	numerator.AddTerm(deviation, 100)
	m.AddDivisionEquality(percentDiff, numerator, cpmodel.NewConstant(preferredSeconds))

	coeff := int64(math.Round(5 * emp.DeviationWeight * tenureFactor * objectiveScale))
	if coeff == 0 {
		return objectiveTerm{}, false
	}
	return objectiveTerm{v: percentDiff, coeff: coeff}, true
}

// satisfactionAndUnavailabilityTerms builds the two remaining objective
// families: -score*preference_weight*(tenure+1) per selected shift, and
// +10_000_000*seconds per shift selected while the employee is unavailable
// for it — the heavy weight that makes availability behave as hard
// whenever the model remains feasible.
func satisfactionAndUnavailabilityTerms(vars []Variable, indices []int, emp *model.Employee, tenureFactor float64) []objectiveTerm {
	var terms []objectiveTerm
	for _, idx := range indices {
		v := vars[idx]
		score := emp.ShiftPreferenceScore(v.Shift.Span)
		satCoeff := int64(math.Round(-1 * score * emp.PreferenceWeight * tenureFactor * objectiveScale))
		if satCoeff != 0 {
			terms = append(terms, objectiveTerm{v: v.Var, coeff: satCoeff})
		}

		if !emp.IsAvailableFor(v.Shift.Span) {
			seconds := v.Shift.Span.Length().Seconds()
			unavailCoeff := int64(math.Round(10_000_000 * seconds * objectiveScale))
			if unavailCoeff != 0 {
				terms = append(terms, objectiveTerm{v: v.Var, coeff: unavailCoeff})
			}
		}
	}
	return terms
}
