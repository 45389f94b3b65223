// Package scheduler orchestrates the end-to-end solve: enumerate
// candidate shifts, build the CP-SAT model, run the solver, and return a
// schedule. Grounded on spec.md §2's control-flow table, which names the
// same four stages in the same order.
package scheduler

import (
	"time"

	"github.com/shiftsat/shiftsat/pkg/errors"
	"github.com/shiftsat/shiftsat/pkg/logger"
	"github.com/shiftsat/shiftsat/pkg/model"
	"github.com/shiftsat/shiftsat/scheduler/build"
	"github.com/shiftsat/shiftsat/scheduler/enumerate"
	"github.com/shiftsat/shiftsat/scheduler/solve"
)

// Input bundles the parsed tables a caller already has in hand — parsing
// itself lives in package parser, one layer up. A cached result skips
// enumeration, model building and solving; parsing still runs, since the
// cache key is computed from the parsed input.
type Input struct {
	Employees    map[string]*model.Employee
	Requirements []model.CoverageRequirement
}

// Options collects the tunables a caller may override from their
// defaults; it is a deliberately flat struct spanning both enumeration
// and model-building concerns, since both are set from the same request.
type Options struct {
	Enumerate enumerate.Options
	Build     build.Config
	Solve     solve.Parameters
}

// DefaultOptions mirrors the reference configuration throughout the
// pipeline.
func DefaultOptions() Options {
	return Options{
		Enumerate: enumerate.DefaultOptions(),
		Build:     build.DefaultConfig(),
		Solve:     solve.DefaultParameters(),
	}
}

// CreateSchedule runs the full pipeline: enumerate candidate shifts for
// every coverage requirement, build the CP-SAT model, and solve it. The
// returned error is always an *errors.AppError from one of the pipeline
// stages — callers needn't type-switch to tell parse-time structural
// problems from solver infeasibility, since both are reported the same
// way to the caller (spec.md §4.7).
func CreateSchedule(input Input, opts Options) (*model.Schedule, error) {
	if len(input.Employees) == 0 {
		return nil, errors.InvalidInput("employees", "至少需要一名员工")
	}
	if len(input.Requirements) == 0 {
		return nil, errors.InvalidInput("requirements", "至少需要一条排班需求")
	}

	shifts, err := enumerate.AllCandidates(input.Requirements, opts.Enumerate)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "枚举候选班次失败")
	}

	schedLog := logger.NewSchedulerLogger()
	schedLog.StartSchedule(len(input.Employees), len(input.Requirements), len(shifts))
	start := time.Now()

	built, err := build.Build(build.Problem{
		Employees:    input.Employees,
		Requirements: input.Requirements,
		Shifts:       shifts,
		Config:       opts.Build,
	})
	if err != nil {
		// build.Build already reports its two failure cases as
		// *errors.AppError with the spec-mandated codes (NotFound for an
		// empty candidate set, NoFeasibleSolution for no qualified
		// employee) — passed through unchanged rather than re-wrapped as
		// CodeInternal, which would turn a user-data problem into a 500.
		return nil, err
	}

	schedule, err := solve.Solve(built, opts.Solve)
	if err != nil {
		schedLog.SolveOutcome("error", time.Since(start), 0)
		if _, ok := err.(*errors.AppError); !ok {
			err = errors.Wrap(err, errors.CodeInternal, "排班求解失败")
		}
		return nil, err
	}
	schedLog.SolveOutcome("ok", time.Since(start), len(schedule.Entries))
	return schedule, nil
}
