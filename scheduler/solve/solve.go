// Package solve runs a built CP-SAT model and projects the result back
// onto pkg/model's domain types. Grounded on
// original_source/modules/solver.py's solver-parameter block and final
// status-mapping branch, translated onto
// github.com/google/or-tools/ortools/sat/go/cpmodel the way
// other_examples/...no_overlap_sample_sat.go.go calls SolveCpModel and
// reads back cmpb.CpSolverStatus.
package solve

import (
	"fmt"
	"time"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/google/uuid"
	"github.com/shiftsat/shiftsat/pkg/errors"
	"github.com/shiftsat/shiftsat/pkg/model"
	"github.com/shiftsat/shiftsat/scheduler/build"
)

// Parameters controls the solver's own search behavior, independent of
// the model being solved. Defaults mirror
// original_source/modules/solver.py's create_schedule parameter block:
// aggressive linearization, core-based optimization, and a 10-second
// wall-clock budget.
type Parameters struct {
	Seed           int64
	MaxTimeSeconds float64
}

// DefaultParameters is the reference configuration.
func DefaultParameters() Parameters {
	return Parameters{Seed: 0, MaxTimeSeconds: 10}
}

// Solve runs built through CP-SAT and projects a feasible or optimal
// result back into a model.Schedule. Any other outcome (infeasible,
// timeout with no incumbent, model error) is reported as
// errors.NoFeasibleSolution — the driver does not interpret infeasibility
// any further than that, per spec.md §4.7.
func Solve(built *build.Built, params Parameters) (*model.Schedule, error) {
	cpModel, err := built.Builder.Model()
	if err != nil {
		return nil, fmt.Errorf("solve: instantiating model: %w", err)
	}

	satParams := &sppb.SatParameters{
		RandomSeed:         proto.Int64(params.Seed),
		LinearizationLevel: proto.Int32(2),
		OptimizeWithCore:   proto.Bool(true),
	}
	if params.MaxTimeSeconds > 0 {
		satParams.MaxTimeInSeconds = proto.Float64(params.MaxTimeSeconds)
	}

	start := time.Now()
	response, err := cpmodel.SolveCpModelWithParameters(cpModel, satParams)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	status := response.GetStatus()
	log.Infof("schedule solve finished: status=%v objective=%v elapsed=%v", status, response.GetObjectiveValue(), elapsed)

	if status != cmpb.CpSolverStatus_OPTIMAL && status != cmpb.CpSolverStatus_FEASIBLE {
		return nil, errors.NoFeasibleSolution(status.String())
	}

	schedule := &model.Schedule{RunID: uuid.New()}
	for _, v := range built.Variables {
		if !cpmodel.SolutionBooleanValue(response, v.Var) {
			continue
		}
		schedule.Entries = append(schedule.Entries, model.ScheduleEntry{
			EmployeeName: v.Employee,
			Position:     v.Shift.PositionName,
			Shift:        v.Shift.Span,
		})
	}

	return schedule, nil
}
