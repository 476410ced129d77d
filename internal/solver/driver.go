// Package solver implements SolverDriver from spec §4.4: it drives the
// underlying MIP solver in pool mode, extracts the pool, and materializes
// each entry as a Schedule.
package solver

import (
	"errors"

	"tum-scheduler/internal/domain"
	"tum-scheduler/internal/mip"
	"tum-scheduler/internal/model"
)

// Driver is single-shot: one Model, one Solve call. It never reuses a model
// instance across requests (spec §4.4).
type Driver struct{}

func New() *Driver { return &Driver{} }

// Solve implements spec §4.4. maxSolutions <= 0 defaults to 1. Infeasible
// models return an empty slice and a nil error — an empty result is not an
// error, so the caller
// can show "no schedule satisfies your constraints."
//
// SolverUnavailable is retried once, per spec §4.4/§7 ("Retried once; then
// surfaced").
func (d *Driver) Solve(m *model.Model, maxSolutions int) ([]domain.Schedule, error) {
	if maxSolutions <= 0 {
		maxSolutions = domain.DefaultMaxSolutions
	}

	m.Problem.SetPoolParams(maxSolutions)

	solutions, err := solveWithRetry(m.Problem)
	if err != nil {
		return nil, err
	}

	if len(solutions) > maxSolutions {
		solutions = solutions[:maxSolutions]
	}

	schedules := make([]domain.Schedule, 0, len(solutions))
	for _, sol := range solutions {
		schedules = append(schedules, materialize(m, sol))
	}
	return schedules, nil
}

func solveWithRetry(p mip.Problem) ([]mip.Solution, error) {
	solutions, err := p.EnumeratePool()
	if err == nil || !errors.Is(err, domain.ErrSolverUnavailable) {
		return solutions, err
	}
	return p.EnumeratePool()
}

// materialize converts one pool entry into a Schedule: the chosen
// selections, their total credits, and the solver-reported objective
// value — spec §4.4.
func materialize(m *model.Model, sol mip.Solution) domain.Schedule {
	var chosen []domain.CourseSelection
	var totalECTS float64

	for i, v := range m.Vars {
		if mip.ReadVar(sol, v) >= 0.5 {
			chosen = append(chosen, m.Selections[i])
			totalECTS += m.Selections[i].ECTS
		}
	}

	return domain.Schedule{
		ObjectiveValue:   sol.ObjectiveValue,
		TotalECTS:        totalECTS,
		CourseSelections: chosen,
	}
}
