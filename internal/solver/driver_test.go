package solver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tum-scheduler/internal/domain"
	"tum-scheduler/internal/mip"
	"tum-scheduler/internal/model"
)

type stubProblem struct {
	poolSize    int
	solutions   []mip.Solution
	err         error
	failOnce    bool
	enumerateCalls int
}

func (p *stubProblem) AddBinaryVar(string) mip.Var                                       { return 0 }
func (p *stubProblem) AddLinearConstraint(string, []mip.Term, mip.Sense, float64) error  { return nil }
func (p *stubProblem) SetObjective([]mip.Term, mip.ObjectiveSense)                        {}
func (p *stubProblem) SetPoolParams(n int)                                                { p.poolSize = n }
func (p *stubProblem) Optimize() error                                                    { return nil }

func (p *stubProblem) EnumeratePool() ([]mip.Solution, error) {
	p.enumerateCalls++
	if p.failOnce && p.enumerateCalls == 1 {
		return nil, domain.ErrSolverUnavailable
	}
	return p.solutions, p.err
}

func newModel(vars int) *model.Model {
	selections := make([]domain.CourseSelection, vars)
	mipVars := make([]mip.Var, vars)
	for i := range selections {
		selections[i] = domain.CourseSelection{Subject: "S", ECTS: 1}
		mipVars[i] = mip.Var(i)
	}
	return &model.Model{Selections: selections, Vars: mipVars}
}

func TestSolve_MaterializesChosenSelections(t *testing.T) {
	p := &stubProblem{
		solutions: []mip.Solution{
			{ObjectiveValue: 5, Assignment: map[mip.Var]float64{0: 1, 1: 0}},
		},
	}
	m := newModel(2)
	m.Problem = p

	schedules, err := New().Solve(m, 1)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, 5.0, schedules[0].ObjectiveValue)
	assert.Len(t, schedules[0].CourseSelections, 1)
}

func TestSolve_EmptyPoolIsNotAnError(t *testing.T) {
	p := &stubProblem{solutions: nil}
	m := newModel(1)
	m.Problem = p

	schedules, err := New().Solve(m, 1)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestSolve_TruncatesToMaxSolutions(t *testing.T) {
	p := &stubProblem{
		solutions: []mip.Solution{
			{ObjectiveValue: 1, Assignment: map[mip.Var]float64{0: 1}},
			{ObjectiveValue: 2, Assignment: map[mip.Var]float64{0: 1}},
			{ObjectiveValue: 3, Assignment: map[mip.Var]float64{0: 1}},
		},
	}
	m := newModel(1)
	m.Problem = p

	schedules, err := New().Solve(m, 2)
	require.NoError(t, err)
	assert.Len(t, schedules, 2)
}

func TestSolve_RetriesOnceOnSolverUnavailable(t *testing.T) {
	p := &stubProblem{
		failOnce: true,
		solutions: []mip.Solution{
			{ObjectiveValue: 1, Assignment: map[mip.Var]float64{0: 1}},
		},
	}
	m := newModel(1)
	m.Problem = p

	schedules, err := New().Solve(m, 1)
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
	assert.Equal(t, 2, p.enumerateCalls)
}

func TestSolve_PropagatesNonRetriableError(t *testing.T) {
	p := &stubProblem{err: errors.New("boom")}
	m := newModel(1)
	m.Problem = p

	_, err := New().Solve(m, 1)
	assert.Error(t, err)
	assert.Equal(t, 1, p.enumerateCalls)
}
