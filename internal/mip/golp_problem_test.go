package mip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tum-scheduler/internal/domain"
)

func TestGolpProblem_AddBinaryVar(t *testing.T) {
	p := NewGolpProblem()
	v0 := p.AddBinaryVar("x0")
	v1 := p.AddBinaryVar("x1")
	assert.Equal(t, Var(0), v0)
	assert.Equal(t, Var(1), v1)
}

func TestGolpProblem_AddLinearConstraint_RejectsEmptyTerms(t *testing.T) {
	p := NewGolpProblem()
	err := p.AddLinearConstraint("empty", nil, LE, 1)
	assert.ErrorIs(t, err, domain.ErrModelError)
}

func TestGolpProblem_SetPoolParams_DefaultsToOne(t *testing.T) {
	p := NewGolpProblem()
	p.SetPoolParams(0)
	assert.Equal(t, 1, p.poolSize)
	p.SetPoolParams(-5)
	assert.Equal(t, 1, p.poolSize)
	p.SetPoolParams(5)
	assert.Equal(t, 5, p.poolSize)
}

func TestGolpProblem_WriteLP(t *testing.T) {
	p := NewGolpProblem()
	v0 := p.AddBinaryVar("IN2001_v0")
	v1 := p.AddBinaryVar("IN1000_v1")
	require.NoError(t, p.AddLinearConstraint("subject_IN2001", []Term{{Var: v0, Coef: 1}}, LE, 1))
	p.SetObjective([]Term{{Var: v0, Coef: 5}, {Var: v1, Coef: 4}}, Maximize)

	path := filepath.Join(t.TempDir(), "model.lp")
	require.NoError(t, p.WriteLP(path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "max:")
	assert.Contains(t, string(contents), "subject_IN2001")
	assert.Contains(t, string(contents), "IN2001_v0")
}

func TestGolpConstraintType(t *testing.T) {
	require.NotNil(t, golpConstraintType(LE))
	assert.NotEqual(t, golpConstraintType(LE), golpConstraintType(GE))
	assert.NotEqual(t, golpConstraintType(GE), golpConstraintType(EQ))
}
