// Package mip wraps a binary integer-program solver behind the abstract
// capability spec §9 names: add_binary_var, add_linear_constraint,
// set_objective, set_pool_params, optimize, enumerate_pool, read_var. "Any
// solver meeting this capability set suffices" — Problem is that capability
// interface; GolpProblem is the one concrete backend this repository ships.
package mip

// Sense is a linear constraint's relational operator.
type Sense int

const (
	LE Sense = iota // ≤
	GE               // ≥
	EQ               // =
)

// ObjectiveSense selects minimize or maximize.
type ObjectiveSense int

const (
	Minimize ObjectiveSense = iota
	Maximize
)

// Term is one coefficient·variable pair in a linear expression.
type Term struct {
	Var Var
	Coef float64
}

// Var is an opaque handle to a binary decision variable, returned by
// AddBinaryVar and passed back into ReadVar.
type Var int

// Solution is one pool entry: a 0/1 assignment plus the objective value the
// solver reports for it.
type Solution struct {
	ObjectiveValue float64
	Assignment     map[Var]float64
}

// Problem is the capability set spec §9 requires of any MIP backend.
type Problem interface {
	// AddBinaryVar creates a new x∈{0,1} variable. name is diagnostic only.
	AddBinaryVar(name string) Var

	// AddLinearConstraint adds name: Σ terms (sense) rhs.
	AddLinearConstraint(name string, terms []Term, sense Sense, rhs float64) error

	// SetObjective sets the objective expression and optimization sense.
	SetObjective(terms []Term, sense ObjectiveSense)

	// SetPoolParams configures solution-pool search: up to n distinct
	// feasible solutions, in emission order.
	SetPoolParams(n int)

	// Optimize drives the solver once.
	Optimize() error

	// EnumeratePool returns the solutions found, in pool-emitted order,
	// truncated to the configured pool size.
	EnumeratePool() ([]Solution, error)
}

// ReadVar extracts a variable's value (0 or 1) from a Solution.
func ReadVar(sol Solution, v Var) float64 {
	return sol.Assignment[v]
}

// LPDumper is an optional capability a Problem backend may implement to
// write out its generated model for inspection, mirroring
// original_source's model.write("schedular.lp") diagnostic dump. Not part
// of the required Problem contract — a backend that can't produce one
// simply doesn't implement this.
type LPDumper interface {
	WriteLP(path string) error
}
