package mip

import (
	"fmt"
	"os"
	"strings"

	"github.com/draffensperger/golp"

	"tum-scheduler/internal/domain"
)

// GolpProblem is the Problem backend built on lp_solve via
// github.com/draffensperger/golp — the closest license-free, real Go ILP
// solver to the Gurobi binding (`grb`) original_source used (see
// SPEC_FULL.md §11/§12). lp_solve has no native solution-pool mode, so
// pooling is layered on top in EnumeratePool by repeated solve + no-good cut.
//
// Unlike Gurobi's incremental model API, lp_solve wants the full row/column
// count up front; GolpProblem buffers variables and constraints and only
// builds the underlying *golp.LP lazily, on the first Optimize or
// EnumeratePool call, so
// callers can still add variables/constraints one at a time the way
// ModelBuilder does.
type GolpProblem struct {
	names        []string
	objTerms     []Term
	objSense     ObjectiveSense
	constraints  []constraint
	poolSize     int

	lp *golp.LP
}

type constraint struct {
	name  string
	terms []Term
	sense Sense
	rhs   float64
}

func NewGolpProblem() *GolpProblem {
	return &GolpProblem{poolSize: 1}
}

func (p *GolpProblem) AddBinaryVar(name string) Var {
	p.names = append(p.names, name)
	return Var(len(p.names) - 1)
}

func (p *GolpProblem) AddLinearConstraint(name string, terms []Term, sense Sense, rhs float64) error {
	if len(terms) == 0 {
		return fmt.Errorf("%w: constraint %s has no terms", domain.ErrModelError, name)
	}
	p.constraints = append(p.constraints, constraint{name: name, terms: terms, sense: sense, rhs: rhs})
	return nil
}

func (p *GolpProblem) SetObjective(terms []Term, sense ObjectiveSense) {
	p.objTerms = terms
	p.objSense = sense
}

func (p *GolpProblem) SetPoolParams(n int) {
	if n < 1 {
		n = 1
	}
	p.poolSize = n
}

// build materializes the buffered variables/constraints into a *golp.LP.
// Binary variables are modelled as integer columns bounded to [0,1].
func (p *GolpProblem) build() *golp.LP {
	lp := golp.NewLP(0, len(p.names))

	objRow := make([]float64, len(p.names))
	for _, t := range p.objTerms {
		objRow[t.Var] += t.Coef
	}
	lp.SetObjFn(objRow)
	if p.objSense == Maximize {
		lp.SetMaximize()
	} else {
		lp.SetMinimize()
	}

	for col := range p.names {
		lp.SetInt(col, true)
		lp.SetBounds(col, 0, 1)
	}

	for _, c := range p.constraints {
		row := make([]float64, len(p.names))
		for _, t := range c.terms {
			row[t.Var] += t.Coef
		}
		lp.AddConstraint(row, golpConstraintType(c.sense), c.rhs)
	}

	return lp
}

func golpConstraintType(s Sense) golp.ConstrType {
	switch s {
	case GE:
		return golp.GE
	case EQ:
		return golp.EQ
	default:
		return golp.LE
	}
}

// errInfeasible is a package-private sentinel distinguishing "no solution
// exists" (spec §4.4: return empty, not an error) from an actual solver
// failure.
var errInfeasible = fmt.Errorf("model is infeasible")

// solveOnce drives one lp_solve call and classifies its status.
func (p *GolpProblem) solveOnce() error {
	switch p.lp.Solve() {
	case golp.OPTIMAL, golp.SUBOPTIMAL:
		return nil
	case golp.INFEASIBLE:
		return errInfeasible
	default:
		return fmt.Errorf("%w: lp_solve returned a non-optimal status", domain.ErrSolverUnavailable)
	}
}

// Optimize builds (on first call) and solves the underlying LP once.
func (p *GolpProblem) Optimize() error {
	if p.lp == nil {
		p.lp = p.build()
	}
	return p.solveOnce()
}

// EnumeratePool runs the no-good-cut pooling loop described in
// SPEC_FULL.md §12: solve, record the assignment, forbid reproducing it
// exactly, re-solve, until poolSize solutions are collected or the model
// goes infeasible.
func (p *GolpProblem) EnumeratePool() ([]Solution, error) {
	if p.lp == nil {
		p.lp = p.build()
	}

	var solutions []Solution
	for len(solutions) < p.poolSize {
		if err := p.solveOnce(); err != nil {
			if err == errInfeasible {
				break
			}
			return solutions, err
		}

		values := p.lp.Variables()
		assignment := make(map[Var]float64, len(values))
		for i, v := range values {
			assignment[Var(i)] = v
		}
		solutions = append(solutions, Solution{
			ObjectiveValue: p.lp.Objective(),
			Assignment:     assignment,
		})

		if len(solutions) >= p.poolSize {
			break
		}
		p.forbid(assignment)
	}
	return solutions, nil
}

// WriteLP renders the buffered model in a plain, human-readable LP-like
// format and writes it to path — a diagnostic dump, not a format any
// solver reads back in. Grounded on original_source's
// model.write("schedular.lp") call before every optimize.
func (p *GolpProblem) WriteLP(path string) error {
	var b strings.Builder

	sense := "min"
	if p.objSense == Maximize {
		sense = "max"
	}
	fmt.Fprintf(&b, "%s: %s\n", sense, termsString(p.objTerms, p.names))

	for _, c := range p.constraints {
		fmt.Fprintf(&b, "%s: %s %s %.6g\n", c.name, termsString(c.terms, p.names), senseString(c.sense), c.rhs)
	}

	fmt.Fprintln(&b, "binary")
	for _, name := range p.names {
		fmt.Fprintf(&b, "  %s\n", name)
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func termsString(terms []Term, names []string) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("%+g %s", t.Coef, names[t.Var])
	}
	return strings.Join(parts, " ")
}

func senseString(s Sense) string {
	switch s {
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "<="
	}
}

// forbid adds a no-good cut excluding exactly the given 0/1 assignment:
// Σ_{i: x_i=1} (1-x_i) + Σ_{i: x_i=0} x_i ≥ 1.
func (p *GolpProblem) forbid(assignment map[Var]float64) {
	row := make([]float64, len(p.names))
	rhs := 1.0
	for v, val := range assignment {
		if val >= 0.5 {
			row[v] = -1
			rhs -= 1
		} else {
			row[v] = 1
		}
	}
	p.lp.AddConstraint(row, golp.GE, rhs)
}
