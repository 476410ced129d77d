// Package model implements ModelBuilder from spec §4.3: it assembles the
// binary integer program over a set of CourseSelections — one x_i per
// selection, auxiliary y_d per weekday, the at-most-one-per-subject,
// non-collision, credit-floor, faculty-cap and weekday-cap constraints, and
// the chosen objective.
package model

import (
	"fmt"
	"sort"

	"tum-scheduler/internal/domain"
	"tum-scheduler/internal/mip"
)

// Model is the built program plus the bookkeeping SolverDriver needs to
// translate a pool entry back into CourseSelections.
type Model struct {
	Problem    mip.Problem
	Selections []domain.CourseSelection
	Vars       []mip.Var // Vars[i] is the binary variable for Selections[i]
}

// DumpLPTo writes the generated model to path for inspection, if the
// underlying Problem backend supports it. A backend that doesn't
// implement mip.LPDumper returns ErrModelError rather than silently doing
// nothing — a caller that asked for a dump should know it didn't happen.
func (m *Model) DumpLPTo(path string) error {
	dumper, ok := m.Problem.(mip.LPDumper)
	if !ok {
		return fmt.Errorf("%w: solver backend does not support LP dumps", domain.ErrModelError)
	}
	return dumper.WriteLP(path)
}

// Build implements spec §4.3. The same selections in the same order always
// yield an identical model — variable and constraint names are derived
// from subject codes, weekdays, faculty codes and indices, and constraints
// are emitted in sorted order, never in map iteration order.
func Build(problem mip.Problem, selections []domain.CourseSelection, constraints domain.ConstraintSettings, objective domain.SolutionObjective) (*Model, error) {
	m := &Model{Problem: problem, Selections: selections, Vars: make([]mip.Var, len(selections))}

	for i, sel := range selections {
		varName := fmt.Sprintf("%s_v%d", sel.Subject, i)
		m.Vars[i] = problem.AddBinaryVar(varName)
	}

	if err := m.addSubjectConstraints(); err != nil {
		return nil, err
	}
	if err := m.addIntervalConstraints(); err != nil {
		return nil, err
	}
	if err := m.addCreditFloor(constraints); err != nil {
		return nil, err
	}
	if err := m.addFacultyCaps(constraints); err != nil {
		return nil, err
	}
	weekdayVars, err := m.addWeekdayCap(constraints, objective)
	if err != nil {
		return nil, err
	}
	if err := m.setObjective(objective, weekdayVars); err != nil {
		return nil, err
	}
	return m, nil
}

// addSubjectConstraints: at most one selection per subject.
func (m *Model) addSubjectConstraints() error {
	bySubject := make(map[string][]mip.Term)
	for i, sel := range m.Selections {
		bySubject[sel.Subject] = append(bySubject[sel.Subject], mip.Term{Var: m.Vars[i], Coef: 1})
	}
	for _, subject := range sortedKeys(bySubject) {
		name := fmt.Sprintf("subject_%s", subject)
		if err := m.Problem.AddLinearConstraint(name, bySubject[subject], mip.LE, 1); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrModelError, err)
		}
	}
	return nil
}

// sortedKeys returns a map's string keys in sorted order, so that
// constraint-insertion order is a pure function of the input selections —
// spec §4.3's determinism contract.
func sortedKeys(m map[string][]mip.Term) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// addIntervalConstraints: at most one selection occupying each 15-minute
// (weekday, interval start) bucket. Spec §4.3 — the half-open
// [from,to) convention and interval-start keying is a contract, not an
// implementation detail.
func (m *Model) addIntervalConstraints() error {
	type bucket struct {
		weekday domain.Weekday
		at      domain.TimeOfDay
	}
	terms := make(map[bucket][]mip.Term)

	for i, sel := range m.Selections {
		for _, app := range sel.Appointments {
			for _, at := range app.Intervals() {
				b := bucket{weekday: app.Weekday, at: at}
				terms[b] = append(terms[b], mip.Term{Var: m.Vars[i], Coef: 1})
			}
		}
	}

	buckets := make([]bucket, 0, len(terms))
	for b := range terms {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].weekday != buckets[j].weekday {
			return buckets[i].weekday < buckets[j].weekday
		}
		return buckets[i].at < buckets[j].at
	})

	for _, b := range buckets {
		ts := terms[b]
		if len(ts) < 2 {
			continue // no possible collision, no need for a constraint
		}
		name := fmt.Sprintf("slot_%s_%s", b.weekday, b.at)
		if err := m.Problem.AddLinearConstraint(name, ts, mip.LE, 1); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrModelError, err)
		}
	}
	return nil
}

// addCreditFloor mirrors original_source's guarantee that a solve never
// degenerates to the trivial all-zero assignment (ip_schedular/mod.rs:129
// always enforces min_ects >= 13). Here the credit floor is optional per
// spec §5, so when MinECTS isn't configured we still require at least one
// selection — otherwise a feasibility solve with no objective (or
// MinCourses) would find the empty schedule both feasible and optimal,
// contradicting spec §8's populated-schedule scenarios.
func (m *Model) addCreditFloor(c domain.ConstraintSettings) error {
	if c.MinECTS != nil {
		terms := make([]mip.Term, len(m.Selections))
		for i, sel := range m.Selections {
			terms[i] = mip.Term{Var: m.Vars[i], Coef: sel.ECTS}
		}
		if err := m.Problem.AddLinearConstraint("min_ects", terms, mip.GE, *c.MinECTS); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrModelError, err)
		}
		return nil
	}

	if len(m.Selections) == 0 {
		return nil
	}
	terms := make([]mip.Term, len(m.Selections))
	for i := range m.Selections {
		terms[i] = mip.Term{Var: m.Vars[i], Coef: 1}
	}
	if err := m.Problem.AddLinearConstraint("nonempty", terms, mip.GE, 1); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrModelError, err)
	}
	return nil
}

func (m *Model) addFacultyCaps(c domain.ConstraintSettings) error {
	if len(c.MaxCoursesByFaculty) == 0 {
		return nil
	}
	byFaculty := make(map[string][]mip.Term)
	for i, sel := range m.Selections {
		byFaculty[sel.Faculty] = append(byFaculty[sel.Faculty], mip.Term{Var: m.Vars[i], Coef: 1})
	}
	faculties := make([]string, 0, len(c.MaxCoursesByFaculty))
	for f := range c.MaxCoursesByFaculty {
		faculties = append(faculties, f)
	}
	sort.Strings(faculties)

	for _, faculty := range faculties {
		terms, ok := byFaculty[faculty]
		if !ok {
			continue // no selections touch this faculty; nothing to cap
		}
		name := fmt.Sprintf("faculty_%s", faculty)
		if err := m.Problem.AddLinearConstraint(name, terms, mip.LE, float64(c.MaxCoursesByFaculty[faculty])); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrModelError, err)
		}
	}
	return nil
}

// addWeekdayCap allocates the y_d auxiliaries and the two implication
// directions from spec §4.3, whenever MaxWeekdays is set OR the objective
// is MinWeekdays (which reuses these auxiliaries per spec §9 open question
// (c)). Returns the y_d map keyed by weekday, or nil if neither applies.
func (m *Model) addWeekdayCap(c domain.ConstraintSettings, objective domain.SolutionObjective) (map[domain.Weekday]mip.Var, error) {
	needed := c.MaxWeekdays != nil || objective == domain.MinWeekdays
	if !needed {
		return nil, nil
	}

	selectionsByWeekday := make(map[domain.Weekday][]int)
	for i, sel := range m.Selections {
		for _, d := range sel.Weekdays() {
			selectionsByWeekday[d] = append(selectionsByWeekday[d], i)
		}
	}

	weekdayVars := make(map[domain.Weekday]mip.Var)
	var weekdaySumTerms []mip.Term

	for _, d := range domain.Weekdays {
		indices, used := selectionsByWeekday[d]
		if !used {
			continue
		}

		yd := m.Problem.AddBinaryVar(fmt.Sprintf("%s_v", d))
		weekdayVars[d] = yd

		// y_d <= Σ x_i for i meeting on d
		dayTerms := make([]mip.Term, 0, len(indices)+1)
		for _, i := range indices {
			dayTerms = append(dayTerms, mip.Term{Var: m.Vars[i], Coef: 1})
		}
		dayTerms = append(dayTerms, mip.Term{Var: yd, Coef: -1})
		if err := m.Problem.AddLinearConstraint(fmt.Sprintf("%s_is_off", d), dayTerms, mip.GE, 0); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrModelError, err)
		}

		// x_i <= y_d for every i meeting on d
		for _, i := range indices {
			terms := []mip.Term{{Var: m.Vars[i], Coef: 1}, {Var: yd, Coef: -1}}
			name := fmt.Sprintf("%s_is_on_%d", d, i)
			if err := m.Problem.AddLinearConstraint(name, terms, mip.LE, 0); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrModelError, err)
			}
		}

		weekdaySumTerms = append(weekdaySumTerms, mip.Term{Var: yd, Coef: 1})
	}

	if c.MaxWeekdays != nil && len(weekdaySumTerms) > 0 {
		if err := m.Problem.AddLinearConstraint("weekday_sum", weekdaySumTerms, mip.LE, float64(*c.MaxWeekdays)); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrModelError, err)
		}
	}

	return weekdayVars, nil
}

func (m *Model) setObjective(objective domain.SolutionObjective, weekdayVars map[domain.Weekday]mip.Var) error {
	switch objective {
	case domain.MinCourses:
		terms := make([]mip.Term, len(m.Vars))
		for i, v := range m.Vars {
			terms[i] = mip.Term{Var: v, Coef: 1}
		}
		m.Problem.SetObjective(terms, mip.Minimize)

	case domain.MaxEcts:
		terms := make([]mip.Term, len(m.Selections))
		for i, sel := range m.Selections {
			terms[i] = mip.Term{Var: m.Vars[i], Coef: sel.ECTS}
		}
		m.Problem.SetObjective(terms, mip.Maximize)

	case domain.MinWeekdays:
		terms := make([]mip.Term, 0, len(weekdayVars))
		for _, d := range domain.Weekdays {
			if v, ok := weekdayVars[d]; ok {
				terms = append(terms, mip.Term{Var: v, Coef: 1})
			}
		}
		m.Problem.SetObjective(terms, mip.Minimize)

	case domain.NoObjective:
		m.Problem.SetObjective(nil, mip.Minimize)

	default:
		return fmt.Errorf("%w: unrecognized objective %q", domain.ErrModelError, objective)
	}
	return nil
}
