// Package engine wires Filter → SelectionBuilder → ModelBuilder →
// SolverDriver into the linear pipeline spec §2 describes, and carries the
// per-request state machine from §4.5. It is the only exported surface a
// hosting API layer should call.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tum-scheduler/internal/domain"
	"tum-scheduler/internal/filter"
	"tum-scheduler/internal/metrics"
	"tum-scheduler/internal/mip"
	"tum-scheduler/internal/model"
	"tum-scheduler/internal/selection"
	"tum-scheduler/internal/solver"
	"tum-scheduler/internal/store"
)

// Request is the engine's entry point, corresponding to spec §6's
// OptimizeRequest.
type Request struct {
	Courses      map[string]bool
	Curriculum   string
	Semester     string
	Excluded     map[string]bool
	Faculties    map[string]bool
	Constraints  domain.ConstraintSettings
	Objective    domain.SolutionObjective
	NumSchedules int
}

// NewProblem constructs the mip.Problem backend a request's model should be
// built against. Passed to New so tests can swap in a fake backend.
type NewProblem func() mip.Problem

// Engine holds the process-wide state spec §9 permits: the store
// connection pool and the loggers/metrics wired at startup. Everything
// else is request-scoped.
type Engine struct {
	rows       store.LectureRowReader
	newProblem NewProblem
	log        *zap.Logger
}

func New(rows store.LectureRowReader, newProblem NewProblem, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{rows: rows, newProblem: newProblem, log: log}
}

// Optimize runs one request through the full pipeline and state machine.
// It never retains any state from the request once this call returns
// (spec §3 Lifecycle, §5 no cross-request state).
func (e *Engine) Optimize(ctx context.Context, req Request) ([]domain.Schedule, error) {
	requestID := uuid.NewString()
	log := e.log.With(zap.String("request_id", requestID))
	state := StateInit
	start := time.Now()

	fail := func(err error) ([]domain.Schedule, error) {
		state = StateFailed
		log.Error("request failed", zap.String("state", string(state)), zap.Error(err))
		metrics.RequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	fs := domain.FilterSettings{
		Semester:        req.Semester,
		Curriculum:      req.Curriculum,
		Faculties:       req.Faculties,
		ExcludedCourses: req.Excluded,
		Courses:         req.Courses,
	}

	rows, err := filter.New(e.rows).AdmissibleRows(ctx, fs)
	if err != nil {
		return fail(err)
	}
	state = StateFiltered
	log.Info("filtered admissible rows", zap.String("state", string(state)), zap.Int("rows", len(rows)))

	selections, err := selection.Build(rows)
	if err != nil {
		return fail(err)
	}
	state = StateSelectionsBuilt
	log.Info("built course selections", zap.String("state", string(state)), zap.Int("selections", len(selections)))

	problem := e.newProblem()
	m, err := model.Build(problem, selections, req.Constraints, req.Objective)
	if err != nil {
		return fail(err)
	}
	state = StateModelBuilt
	log.Info("built integer program", zap.String("state", string(state)), zap.Int("variables", len(m.Vars)))

	// num_schedules at the request boundary (spec §6) takes precedence when
	// set; ConstraintSettings.MaxSolutions (spec §3) is the fallback for a
	// caller that only configured constraints, e.g. via
	// ConstraintSettingsFromMap.
	maxSolutions := req.NumSchedules
	if maxSolutions <= 0 && req.Constraints.MaxSolutions != nil {
		maxSolutions = *req.Constraints.MaxSolutions
	}
	if maxSolutions <= 0 {
		maxSolutions = domain.DefaultMaxSolutions
	}
	if maxSolutions > domain.ServerMaxSolutionsCap {
		maxSolutions = domain.ServerMaxSolutionsCap
	}

	schedules, err := solver.New().Solve(m, maxSolutions)
	if err != nil {
		return fail(err)
	}
	state = StateSolved
	log.Info("solved integer program", zap.String("state", string(state)), zap.Int("schedules", len(schedules)))

	for _, sched := range schedules {
		if err := CheckInvariants(sched, req.Constraints); err != nil {
			return fail(err)
		}
	}

	state = StateDone
	metrics.RequestsTotal.WithLabelValues("ok").Inc()
	metrics.SolveDuration.Observe(time.Since(start).Seconds())
	if len(schedules) == 0 {
		metrics.InfeasibleTotal.Inc()
	}
	log.Info("request complete", zap.String("state", string(state)), zap.Int("schedules", len(schedules)))

	return schedules, nil
}
