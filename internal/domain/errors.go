package domain

import "errors"

// Error kinds from spec §7. Exhaustive: every failure the engine can produce
// is one of these, wrapped with context via fmt.Errorf("%w: ...", ...).
var (
	// ErrInvalidFilter marks a malformed or impossible request field.
	// Recoverable by the caller: fix the input and retry.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrStorageUnavailable marks a store connection or query failure.
	// Transient: the store's pool-borrow path retries once before
	// propagating this.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnknownCourseType marks a row whose course_type is outside
	// {VO, VI, UE} reaching SelectionBuilder. Indicates a Filter defect or
	// store-schema drift; never silently dropped.
	ErrUnknownCourseType = errors.New("unknown course type")

	// ErrModelError marks an internal inconsistency while constructing the
	// integer program (e.g. a constraint or variable name collision).
	ErrModelError = errors.New("model error")

	// ErrSolverUnavailable marks a MIP backend that could not run.
	ErrSolverUnavailable = errors.New("solver unavailable")
)
