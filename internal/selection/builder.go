// Package selection implements SelectionBuilder from spec §4.2: it groups
// admissible LectureRows by subject and emits the atomic CourseSelections
// that ModelBuilder will turn into binary variables.
//
// Grounded on original_source's schedular/course_selection.rs
// (`build_from_lectures`, `course_selection_from_course_groups`) — the Go
// port below is a direct, renamed translation of that grouping logic into
// idiomatic Go, operating over the sorted stream Filter already produced
// instead of re-deriving order with group_by.
package selection

import (
	"fmt"
	"math"

	"tum-scheduler/internal/domain"
)

// Build implements spec §4.2. rows must already be Filter's output: sorted
// by (subject ASC, course_type DESC) and restricted to {VO, VI, UE}. Build
// is purely idempotent — the same rows in the same order always produce
// the same selections.
func Build(rows []domain.LectureRow) ([]domain.CourseSelection, error) {
	var out []domain.CourseSelection

	for _, group := range groupBySubject(rows) {
		selections, err := buildForSubject(group)
		if err != nil {
			return nil, err
		}
		out = append(out, selections...)
	}
	return out, nil
}

// subjectGroup is one subject's contiguous run of rows, split into teaching
// (VO/VI) and exercise (UE) sets, preserving Filter's order within each.
type subjectGroup struct {
	subject   string
	teaching  []domain.LectureRow
	exercises []domain.LectureRow
	other     []domain.LectureRow // rows outside {VO,VI,UE}; always a defect if non-empty
}

// groupBySubject partitions rows into per-subject groups assuming rows for
// the same subject are contiguous — the contract Filter's sort provides.
func groupBySubject(rows []domain.LectureRow) []subjectGroup {
	var groups []subjectGroup
	var current *subjectGroup

	for _, r := range rows {
		if current == nil || current.subject != r.Subject {
			groups = append(groups, subjectGroup{subject: r.Subject})
			current = &groups[len(groups)-1]
		}
		switch r.CourseType {
		case domain.CourseTypeLecture, domain.CourseTypeIntegratedLecture:
			current.teaching = append(current.teaching, r)
		case domain.CourseTypeExercise:
			current.exercises = append(current.exercises, r)
		default:
			current.other = append(current.other, r)
		}
	}
	return groups
}

// buildForSubject implements the table in spec §4.2.
func buildForSubject(g subjectGroup) ([]domain.CourseSelection, error) {
	if err := rejectUnknownTypes(g); err != nil {
		return nil, err
	}

	switch {
	case len(g.teaching) == 0 && len(g.exercises) == 0:
		return nil, nil

	case len(g.teaching) > 0 && len(g.exercises) == 0:
		sel, err := fromTeachingOnly(g.teaching)
		if err != nil {
			return nil, err
		}
		return []domain.CourseSelection{sel}, nil

	case len(g.teaching) == 0 && len(g.exercises) > 0:
		return fromExercisesOnly(g.exercises)

	default:
		return fromTeachingWithExercises(g.teaching, g.exercises)
	}
}

// rejectUnknownTypes is a defensive check: Filter must already have dropped
// anything outside {VO, VI, UE}. If one slips through anyway (store-schema
// drift, or Filter being bypassed by a caller) it is a defect — spec §4.2/§7
// say it must be surfaced, never silently dropped.
func rejectUnknownTypes(g subjectGroup) error {
	if len(g.other) > 0 {
		return fmt.Errorf("%w: subject %s has a row outside {VO,VI,UE} (%s)",
			domain.ErrUnknownCourseType, g.subject, g.other[0].CourseType)
	}
	return nil
}

func fromTeachingOnly(teaching []domain.LectureRow) (domain.CourseSelection, error) {
	ects := ectsOf(teaching, nil)
	sel := domain.CourseSelection{
		Subject:      teaching[0].Subject,
		NameEN:       teaching[0].NameEN,
		Faculty:      teaching[0].Organization,
		Appointments: appointmentsOf(teaching),
		ECTS:         ects,
	}
	return sel, sel.Validate()
}

func fromExercisesOnly(exercises []domain.LectureRow) ([]domain.CourseSelection, error) {
	out := make([]domain.CourseSelection, 0, len(exercises))
	for _, ex := range exercises {
		sel := domain.CourseSelection{
			Subject:      ex.Subject,
			NameEN:       ex.NameEN,
			Faculty:      ex.Organization,
			Appointments: []domain.Appointment{ex.Appointment()},
			ECTS:         ectsOf(nil, []domain.LectureRow{ex}),
		}
		if err := sel.Validate(); err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

// fromTeachingWithExercises emits one selection per exercise row, each
// bundling all teaching rows together with that single exercise — spec
// §4.2's "non-∅/non-∅" case, and the design choice (§9) to enumerate
// exercise choices up-front as distinct binaries rather than a separate
// "which exercise" variable.
func fromTeachingWithExercises(teaching, exercises []domain.LectureRow) ([]domain.CourseSelection, error) {
	teachingAppointments := appointmentsOf(teaching)
	ects := ectsOf(teaching, exercises)

	out := make([]domain.CourseSelection, 0, len(exercises))
	for _, ex := range exercises {
		appointments := make([]domain.Appointment, len(teachingAppointments)+1)
		copy(appointments, teachingAppointments)
		appointments[len(teachingAppointments)] = ex.Appointment()

		sel := domain.CourseSelection{
			Subject:      teaching[0].Subject,
			NameEN:       teaching[0].NameEN,
			Faculty:      teaching[0].Organization,
			Appointments: appointments,
			ECTS:         ects,
		}
		if err := sel.Validate(); err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func appointmentsOf(rows []domain.LectureRow) []domain.Appointment {
	out := make([]domain.Appointment, len(rows))
	for i, r := range rows {
		out[i] = r.Appointment()
	}
	return out
}

// ectsOf implements spec §4.2's credit formula:
// ceil(ects(first(T)) + ects(first(E))), a missing side contributing 0.
// "First" is defined by Filter's sort order, i.e. rows[0] of each slice.
func ectsOf(teaching, exercises []domain.LectureRow) float64 {
	var sum float64
	if len(teaching) > 0 {
		sum += teaching[0].ECTS
	}
	if len(exercises) > 0 {
		sum += exercises[0].ECTS
	}
	return math.Ceil(sum)
}
