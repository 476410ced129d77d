// Package filter implements the Filter component from spec §4.1: it turns
// a FilterSettings into a predicate query against the LectureRow store and
// returns the matching rows, sorted and deduplicated the way
// SelectionBuilder depends on.
package filter

import (
	"context"
	"fmt"
	"sort"

	"tum-scheduler/internal/domain"
	"tum-scheduler/internal/store"
)

// Filter is stateless; it only needs a row reader to borrow from.
type Filter struct {
	rows store.LectureRowReader
}

func New(rows store.LectureRowReader) *Filter {
	return &Filter{rows: rows}
}

// AdmissibleRows implements spec §4.1. It validates settings, compiles them
// into a store.Query, restricts the result to known course types, then
// sorts (subject ASC, course_type DESC) and deduplicates.
//
// An empty result is not an error. StorageUnavailable and InvalidFilter are
// the only error kinds this can return.
func (f *Filter) AdmissibleRows(ctx context.Context, fs domain.FilterSettings) ([]domain.LectureRow, error) {
	if err := validate(fs); err != nil {
		return nil, err
	}

	q := store.Query{
		Semester:         fs.Semester,
		Curriculum:       fs.Curriculum,
		Faculties:        keys(fs.Faculties),
		ExcludedSubjects: keys(fs.ExcludedCourses),
		IncludeSubjects:  keys(fs.Courses),
	}

	rows, err := f.rows.LectureRows(ctx, q)
	if err != nil {
		return nil, err
	}

	rows = restrictToKnownTypes(rows)
	rows = dedupe(rows)
	sortRows(rows)
	return rows, nil
}

func validate(fs domain.FilterSettings) error {
	if fs.Faculties != nil && len(fs.Faculties) == 0 {
		return fmt.Errorf("%w: faculties set is present but empty", domain.ErrInvalidFilter)
	}
	if fs.Courses != nil && len(fs.Courses) == 0 {
		return fmt.Errorf("%w: courses set is present but empty", domain.ErrInvalidFilter)
	}
	return nil
}

func restrictToKnownTypes(rows []domain.LectureRow) []domain.LectureRow {
	out := rows[:0]
	for _, r := range rows {
		if domain.KnownCourseTypes[r.CourseType] {
			out = append(out, r)
		}
	}
	return out
}

func dedupe(rows []domain.LectureRow) []domain.LectureRow {
	seen := make(map[string]bool, len(rows))
	out := make([]domain.LectureRow, 0, len(rows))
	for _, r := range rows {
		key := r.DedupeKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// sortRows enforces the Filter sort contract spec §4.1 depends on:
// subject ASC, course_type DESC — which, because "VO" and "VI" sort after
// "UE" lexicographically, puts teaching rows before exercise rows within a
// subject.
func sortRows(rows []domain.LectureRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Subject != rows[j].Subject {
			return rows[i].Subject < rows[j].Subject
		}
		return rows[i].CourseType > rows[j].CourseType
	})
}

func keys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
