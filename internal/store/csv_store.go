package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"tum-scheduler/internal/domain"
)

// CSVStore is an in-memory LectureRowReader loaded from a CSV fixture. It
// is grounded on the teacher repo's internal/loader/parser_csv.go loading
// pattern (os.Open + csv.NewReader + strconv field parsing), repurposed
// here for LectureRow columns instead of room rows. Used by cmd/scheduler
// and by tests that need a predetermined row set without a live database.
type CSVStore struct {
	rows []domain.LectureRow
}

// NewCSVStoreFromRows builds a store directly from an in-memory row slice —
// the shape most unit tests want.
func NewCSVStoreFromRows(rows []domain.LectureRow) *CSVStore {
	return &CSVStore{rows: rows}
}

// LoadCSVStore reads a "subject,course_type,weekday,start,end,semester,
// curriculum,organization,name_en,ects" CSV file, one header row followed
// by data rows.
func LoadCSVStore(path string) (*CSVStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer f.Close()
	return loadCSVStore(f)
}

func loadCSVStore(r io.Reader) (*CSVStore, error) {
	reader := csv.NewReader(r)
	rows := make([]domain.LectureRow, 0)

	i := -1
	for {
		i++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		if i == 0 {
			continue // header
		}
		if len(record) < 10 {
			continue
		}

		start, err := domain.ParseTimeOfDay(record[3])
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseTimeOfDay(record[4])
		if err != nil {
			return nil, err
		}
		ects, _ := strconv.ParseFloat(record[9], 64)

		rows = append(rows, domain.LectureRow{
			ID:           fmt.Sprintf("row-%d", i),
			Subject:      record[0],
			CourseType:   domain.CourseType(record[1]),
			Weekday:      domain.Weekday(record[2]),
			StartTime:    start,
			EndTime:      end,
			Semester:     record[5],
			Curriculum:   record[6],
			Organization: record[7],
			NameEN:       record[8],
			ECTS:         ects,
		})
	}
	return &CSVStore{rows: rows}, nil
}

// LectureRows implements LectureRowReader by filtering the in-memory slice.
func (s *CSVStore) LectureRows(_ context.Context, q Query) ([]domain.LectureRow, error) {
	facultySet := toSet(q.Faculties)
	excludedSet := toSet(q.ExcludedSubjects)
	includeSet := toSet(q.IncludeSubjects)

	out := make([]domain.LectureRow, 0, len(s.rows))
	for _, row := range s.rows {
		if q.Semester != "" && row.Semester != q.Semester {
			continue
		}
		if q.Curriculum != "" && row.Curriculum != q.Curriculum {
			continue
		}
		if len(facultySet) > 0 && !facultySet[row.Organization] {
			continue
		}
		if excludedSet[row.Subject] {
			continue
		}
		if len(includeSet) > 0 && !includeSet[row.Subject] {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func toSet(xs []string) map[string]bool {
	if len(xs) == 0 {
		return nil
	}
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}
