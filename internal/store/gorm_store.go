package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tum-scheduler/internal/domain"
)

// lectureRowModel is the GORM row shape backing the "lecture" table.
// Grounded on original_source's diesel table `lecture` (schema.rs) and the
// teacher repo's GORM conventions (marshandaks-Del-Presence's
// internal/database/db.go).
type lectureRowModel struct {
	ID           string `gorm:"primaryKey"`
	Subject      string `gorm:"index"`
	CourseType   string `gorm:"column:course_type;index"`
	Weekday      string
	StartMinutes int `gorm:"column:start_minutes"`
	EndMinutes   int `gorm:"column:end_minutes"`
	Semester     string `gorm:"index"`
	Curriculum   string `gorm:"index"`
	Organization string
	NameEN       string `gorm:"column:name_en"`
	ECTS         float64
}

func (lectureRowModel) TableName() string { return "lecture" }

func (m lectureRowModel) toDomain() domain.LectureRow {
	return domain.LectureRow{
		ID:           m.ID,
		Subject:      m.Subject,
		CourseType:   domain.CourseType(m.CourseType),
		Weekday:      domain.Weekday(m.Weekday),
		StartTime:    domain.TimeOfDay(m.StartMinutes),
		EndTime:      domain.TimeOfDay(m.EndMinutes),
		Semester:     m.Semester,
		Curriculum:   m.Curriculum,
		Organization: m.Organization,
		NameEN:       m.NameEN,
		ECTS:         m.ECTS,
	}
}

// GormStore is the reference LectureRowReader backed by Postgres through
// GORM. The core never constructs one of these itself; a hosting service
// wires it up at startup and passes the interface down.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// LectureRows implements LectureRowReader. The bounded connection pool
// (spec §5) is GORM's own *sql.DB pool underneath; a borrow failure here
// (connection refused, pool exhausted) is reported as
// ErrStorageUnavailable. A failed find is run once more before the error
// is surfaced; connection-acquisition failures are not told apart from
// other query errors, so any failed query gets that one retry.
func (s *GormStore) LectureRows(ctx context.Context, q Query) ([]domain.LectureRow, error) {
	rows, err := s.find(ctx, q)
	if err != nil && errors.Is(err, domain.ErrStorageUnavailable) {
		rows, err = s.find(ctx, q)
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.LectureRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *GormStore) find(ctx context.Context, q Query) ([]lectureRowModel, error) {
	tx := s.db.WithContext(ctx).Model(&lectureRowModel{})

	if q.Semester != "" {
		tx = tx.Where("semester = ?", q.Semester)
	}
	if q.Curriculum != "" {
		tx = tx.Where("curriculum = ?", q.Curriculum)
	}
	if len(q.Faculties) > 0 {
		tx = tx.Where("organization IN ?", q.Faculties)
	}
	if len(q.ExcludedSubjects) > 0 {
		tx = tx.Where("subject NOT IN ?", q.ExcludedSubjects)
	}
	if len(q.IncludeSubjects) > 0 {
		tx = tx.Where("subject IN ?", q.IncludeSubjects)
	}

	var rows []lectureRowModel
	if err := tx.Find(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return rows, nil
}
