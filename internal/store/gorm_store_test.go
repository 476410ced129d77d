package store

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tum-scheduler/internal/domain"
)

func newGormStoreMock(t *testing.T) (*GormStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormStore(gdb), mock, func() { db.Close() }
}

func TestGormStore_LectureRows_BuildsConditionalQuery(t *testing.T) {
	s, mock, closeDB := newGormStoreMock(t)
	defer closeDB()

	rowsCols := []string{"id", "subject", "course_type", "weekday", "start_minutes", "end_minutes", "semester", "curriculum", "organization", "name_en", "ects"}
	mock.ExpectQuery(`SELECT \* FROM "lecture" WHERE semester = \$1 AND curriculum = \$2`).
		WithArgs("2026W", "informatics").
		WillReturnRows(sqlmock.NewRows(rowsCols).AddRow("r1", "IN2001", "VO", "Monday", 600, 615, "2026W", "informatics", "informatics", "Algorithms", 5.0))

	out, err := s.LectureRows(context.Background(), Query{Semester: "2026W", Curriculum: "informatics"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "IN2001", out[0].Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_LectureRows_RetriesOnceThenSurfaces(t *testing.T) {
	s, mock, closeDB := newGormStoreMock(t)
	defer closeDB()

	// Spec §7: a connection/query failure is retried once before surfacing.
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)
	mock.ExpectQuery(".*").WillReturnError(assert.AnError)

	_, err := s.LectureRows(context.Background(), Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
