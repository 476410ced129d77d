package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tum-scheduler/internal/domain"
)

const fixtureCSV = `subject,course_type,weekday,start,end,semester,curriculum,organization,name_en,ects
IN2001,VO,Monday,10:00,10:15,2026W,informatics,informatics,Algorithms,5
IN1000,UE,Tuesday,10:00,10:15,2026W,informatics,informatics,Intro Exercise,2
PH1000,VO,Wednesday,10:00,10:15,2026W,informatics,physics,Mechanics,3
`

func TestLoadCSVStore_ParsesRows(t *testing.T) {
	s, err := loadCSVStore(strings.NewReader(fixtureCSV))
	require.NoError(t, err)
	require.Len(t, s.rows, 3)
	assert.Equal(t, "IN2001", s.rows[0].Subject)
	assert.Equal(t, domain.CourseTypeLecture, s.rows[0].CourseType)
	assert.Equal(t, 5.0, s.rows[0].ECTS)
}

func TestCSVStore_LectureRows_FiltersByQuery(t *testing.T) {
	s, err := loadCSVStore(strings.NewReader(fixtureCSV))
	require.NoError(t, err)

	out, err := s.LectureRows(context.Background(), Query{Faculties: []string{"physics"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "PH1000", out[0].Subject)
}

func TestCSVStore_LectureRows_ExcludesSubjects(t *testing.T) {
	s, err := loadCSVStore(strings.NewReader(fixtureCSV))
	require.NoError(t, err)

	out, err := s.LectureRows(context.Background(), Query{ExcludedSubjects: []string{"IN2001"}})
	require.NoError(t, err)
	for _, r := range out {
		assert.NotEqual(t, "IN2001", r.Subject)
	}
}

func TestCSVStore_LectureRows_IncludeSubjects(t *testing.T) {
	s, err := loadCSVStore(strings.NewReader(fixtureCSV))
	require.NoError(t, err)

	out, err := s.LectureRows(context.Background(), Query{IncludeSubjects: []string{"IN1000"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "IN1000", out[0].Subject)
}

func TestLoadCSVStore_MalformedTime(t *testing.T) {
	bad := "subject,course_type,weekday,start,end,semester,curriculum,organization,name_en,ects\nIN2001,VO,Monday,nope,10:15,2026W,informatics,informatics,Algorithms,5\n"
	_, err := loadCSVStore(strings.NewReader(bad))
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
