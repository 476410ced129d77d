package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tum-scheduler/internal/domain"
)

func mkSel(subject, faculty string, ects float64, apps ...domain.Appointment) domain.CourseSelection {
	return domain.CourseSelection{Subject: subject, Faculty: faculty, ECTS: ects, Appointments: apps}
}

func mkApp(weekday domain.Weekday, from, to domain.TimeOfDay) domain.Appointment {
	return domain.Appointment{Weekday: weekday, From: from, To: to}
}

func TestCheckInvariants_Passes(t *testing.T) {
	sched := domain.Schedule{
		TotalECTS: 9,
		CourseSelections: []domain.CourseSelection{
			mkSel("IN2001", "informatics", 5, mkApp(domain.Monday, 600, 615)),
			mkSel("IN1000", "informatics", 4, mkApp(domain.Tuesday, 600, 615)),
		},
	}
	assert.NoError(t, CheckInvariants(sched, domain.ConstraintSettings{}))
}

func TestCheckInvariants_DetectsCollision(t *testing.T) {
	sched := domain.Schedule{
		CourseSelections: []domain.CourseSelection{
			mkSel("IN2001", "informatics", 5, mkApp(domain.Monday, 600, 630)),
			mkSel("IN1000", "informatics", 5, mkApp(domain.Monday, 615, 645)),
		},
	}
	assert.ErrorIs(t, CheckInvariants(sched, domain.ConstraintSettings{}), domain.ErrModelError)
}

func TestCheckInvariants_DetectsDuplicateSubject(t *testing.T) {
	sched := domain.Schedule{
		CourseSelections: []domain.CourseSelection{
			mkSel("IN2001", "informatics", 5, mkApp(domain.Monday, 600, 615)),
			mkSel("IN2001", "informatics", 5, mkApp(domain.Tuesday, 600, 615)),
		},
	}
	assert.ErrorIs(t, CheckInvariants(sched, domain.ConstraintSettings{}), domain.ErrModelError)
}

func TestCheckInvariants_CreditFloor(t *testing.T) {
	sched := domain.Schedule{
		TotalECTS: 3,
		CourseSelections: []domain.CourseSelection{
			mkSel("IN2001", "informatics", 3, mkApp(domain.Monday, 600, 615)),
		},
	}
	minEcts := 5.0
	assert.ErrorIs(t, CheckInvariants(sched, domain.ConstraintSettings{MinECTS: &minEcts}), domain.ErrModelError)
}

func TestCheckInvariants_FacultyCap(t *testing.T) {
	sched := domain.Schedule{
		CourseSelections: []domain.CourseSelection{
			mkSel("IN2001", "informatics", 5, mkApp(domain.Monday, 600, 615)),
			mkSel("IN1000", "informatics", 4, mkApp(domain.Tuesday, 600, 615)),
		},
	}
	c := domain.ConstraintSettings{MaxCoursesByFaculty: map[string]int{"informatics": 1}}
	assert.ErrorIs(t, CheckInvariants(sched, c), domain.ErrModelError)
}

func TestCheckInvariants_WeekdayCap(t *testing.T) {
	sched := domain.Schedule{
		CourseSelections: []domain.CourseSelection{
			mkSel("IN2001", "informatics", 5, mkApp(domain.Monday, 600, 615)),
			mkSel("IN1000", "informatics", 4, mkApp(domain.Tuesday, 600, 615)),
		},
	}
	maxWeekdays := 1
	assert.ErrorIs(t, CheckInvariants(sched, domain.ConstraintSettings{MaxWeekdays: &maxWeekdays}), domain.ErrModelError)
}
