package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseSelection_Weekdays(t *testing.T) {
	sel := CourseSelection{
		Subject: "IN2001",
		Appointments: []Appointment{
			{Weekday: Wednesday, From: 600, To: 615},
			{Weekday: Monday, From: 600, To: 615},
			{Weekday: Monday, From: 630, To: 645},
		},
	}
	assert.Equal(t, []Weekday{Monday, Wednesday}, sel.Weekdays())
}

func TestCourseSelection_MeetsOn(t *testing.T) {
	sel := CourseSelection{
		Subject:      "IN2001",
		Appointments: []Appointment{{Weekday: Tuesday, From: 600, To: 615}},
	}
	assert.True(t, sel.MeetsOn(Tuesday))
	assert.False(t, sel.MeetsOn(Friday))
}

func TestCourseSelection_Validate(t *testing.T) {
	valid := CourseSelection{Subject: "IN2001", Appointments: []Appointment{{Weekday: Monday, From: 600, To: 615}}}
	assert.NoError(t, valid.Validate())

	noSubject := CourseSelection{Appointments: []Appointment{{Weekday: Monday, From: 600, To: 615}}}
	assert.ErrorIs(t, noSubject.Validate(), ErrModelError)

	noAppointments := CourseSelection{Subject: "IN2001"}
	assert.ErrorIs(t, noAppointments.Validate(), ErrModelError)
}

func TestAppointment_Intervals(t *testing.T) {
	a := Appointment{Weekday: Monday, From: 600, To: 645}
	assert.Equal(t, []TimeOfDay{600, 615, 630}, a.Intervals())
}
