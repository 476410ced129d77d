package domain

import "fmt"

// Appointment is a single recurring weekly meeting. Equality is by all four
// fields — spec §3. The model builder keys collision constraints on each
// appointment's (weekday, interval start) pairs, not on Appointment
// equality.
type Appointment struct {
	Weekday    Weekday
	From       TimeOfDay
	To         TimeOfDay
	CourseType CourseType
}

// Intervals enumerates the 15-minute interval starts this appointment
// occupies; paired with a.Weekday they are the atoms the non-collision
// constraint is built from.
func (a Appointment) Intervals() []TimeOfDay {
	return Intervals(a.From, a.To)
}

// CourseSelection is one atomic, all-or-nothing commitment for a subject:
// choosing it in a schedule commits the student to every Appointment in it.
// Spec §3.
type CourseSelection struct {
	Subject      string
	NameEN       string
	Faculty      string
	Appointments []Appointment
	ECTS         float64
}

// Weekdays returns the distinct weekdays this selection meets on, in
// Weekdays order.
func (c CourseSelection) Weekdays() []Weekday {
	ws := make([]Weekday, 0, len(c.Appointments))
	for _, a := range c.Appointments {
		ws = append(ws, a.Weekday)
	}
	return SortedWeekdays(ws)
}

// MeetsOn reports whether the selection has at least one appointment on d.
func (c CourseSelection) MeetsOn(d Weekday) bool {
	for _, a := range c.Appointments {
		if a.Weekday == d {
			return true
		}
	}
	return false
}

// Validate enforces the CourseSelection invariant from spec §3: a non-empty
// appointment set.
func (c CourseSelection) Validate() error {
	if c.Subject == "" {
		return fmt.Errorf("%w: course selection missing subject", ErrModelError)
	}
	if len(c.Appointments) == 0 {
		return fmt.Errorf("%w: course selection %s has no appointments", ErrModelError, c.Subject)
	}
	return nil
}
