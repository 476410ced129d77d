package engine

import (
	"fmt"

	"tum-scheduler/internal/domain"
)

// CheckInvariants defends, after the solver returns, the properties spec §8
// requires of every Schedule: non-collision, subject uniqueness, credit
// floor, faculty caps, weekday cap. It is redundant with the constraints
// ModelBuilder already encodes — the solver should never produce a
// violation — but it is exercised by every engine.Optimize call and by unit
// tests the same way the teacher repo's graph package cross-checks
// pairwise conflicts (internal/graph/builder.go's clique-conflict
// detection) before trusting a coloring: here the "pairs that must not
// share a slot" check is done via the same interval-bucket keying
// ModelBuilder uses, rather than an explicit conflict graph, because the
// model already is the graph.
func CheckInvariants(sched domain.Schedule, c domain.ConstraintSettings) error {
	if err := checkNonCollision(sched); err != nil {
		return err
	}
	if err := checkSubjectUniqueness(sched); err != nil {
		return err
	}
	if c.MinECTS != nil && sched.TotalECTS < *c.MinECTS {
		return fmt.Errorf("%w: schedule has %.1f ECTS, below the %.1f floor", domain.ErrModelError, sched.TotalECTS, *c.MinECTS)
	}
	if err := checkFacultyCaps(sched, c); err != nil {
		return err
	}
	if c.MaxWeekdays != nil && len(sched.WeekdaysUsed()) > *c.MaxWeekdays {
		return fmt.Errorf("%w: schedule uses %d weekdays, above the cap of %d", domain.ErrModelError, len(sched.WeekdaysUsed()), *c.MaxWeekdays)
	}
	return nil
}

func checkNonCollision(sched domain.Schedule) error {
	type bucket struct {
		weekday domain.Weekday
		at      domain.TimeOfDay
	}
	occupied := make(map[bucket]string)

	for _, sel := range sched.CourseSelections {
		for _, app := range sel.Appointments {
			for _, at := range app.Intervals() {
				b := bucket{weekday: app.Weekday, at: at}
				if owner, taken := occupied[b]; taken {
					return fmt.Errorf("%w: %s and %s both occupy %s %s", domain.ErrModelError, owner, sel.Subject, b.weekday, b.at)
				}
				occupied[b] = sel.Subject
			}
		}
	}
	return nil
}

func checkSubjectUniqueness(sched domain.Schedule) error {
	seen := make(map[string]bool)
	for _, sel := range sched.CourseSelections {
		if seen[sel.Subject] {
			return fmt.Errorf("%w: subject %s chosen more than once", domain.ErrModelError, sel.Subject)
		}
		seen[sel.Subject] = true
	}
	return nil
}

func checkFacultyCaps(sched domain.Schedule, c domain.ConstraintSettings) error {
	if len(c.MaxCoursesByFaculty) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, sel := range sched.CourseSelections {
		counts[sel.Faculty]++
	}
	for faculty, capN := range c.MaxCoursesByFaculty {
		if counts[faculty] > capN {
			return fmt.Errorf("%w: faculty %s has %d selections, above the cap of %d", domain.ErrModelError, faculty, counts[faculty], capN)
		}
	}
	return nil
}
