package domain

// ConstraintSettings are the optional user constraints from spec §3. Zero
// value means "no constraint of that kind."
type ConstraintSettings struct {
	MinECTS          *float64
	MaxWeekdays      *int
	MaxSolutions     *int
	MaxCoursesByFaculty map[string]int
}

// ConstraintSettingsFromMap ports original_source's
// `impl From<&HashMap<String,i32>> for ConstraintSettings`
// (schedular/settings.rs): a caller that only has a flat string→int map
// (e.g. parsed straight from query parameters) can still build proper
// ConstraintSettings. "maxweekdays" and "minects" are recognized keys;
// every other key is taken as a faculty code mapped to its max-courses cap.
func ConstraintSettingsFromMap(m map[string]int) ConstraintSettings {
	var cs ConstraintSettings
	for key, amount := range m {
		amount := amount
		switch key {
		case "maxweekdays":
			cs.MaxWeekdays = &amount
		case "minects":
			ects := float64(amount)
			cs.MinECTS = &ects
		default:
			if cs.MaxCoursesByFaculty == nil {
				cs.MaxCoursesByFaculty = make(map[string]int)
			}
			cs.MaxCoursesByFaculty[key] = amount
		}
	}
	return cs
}

// FilterSettings select which LectureRows are admissible. Spec §3, all
// fields optional except Curriculum/Semester which spec §6 marks required
// at the request boundary (Filter itself treats an empty value as
// "unconstrained" so it can be unit-tested without a full request).
type FilterSettings struct {
	Semester        string
	Curriculum      string
	Faculties       map[string]bool
	ExcludedCourses map[string]bool
	Courses         map[string]bool
}

// SolutionObjective selects the ModelBuilder objective. Spec §4.3.
type SolutionObjective string

const (
	NoObjective SolutionObjective = "noobjective"
	MinCourses  SolutionObjective = "mincourses"
	MaxEcts     SolutionObjective = "maxects"
	MinWeekdays SolutionObjective = "minweekdays"
)

// DefaultMaxSolutions is used when a request does not set num_schedules.
const DefaultMaxSolutions = 1

// ServerMaxSolutionsCap is the suggested upper bound from spec §6.
const ServerMaxSolutionsCap = 50
