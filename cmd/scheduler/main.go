package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"tum-scheduler/internal/config"
	"tum-scheduler/internal/domain"
	"tum-scheduler/internal/engine"
	"tum-scheduler/internal/logging"
	"tum-scheduler/internal/mip"
	"tum-scheduler/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	semester := flag.String("semester", "", "semester to optimize for")
	curriculum := flag.String("curriculum", "", "curriculum code")
	numSchedules := flag.Int("n", 1, "number of distinct schedules to return")
	reportPath := flag.String("out", "schedule_report.json", "where to write the detailed JSON report")
	flag.Parse()

	fmt.Println("[1/4] loading configuration...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: loading configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("fatal: building logger: %v", err)
	}
	defer logger.Sync()

	fmt.Println("[2/4] connecting to the lecture row store...")
	rows, err := openStore(cfg)
	if err != nil {
		log.Fatalf("fatal: opening store: %v", err)
	}

	e := engine.New(rows, func() mip.Problem { return mip.NewGolpProblem() }, logger)

	fmt.Println("[3/4] running the optimizer...")
	req := engine.Request{
		Semester:     *semester,
		Curriculum:   *curriculum,
		NumSchedules: *numSchedules,
		Objective:    domain.MaxEcts,
	}

	schedules, err := e.Optimize(context.Background(), req)
	if err != nil {
		log.Fatalf("fatal: optimize: %v", err)
	}

	printScheduleReport(schedules)

	fmt.Printf("[4/4] writing detailed report to %q...\n", *reportPath)
	if err := exportSchedulesJSON(schedules, *reportPath); err != nil {
		fmt.Printf("error: could not export JSON report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("done.")
}

func openStore(cfg config.Config) (store.LectureRowReader, error) {
	if cfg.CSVFixturePath != "" {
		return store.LoadCSVStore(cfg.CSVFixturePath)
	}
	return nil, fmt.Errorf("no store configured: set csv_fixture_path (this CLI does not open a database store from store_dsn)")
}

func printScheduleReport(schedules []domain.Schedule) {
	fmt.Println("--------------------------------------------------------------------------------")
	if len(schedules) == 0 {
		fmt.Println("no schedule satisfies the given constraints")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Schedule\t| ECTS\t| Courses\t| Weekdays used")
	fmt.Fprintln(w, "--------\t| ----\t| -------\t| -------------")
	for i, sched := range schedules {
		fmt.Fprintf(w, "#%d\t| %.1f\t| %d\t| %s\n", i+1, sched.TotalECTS, len(sched.CourseSelections), weekdaysString(sched.WeekdaysUsed()))
	}
	w.Flush()
	fmt.Println("--------------------------------------------------------------------------------")
}

func weekdaysString(ds []domain.Weekday) string {
	out := ""
	for i, d := range ds {
		if i > 0 {
			out += ","
		}
		out += string(d)
	}
	return out
}

// exportSchedulesJSON writes every returned schedule, grouped by subject,
// to a JSON report a student can inspect alongside the console summary.
func exportSchedulesJSON(schedules []domain.Schedule, path string) error {
	type appointmentDetail struct {
		Weekday    string `json:"weekday"`
		From       string `json:"from"`
		To         string `json:"to"`
		CourseType string `json:"course_type"`
	}

	type courseDetail struct {
		Subject      string              `json:"subject"`
		Name         string              `json:"name"`
		Faculty      string              `json:"faculty"`
		ECTS         float64             `json:"ects"`
		Appointments []appointmentDetail `json:"appointments"`
	}

	type scheduleDetail struct {
		Index     int            `json:"index"`
		TotalECTS float64        `json:"total_ects"`
		Objective float64        `json:"objective_value"`
		Courses   []courseDetail `json:"courses"`
	}

	type report struct {
		Schedules []scheduleDetail `json:"schedules"`
	}

	var out report
	for i, sched := range schedules {
		courses := make([]courseDetail, 0, len(sched.CourseSelections))
		for _, sel := range sched.CourseSelections {
			apps := make([]appointmentDetail, 0, len(sel.Appointments))
			for _, a := range sel.Appointments {
				apps = append(apps, appointmentDetail{
					Weekday:    string(a.Weekday),
					From:       a.From.String(),
					To:         a.To.String(),
					CourseType: string(a.CourseType),
				})
			}
			courses = append(courses, courseDetail{
				Subject:      sel.Subject,
				Name:         sel.NameEN,
				Faculty:      sel.Faculty,
				ECTS:         sel.ECTS,
				Appointments: apps,
			})
		}
		sort.Slice(courses, func(i, j int) bool { return courses[i].Subject < courses[j].Subject })
		out.Schedules = append(out.Schedules, scheduleDetail{
			Index:     i,
			TotalECTS: sched.TotalECTS,
			Objective: sched.ObjectiveValue,
			Courses:   courses,
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
