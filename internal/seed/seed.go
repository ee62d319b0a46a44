// Package seed generates deterministic sample todos for demos.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sandeepkv93/todocal/internal/model"
)

// TasksPerWeek is how many distinct sample tasks land in each week.
const TasksPerWeek = 6

// CompletedRatio is the share of samples created already completed.
const CompletedRatio = 0.3

type task struct {
	title       string
	description string
	tags        []string
}

var catalog = []task{
	{"Weekly meeting", "Team status report and plan for the week", []string{"work", "meeting"}},
	{"Write report", "Project progress report", []string{"work", "important"}},
	{"Work out", "One hour at the gym", []string{"health", "personal"}},
	{"Study English", "30 minutes of conversation practice", []string{"learning", "growth"}},
	{"Buy groceries", "Weekly grocery run", []string{"shopping", "personal"}},
	{"Read", "Start the new book", []string{"hobby", "growth"}},
	{"Book doctor", "Schedule the yearly checkup", []string{"health", "important"}},
	{"Clean house", "Weekend deep clean", []string{"personal", "home"}},
	{"Meet friends", "Dinner with friends", []string{"personal", "plans"}},
	{"Practice coding", "Solve two algorithm problems", []string{"learning", "growth"}},
	{"Yoga class", "Attend the evening yoga class", []string{"health", "hobby"}},
	{"Project kickoff", "Planning meeting for the new project", []string{"work", "meeting"}},
	{"Write blog post", "Weekly blog entry", []string{"hobby", "growth"}},
	{"Online course", "Next module of the course", []string{"learning", "growth"}},
	{"Dentist", "Regular dental checkup", []string{"health", "important"}},
	{"Market research", "Collect notes on market trends", []string{"work", "learning"}},
	{"Family dinner", "Weekend dinner with family", []string{"personal", "plans"}},
	{"Meditate", "20 minutes to start the day", []string{"health", "hobby"}},
	{"Budget review", "Monthly budget plan", []string{"personal", "important"}},
	{"Listen to music", "Put on a favourite album", []string{"hobby", "personal"}},
}

// Sample is one generated todo.
type Sample struct {
	Input     model.Input
	Completed bool
}

// Mondays returns every Monday from the Monday of first's Sunday-start week
// through last.
func Mondays(first, last model.Date) []model.Date {
	d := first.AddDays(-int(first.Weekday()) + 1)
	out := make([]model.Date, 0)
	for ; !d.After(last); d = d.AddDays(7) {
		out = append(out, d)
	}
	return out
}

// Generate lays out samples over start and the following month. Each
// Monday-start week gets TasksPerWeek distinct tasks on Monday..Saturday.
// The result is ordered by due date. The same seed always yields the same
// samples.
func Generate(start model.Month, seed int64) []Sample {
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	out := make([]Sample, 0)
	for _, monday := range Mondays(start.First(), start.Add(1).Last()) {
		picks := r.Perm(len(catalog))[:TasksPerWeek]
		for _, i := range picks {
			t := catalog[i]
			out = append(out, Sample{
				Input: model.Input{
					Title:       t.title,
					Description: t.description,
					DueDate:     monday.AddDays(r.IntN(6)),
					Tags:        slices.Clone(t.tags),
				},
				Completed: r.Float64() < CompletedRatio,
			})
		}
	}
	slices.SortStableFunc(out, func(a, b Sample) int {
		return a.Input.DueDate.Compare(b.Input.DueDate)
	})
	return out
}

// Writer is the part of the store seeding needs.
type Writer interface {
	Create(ctx context.Context, in model.Input) (model.Todo, error)
	ToggleCompleted(ctx context.Context, id string) (model.Todo, error)
}

// Apply creates samples so the newest-first list reads in due-date order:
// the last sample is inserted first.
func Apply(ctx context.Context, w Writer, samples []Sample) error {
	for i := len(samples) - 1; i >= 0; i-- {
		s := samples[i]
		todo, err := w.Create(ctx, s.Input)
		if err != nil {
			return fmt.Errorf("seed %q: %w", s.Input.Title, err)
		}
		if s.Completed {
			if _, err := w.ToggleCompleted(ctx, todo.ID); err != nil {
				return fmt.Errorf("seed %q: %w", s.Input.Title, err)
			}
		}
	}
	return nil
}
