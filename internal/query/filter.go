// Package query derives list, day, week and calendar subsets from the todo
// collection. Every function is pure and takes today as an argument.
package query

import (
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/todocal/internal/model"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterPending, FilterCompleted:
		return true
	default:
		return false
	}
}

// ParseFilter normalizes user input. Unknown values, including the retired
// "today" and "overdue" quick filters, become FilterAll.
func ParseFilter(raw string) Filter {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return FilterAll
	}
	return f
}

func FilterByStatus(todos []model.Todo, f Filter) []model.Todo {
	switch ParseFilter(string(f)) {
	case FilterPending:
		return keep(todos, func(t model.Todo) bool { return !t.Completed })
	case FilterCompleted:
		return keep(todos, func(t model.Todo) bool { return t.Completed })
	default:
		return keep(todos, func(model.Todo) bool { return true })
	}
}

// OnDate returns todos due exactly on date, in collection order.
func OnDate(todos []model.Todo, date model.Date) []model.Todo {
	if date.IsZero() {
		return []model.Todo{}
	}
	return keep(todos, func(t model.Todo) bool { return t.DueDate == date })
}

func Today(todos []model.Todo, today model.Date) []model.Todo {
	return OnDate(todos, today)
}

// WeekRange returns the Sunday and Saturday of the week holding ref.
func WeekRange(ref model.Date) (model.Date, model.Date) {
	start := ref.AddDays(-int(ref.Weekday()))
	return start, start.AddDays(6)
}

// InWeek returns todos due in the Sunday..Saturday week of ref, ordered by
// due date with collection order breaking ties.
func InWeek(todos []model.Todo, ref model.Date) []model.Todo {
	start, end := WeekRange(ref)
	out := keep(todos, func(t model.Todo) bool {
		return t.HasDueDate() && !t.DueDate.Before(start) && !t.DueDate.After(end)
	})
	slices.SortStableFunc(out, func(a, b model.Todo) int {
		return a.DueDate.Compare(b.DueDate)
	})
	return out
}

// WeekDays returns the seven dates of the week holding ref.
func WeekDays(ref model.Date) []model.Date {
	start, _ := WeekRange(ref)
	out := make([]model.Date, 0, 7)
	for i := range 7 {
		out = append(out, start.AddDays(i))
	}
	return out
}

type Counts struct {
	Total     int
	Completed int
	Pending   int
}

func Stats(todos []model.Todo) Counts {
	var c Counts
	for _, t := range todos {
		c.Total++
		if t.Completed {
			c.Completed++
		}
	}
	c.Pending = c.Total - c.Completed
	return c
}

// Item pairs a todo with its classification for one value of today.
type Item struct {
	Todo   model.Todo
	Status model.Status
}

func Classified(todos []model.Todo, today model.Date) []Item {
	out := make([]Item, 0, len(todos))
	for _, t := range todos {
		out = append(out, Item{Todo: t, Status: t.Status(today)})
	}
	return out
}

// IsWeekend reports whether d is a Saturday or Sunday.
func IsWeekend(d model.Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func keep(todos []model.Todo, pred func(model.Todo) bool) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
