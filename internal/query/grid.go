package query

import (
	"slices"

	"github.com/sandeepkv93/todocal/internal/model"
)

// MaxVisiblePerDay caps how many todos a calendar cell lists before it
// reports the rest as overflow.
const MaxVisiblePerDay = 3

// Cell and item classes, as consumed by the renderer.
const (
	ClassCalendarDay = "calendar-day"
	ClassOtherMonth  = "other-month"
	ClassToday       = "today"
	ClassHasTodos    = "has-todos"
	ClassHasOverdue  = "has-overdue"

	ClassCompleted = "completed"
	ClassOverdue   = "overdue"
)

type GridItem struct {
	Item
	Classes []string
}

type Cell struct {
	Date    model.Date
	InMonth bool
	IsToday bool
	// Todos holds every todo due on Date in collection order.
	Todos    []model.Todo
	Visible  []GridItem
	Overflow int
	Classes  []string
}

// HasOverdue reports whether any todo due that day classifies as overdue,
// including ones past the visible cap.
func (c Cell) HasOverdue() bool {
	return slices.Contains(c.Classes, ClassHasOverdue)
}

// Grid is a month laid out in whole Sunday..Saturday weeks.
type Grid struct {
	Month model.Month
	Today model.Date
	Cells []Cell
}

func (g Grid) Start() model.Date {
	if len(g.Cells) == 0 {
		return model.Date{}
	}
	return g.Cells[0].Date
}

func (g Grid) End() model.Date {
	if len(g.Cells) == 0 {
		return model.Date{}
	}
	return g.Cells[len(g.Cells)-1].Date
}

func (g Grid) Weeks() [][]Cell {
	out := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		out = append(out, g.Cells[i:i+7])
	}
	return out
}

// Cell returns the cell for date, if the grid spans it.
func (g Grid) Cell(date model.Date) (Cell, bool) {
	if len(g.Cells) == 0 || date.Before(g.Start()) || date.After(g.End()) {
		return Cell{}, false
	}
	offset := int(date.Time().Sub(g.Start().Time()).Hours() / 24)
	return g.Cells[offset], true
}

// BuildMonthGrid materializes every cell from the Sunday on or before the
// first of month to the Saturday on or after its last day. Items carry the
// overdue and completed classes; a cell additionally carries has-overdue
// when any todo due that day is overdue, counting completed todos and those
// hidden past MaxVisiblePerDay.
func BuildMonthGrid(month model.Month, todos []model.Todo, today model.Date) Grid {
	first, last := month.First(), month.Last()
	start, _ := WeekRange(first)
	_, end := WeekRange(last)

	byDate := make(map[model.Date][]model.Todo)
	for _, t := range todos {
		if t.HasDueDate() && !t.DueDate.Before(start) && !t.DueDate.After(end) {
			byDate[t.DueDate] = append(byDate[t.DueDate], t)
		}
	}

	g := Grid{Month: month, Today: today}
	for d := start; !d.After(end); d = d.AddDays(1) {
		g.Cells = append(g.Cells, buildCell(d, month, byDate[d], today))
	}
	return g
}

func buildCell(d model.Date, month model.Month, due []model.Todo, today model.Date) Cell {
	c := Cell{
		Date:    d,
		InMonth: month.Contains(d),
		IsToday: d == today,
		Todos:   due,
		Classes: []string{ClassCalendarDay},
	}
	if c.Todos == nil {
		c.Todos = []model.Todo{}
	}
	if !c.InMonth {
		c.Classes = append(c.Classes, ClassOtherMonth)
	}
	if c.IsToday {
		c.Classes = append(c.Classes, ClassToday)
	}
	if len(c.Todos) == 0 {
		c.Visible = []GridItem{}
		return c
	}
	c.Classes = append(c.Classes, ClassHasTodos)

	overdue := false
	c.Visible = make([]GridItem, 0, min(len(c.Todos), MaxVisiblePerDay))
	for i, t := range c.Todos {
		status := t.Status(today)
		if status == model.StatusOverdue {
			overdue = true
		}
		if i >= MaxVisiblePerDay {
			continue
		}
		c.Visible = append(c.Visible, GridItem{
			Item:    Item{Todo: t, Status: status},
			Classes: itemClasses(t, status),
		})
	}
	c.Overflow = len(c.Todos) - len(c.Visible)
	if overdue {
		c.Classes = append(c.Classes, ClassHasOverdue)
	}
	return c
}

func itemClasses(t model.Todo, status model.Status) []string {
	out := make([]string, 0, 2)
	if t.Completed {
		out = append(out, ClassCompleted)
	}
	if status == model.StatusOverdue {
		out = append(out, ClassOverdue)
	}
	return out
}
