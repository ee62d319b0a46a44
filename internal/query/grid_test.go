package query

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/sandeepkv93/todocal/internal/model"
)

func TestGridIsWholeWeeksForEveryMonth(t *testing.T) {
	for year := 2023; year <= 2027; year++ {
		for m := time.January; m <= time.December; m++ {
			month := model.Month{Year: year, Month: m}
			g := BuildMonthGrid(month, nil, today)
			if len(g.Cells)%7 != 0 {
				t.Fatalf("%s: %d cells", month, len(g.Cells))
			}
			if g.Start().Weekday() != time.Sunday || g.End().Weekday() != time.Saturday {
				t.Fatalf("%s: grid spans %s..%s", month, g.Start(), g.End())
			}
			for i := 1; i < len(g.Cells); i++ {
				if g.Cells[i].Date != g.Cells[i-1].Date.AddDays(1) {
					t.Fatalf("%s: dates not consecutive at %d", month, i)
				}
			}
			if !g.Cells[0].Date.After(month.First()) && g.Cells[6].Date.Before(month.First()) {
				t.Fatalf("%s: first week does not contain the 1st", month)
			}
			inMonth := 0
			for _, c := range g.Cells {
				if c.InMonth {
					inMonth++
				}
			}
			if inMonth != month.Last().Day {
				t.Fatalf("%s: %d in-month cells, want %d", month, inMonth, month.Last().Day)
			}
		}
	}
}

func TestGridLengths(t *testing.T) {
	cases := []struct {
		month model.Month
		cells int
	}{
		{model.Month{Year: 2015, Month: time.February}, 28},
		{model.Month{Year: 2025, Month: time.June}, 35},
		{model.Month{Year: 2025, Month: time.August}, 42},
	}
	for _, tc := range cases {
		if got := len(BuildMonthGrid(tc.month, nil, today).Cells); got != tc.cells {
			t.Fatalf("%s: %d cells, want %d", tc.month, got, tc.cells)
		}
	}
}

func TestGridCellsCapVisibleAndCountOverflow(t *testing.T) {
	todos := make([]model.Todo, 0, 5)
	for i := range 5 {
		todos = append(todos, todo(fmt.Sprintf("t%d", i), today, i == 0))
	}
	g := BuildMonthGrid(model.MonthOf(today), todos, today)
	c, ok := g.Cell(today)
	if !ok {
		t.Fatalf("today missing from grid")
	}
	if len(c.Todos) != 5 || len(c.Visible) != MaxVisiblePerDay || c.Overflow != 2 {
		t.Fatalf("unexpected cell: todos=%d visible=%d overflow=%d", len(c.Todos), len(c.Visible), c.Overflow)
	}
	if c.Visible[0].Todo.ID != "t0" || !slices.Contains(c.Visible[0].Classes, ClassCompleted) {
		t.Fatalf("first visible item should be completed t0: %#v", c.Visible[0])
	}
	if !c.IsToday || !slices.Contains(c.Classes, ClassToday) || !slices.Contains(c.Classes, ClassHasTodos) {
		t.Fatalf("unexpected classes: %v", c.Classes)
	}
	if c.HasOverdue() {
		t.Fatalf("todos due today are not overdue")
	}
}

func TestGridCellClasses(t *testing.T) {
	yesterday := today.AddDays(-1)
	todos := []model.Todo{
		todo("over", yesterday, false),
		todo("future", today.AddDays(2), false),
	}
	g := BuildMonthGrid(model.MonthOf(today), todos, today)

	c, _ := g.Cell(yesterday)
	if !c.HasOverdue() || !slices.Contains(c.Visible[0].Classes, ClassOverdue) {
		t.Fatalf("yesterday cell should be overdue: %#v", c)
	}
	c, _ = g.Cell(today.AddDays(2))
	if c.HasOverdue() || len(c.Visible[0].Classes) != 0 {
		t.Fatalf("future cell must carry no status classes: %#v", c)
	}
	july := BuildMonthGrid(model.Month{Year: 2025, Month: time.July}, todos, today)
	c, _ = july.Cell(july.Start())
	if c.Date != model.NewDate(2025, time.June, 29) || c.InMonth || !slices.Contains(c.Classes, ClassOtherMonth) {
		t.Fatalf("leading cell should be other-month: %#v", c)
	}
	if len(c.Visible) != 0 || c.Overflow != 0 {
		t.Fatalf("empty cell should have nothing visible")
	}
}

func TestGridWeeksAndLookup(t *testing.T) {
	g := BuildMonthGrid(model.MonthOf(today), nil, today)
	weeks := g.Weeks()
	if len(weeks)*7 != len(g.Cells) {
		t.Fatalf("weeks do not cover cells")
	}
	for _, w := range weeks {
		if len(w) != 7 || w[0].Date.Weekday() != time.Sunday {
			t.Fatalf("bad week: %v", w)
		}
	}
	if _, ok := g.Cell(g.End().AddDays(1)); ok {
		t.Fatalf("lookup past the grid must fail")
	}
	c, ok := g.Cell(g.End())
	if !ok || c.Date != g.End() {
		t.Fatalf("lookup of last cell returned %#v", c)
	}
}
