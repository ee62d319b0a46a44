package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// PlainTodoTable renders rows for non-interactive output.
func PlainTodoTable(rows []TodoRowData) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "TITLE", "DUE", "STATUS", "TAGS")
	for _, r := range rows {
		done := " "
		if r.Completed {
			done = "x"
		}
		t.Row(done, r.Title, r.Due, r.Status, strings.Join(r.Tags, ","))
	}
	return t.Render()
}

// PlainCalendar renders a month grid as a bordered table. Each cell shows
// the day number, the visible todo titles and the overflow count.
func PlainCalendar(data CalendarData) string {
	width := data.CellWidth
	if width <= 0 {
		width = 12
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(weekdayHeader...)
	for _, week := range data.Weeks {
		row := make([]string, 0, len(week))
		for _, c := range week {
			row = append(row, plainCell(c, width))
		}
		t.Row(row...)
	}
	return data.Title + "\n" + t.Render()
}

func plainCell(c CellData, width int) string {
	day := fmt.Sprintf("%2d", c.Day)
	if slices.Contains(c.Classes, ClassOtherMonth) {
		day = "(" + strings.TrimSpace(day) + ")"
	}
	if slices.Contains(c.Classes, ClassToday) {
		day += "*"
	}
	if slices.Contains(c.Classes, ClassHasOverdue) {
		day += "!"
	}
	lines := []string{day}
	for _, it := range c.Items {
		mark := "-"
		if slices.Contains(it.Classes, ClassCompleted) {
			mark = "x"
		}
		lines = append(lines, mark+" "+Truncate(it.Title, width-2))
	}
	if c.Overflow > 0 {
		lines = append(lines, fmt.Sprintf("+%d more", c.Overflow))
	}
	return strings.Join(lines, "\n")
}
