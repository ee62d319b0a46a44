package update

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/model"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.PrevMonth):
		m.shiftMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.shiftMonth(1)
	case key.Matches(msg, m.keys.Today):
		m.refresh(m.coord.GotoToday())
		m.Selected = m.coord.Today()
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(7)
	case key.Matches(msg, m.keys.Open):
		m.DayCursor = 0
		m.refresh(m.coord.OpenDay(m.Selected))
	}
	return m
}

func (m *Model) shiftMonth(delta int) {
	m.refresh(m.coord.NavigateMonth(delta))
	m.Selected = sameDayIn(m.Selected, m.coord.State().Cursor)
}

// moveSelection steps the highlighted date, following it into the adjacent
// month when it leaves the grid's month.
func (m *Model) moveSelection(days int) {
	next := m.Selected.AddDays(days)
	cursor := m.coord.State().Cursor
	if !cursor.Contains(next) {
		m.refresh(m.coord.GotoMonth(model.MonthOf(next)))
	}
	m.Selected = next
}

// reselectToday follows the clock after a rollover when the highlight was
// on the previous day.
func (m *Model) reselectToday() {
	today := m.coord.Today()
	if m.Selected == today.AddDays(-1) && m.coord.State().View == coordinator.ViewCalendar {
		if !m.coord.State().Cursor.Contains(today) {
			m.refresh(m.coord.GotoMonth(model.MonthOf(today)))
		}
		m.Selected = today
	}
}
