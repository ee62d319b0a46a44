package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todocal/internal/commands"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/views"
)

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.info("command palette active")
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.info("command palette closed")
		return m, nil
	case "enter":
		raw := m.commandInput.Value()
		m.closePalette()
		return m.RunCommand(raw), nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

// RunCommand parses and executes one palette line, reporting the outcome in
// the status bar.
func (m Model) RunCommand(raw string) Model {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.fail(err)
		return m
	}
	res, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		m.fail(err)
		return m
	}
	m.info(res.Message)
	return m
}

// commandHandlers binds the palette grammar to coordinator transitions. The
// handlers write through m, so RunCommand sees their refreshes.
func (m *Model) commandHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			todo, d, err := m.coord.Create(m.ctx, a.Form(m.coord.Today()))
			if err != nil {
				return commands.Result{}, err
			}
			m.refresh(d)
			return commands.Result{Message: "added: " + todo.Title}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.refresh(m.coord.SetFilter(string(a.Filter)))
			return commands.Result{Message: "filter: " + string(m.coord.State().Filter)}, nil
		},
		View: func(a commands.ViewArgs) (commands.Result, error) {
			v, ok := coordinator.ParseView(a.View)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view %q", a.View)}
			}
			m.refresh(m.coord.SetView(v))
			return commands.Result{Message: "view: " + string(v)}, nil
		},
		Tab: func(a commands.TabArgs) (commands.Result, error) {
			t, ok := coordinator.ParseTab(a.Tab)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown tab %q", a.Tab)}
			}
			m.refresh(m.coord.SetTab(t))
			return commands.Result{Message: "tab: " + string(t)}, nil
		},
		Month: func(a commands.MonthArgs) (commands.Result, error) {
			switch {
			case a.Today:
				m.refresh(m.coord.GotoToday())
			case !a.Month.IsZero():
				m.refresh(m.coord.GotoMonth(a.Month))
			default:
				m.refresh(m.coord.NavigateMonth(a.Delta))
			}
			cursor := m.coord.State().Cursor
			m.Selected = sameDayIn(m.Selected, cursor)
			return commands.Result{Message: "month: " + cursor.Title()}, nil
		},
		Day: func(a commands.DayArgs) (commands.Result, error) {
			date := a.Date.Resolve(m.coord.Today())
			if !m.coord.State().Cursor.Contains(date) {
				m.refresh(m.coord.GotoMonth(model.MonthOf(date)))
			}
			m.Selected = date
			m.DayCursor = 0
			m.refresh(m.coord.OpenDay(date))
			return commands.Result{Message: "day: " + date.String()}, nil
		},
	}
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, strings.TrimSpace(m.commandInput.View()))
}
