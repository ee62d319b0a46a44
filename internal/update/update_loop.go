package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/scheduler"
	"github.com/sandeepkv93/todocal/internal/views"
)

// Init arms the day rollover alarm when a scheduler is attached.
func (m Model) Init() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	if !m.scheduleRollover() {
		return nil
	}
	return waitForAlarmCmd(m.engine.C())
}

// scheduleRollover arms the next midnight alarm. A pinned clock yields a
// midnight the wall clock has already passed; that alarm would fire at once
// and forever, so it is skipped.
func (m Model) scheduleRollover() bool {
	alarm := scheduler.RolloverAlarm(m.now())
	if !alarm.At.After(m.wall()) {
		m.logger.Debug("rollover not armed", "alarm", alarm.ID)
		return false
	}
	if err := m.engine.Schedule(alarm); err != nil {
		m.logger.Error("schedule rollover", "err", err)
		return false
	}
	return true
}

func waitForAlarmCmd(ch <-chan scheduler.Alarm) tea.Cmd {
	return func() tea.Msg {
		alarm, ok := <-ch
		if !ok {
			return nil
		}
		return AlarmMsg{Alarm: alarm}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.detailViewport.Width = max(typed.Width-12, 20)
		m.detailViewport.Height = max(typed.Height/3, 5)
		m.helpModel.Width = typed.Width
		m.syncBubbleData()
		return m, nil
	case AlarmMsg:
		if typed.Alarm.Kind == scheduler.KindRollover {
			m.logger.Info("day rollover", "alarm", typed.Alarm.ID)
			m.refresh(m.coord.Rollover())
			m.reselectToday()
			if m.engine == nil || !m.scheduleRollover() {
				return m, nil
			}
		}
		if m.engine != nil {
			return m, waitForAlarmCmd(m.engine.C())
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

// handleKey routes a key to the top-most layer: palette, then the open
// dialog, then global bindings, then the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	state := m.coord.State()
	switch state.Modal {
	case coordinator.ModalAdd, coordinator.ModalEdit:
		return m.handleFormKey(msg)
	case coordinator.ModalConfirmDelete:
		return m.handleConfirmKey(msg), nil
	case coordinator.ModalDetail:
		return m.handleDetailKey(msg)
	}
	if state.DayOpen() {
		return m.handleDayKey(msg), nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.keys.Palette):
		m.openPalette()
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.refresh(m.coord.OpenAdd(zeroDate))
		return m, nil
	case key.Matches(msg, m.keys.ListView):
		m.refresh(m.coord.SetView(coordinator.ViewList))
		return m, nil
	case key.Matches(msg, m.keys.CalendarView):
		m.refresh(m.coord.SetView(coordinator.ViewCalendar))
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		next := coordinator.TabWeek
		if state.Tab == coordinator.TabWeek {
			next = coordinator.TabToday
		}
		m.refresh(m.coord.SetTab(next))
		return m, nil
	}

	if state.View == coordinator.ViewList {
		return m.handleListKey(msg), nil
	}
	return m.handleCalendarKey(msg), nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y", "enter":
		d, err := m.coord.ConfirmDelete(m.ctx)
		if err != nil {
			m.fail(err)
			return m
		}
		m.refresh(d)
		m.info("deleted")
	case "n", "N", "esc":
		m.refresh(m.coord.CancelDelete())
	}
	return m
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.coord.State().FocusedID
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.refresh(m.coord.Escape())
	case key.Matches(msg, m.keys.Edit):
		d, err := m.coord.OpenEdit(m.ctx, id)
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.refresh(d)
	case key.Matches(msg, m.keys.Delete):
		m.refresh(m.coord.RequestDelete(id))
	case key.Matches(msg, m.keys.Toggle):
		m.toggle(id)
	default:
		var cmd tea.Cmd
		m.detailViewport, cmd = m.detailViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDayKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.refresh(m.coord.CloseDay())
	case key.Matches(msg, m.keys.Up):
		m.DayCursor = clamp(m.DayCursor-1, len(m.snap.Day))
	case key.Matches(msg, m.keys.Down):
		m.DayCursor = clamp(m.DayCursor+1, len(m.snap.Day))
	case key.Matches(msg, m.keys.Add):
		m.refresh(m.coord.AddForDate(m.snap.State.FocusedDate))
	case key.Matches(msg, m.keys.Open):
		if id, ok := m.dayTodoID(); ok {
			m.openDetail(id)
		}
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.dayTodoID(); ok {
			m.toggle(id)
		}
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.dayTodoID(); ok {
			m.refresh(m.coord.RequestDelete(id))
		}
	}
	return m
}

func (m Model) dayTodoID() (string, bool) {
	if len(m.snap.Day) == 0 {
		return "", false
	}
	return m.snap.Day[m.DayCursor].Todo.ID, true
}

func (m *Model) openDetail(id string) {
	d, err := m.coord.OpenDetail(m.ctx, id)
	if err != nil {
		m.fail(err)
		return
	}
	m.detailViewport.GotoTop()
	m.refresh(d)
}

func (m *Model) toggle(id string) {
	todo, d, err := m.coord.Toggle(m.ctx, id)
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh(d)
	if todo.Completed {
		m.info("completed: " + todo.Title)
	} else {
		m.info("reopened: " + todo.Title)
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	state := m.snap.State
	main := m.renderCalendar()
	if state.View == coordinator.ViewList {
		main = m.renderListPanel()
	}
	side := m.renderTabPanel()
	if p := m.renderCommandPalette(); p != "" {
		side += "\n\n" + p
	}
	if h := m.renderHelpIfVisible(); h != "" {
		side += "\n\n" + h
	}
	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("todocal | %s view | %s", state.View, state.Cursor.Title()),
		Counts:        m.renderCounts(),
		MainPane:      main,
		SidePane:      side,
		Overlay:       m.renderOverlay(),
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Footer:        m.helpModel.View(m.shortHelp()),
	})
}
