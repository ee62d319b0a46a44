package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todocal/internal/config"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/query"
	"github.com/sandeepkv93/todocal/internal/scheduler"
	"github.com/sandeepkv93/todocal/internal/storage"
	"github.com/sandeepkv93/todocal/internal/store"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newTestModel(t *testing.T, engine *scheduler.Engine) (Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)}
	s, err := store.New(storage.NewMemoryRepository(), store.Options{
		NewID: store.CounterIDs("t"),
		Now:   clock.Now,
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	c, err := coordinator.New(s, coordinator.Options{Now: clock.Now})
	if err != nil {
		t.Fatalf("new coordinator: %v", err)
	}
	m := NewModel(context.Background(), Deps{
		Coordinator: c,
		Scheduler:   engine,
		Keys:        config.Default().Keys,
		Now:         clock.Now,
		Wall:        clock.Now,
	})
	return m, clock
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t, nil)
	snap := m.Snapshot()
	if snap.State.View != coordinator.ViewCalendar || snap.State.Tab != coordinator.TabToday {
		t.Fatalf("unexpected default state: %#v", snap.State)
	}
	if m.Selected != model.NewDate(2025, time.June, 11) {
		t.Fatalf("expected today selected, got %s", m.Selected)
	}
	if len(snap.Grid.Cells) != 35 {
		t.Fatalf("expected June 2025 grid of 35 cells, got %d", len(snap.Grid.Cells))
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next := press(m, SetStatusMsg{Text: "ready"})
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	next = press(next, AppErrorMsg{Err: errors.New("boom")})
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	next = press(next, ClearStatusMsg{})
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestAddFormCreatesTodo(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(m, runes("a"))
	if m.Snapshot().State.Modal != coordinator.ModalAdd {
		t.Fatalf("expected add modal, got %q", m.Snapshot().State.Modal)
	}
	m = press(m, runes("Buy milk"), tab, runes("2 litres"), tab, runes("2025-06-11"), tab, runes("home"), enter)

	snap := m.Snapshot()
	if snap.State.Modal != coordinator.ModalNone {
		t.Fatalf("expected add modal closed, got %q", snap.State.Modal)
	}
	if len(snap.All) != 1 {
		t.Fatalf("expected one todo, got %d", len(snap.All))
	}
	got := snap.All[0]
	if got.Title != "Buy milk" || got.Description != "2 litres" || got.DueDate != model.NewDate(2025, time.June, 11) {
		t.Fatalf("unexpected todo: %#v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "home" {
		t.Fatalf("unexpected tags: %#v", got.Tags)
	}
	if len(snap.TodayItems) != 1 {
		t.Fatalf("expected the todo in the today tab, got %d", len(snap.TodayItems))
	}
	if m.Status.Text != "added: Buy milk" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestAddFormRejectsBlankTitle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(m, runes("a"), runes("   "), enter)

	if m.Snapshot().State.Modal != coordinator.ModalAdd {
		t.Fatalf("expected add modal to stay open, got %q", m.Snapshot().State.Modal)
	}
	if !m.Status.IsError || m.form.err == "" {
		t.Fatalf("expected validation error, got %+v", m.Status)
	}
	if len(m.Snapshot().All) != 0 {
		t.Fatalf("blank title must not create a todo")
	}

	m = press(m, esc)
	if m.Snapshot().State.Modal != coordinator.ModalNone {
		t.Fatalf("esc should close the add modal, got %q", m.Snapshot().State.Modal)
	}
}

func TestFormTagSuggestionSkipsDuplicates(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(m, runes("a"), tab, tab, tab, runes("work"))
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if got := m.form.inputs[fieldTags].Value(); got != "work, personal" {
		t.Fatalf("unexpected tags after suggestion: %q", got)
	}
}

func TestListViewToggleAndDelete(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = m.RunCommand("add Pay rent due:2025-06-10")
	m = m.RunCommand("add Call mom")
	m = press(m, runes("L"))
	snap := m.Snapshot()
	if snap.State.View != coordinator.ViewList || len(snap.List) != 2 {
		t.Fatalf("expected list view with two rows, got %q and %d", snap.State.View, len(snap.List))
	}
	if snap.List[1].Status != model.StatusOverdue {
		t.Fatalf("expected Pay rent overdue, got %q", snap.List[1].Status)
	}

	m = press(m, runes("j"), space)
	if !m.Snapshot().List[1].Todo.Completed {
		t.Fatalf("expected second row completed")
	}
	if m.Snapshot().Stats.Completed != 1 {
		t.Fatalf("expected stats to follow the toggle, got %+v", m.Snapshot().Stats)
	}

	m = press(m, runes("d"))
	if m.Snapshot().State.Modal != coordinator.ModalConfirmDelete {
		t.Fatalf("expected confirmation, got %q", m.Snapshot().State.Modal)
	}
	m = press(m, runes("n"))
	if len(m.Snapshot().List) != 2 || m.Snapshot().State.Modal != coordinator.ModalNone {
		t.Fatalf("cancel must keep the todo")
	}
	m = press(m, runes("d"), runes("y"))
	if len(m.Snapshot().List) != 1 || m.Snapshot().List[0].Todo.Title != "Call mom" {
		t.Fatalf("unexpected list after delete: %#v", m.Snapshot().List)
	}
}

func TestFilterKeyCycles(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = m.RunCommand("add Pay rent")
	m = press(m, runes("L"), runes("f"))
	if m.Snapshot().State.Filter != query.FilterPending {
		t.Fatalf("expected pending filter, got %q", m.Snapshot().State.Filter)
	}
	m = press(m, runes("f"))
	if m.Snapshot().State.Filter != query.FilterCompleted || len(m.Snapshot().List) != 0 {
		t.Fatalf("expected completed filter with no rows, got %q", m.Snapshot().State.Filter)
	}
	if !strings.Contains(m.View(), "no todos match this filter") {
		t.Fatalf("expected empty list message in view")
	}
}

func TestDetailEditFlow(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = m.RunCommand("add Pay rent due:today tags:home")
	m = press(m, runes("L"), enter)
	if m.Snapshot().State.Modal != coordinator.ModalDetail || !m.Snapshot().HasDetail {
		t.Fatalf("expected detail modal, got %q", m.Snapshot().State.Modal)
	}
	if !strings.Contains(m.View(), "(due today)") {
		t.Fatalf("detail should mark the due date as today")
	}

	m = press(m, runes("e"))
	if m.Snapshot().State.Modal != coordinator.ModalEdit {
		t.Fatalf("expected edit modal, got %q", m.Snapshot().State.Modal)
	}
	if got := m.form.value(); got.Title != "Pay rent" || got.DueDate != "2025-06-11" || got.TagsRaw != "home" {
		t.Fatalf("edit form not prefilled: %#v", got)
	}

	m = press(m, runes(" now"), enter)
	snap := m.Snapshot()
	if snap.State.Modal != coordinator.ModalDetail || snap.Detail.Title != "Pay rent now" {
		t.Fatalf("expected detail of updated todo, got %q %q", snap.State.Modal, snap.Detail.Title)
	}

	m = press(m, esc)
	if m.Snapshot().State.Modal != coordinator.ModalNone || m.Snapshot().HasDetail {
		t.Fatalf("esc should close the detail modal")
	}
}

func TestCalendarNavigationAndDayModal(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = m.RunCommand("add Dentist due:2025-06-12")

	m = press(m, runes("l"), enter)
	snap := m.Snapshot()
	if snap.State.FocusedDate != model.NewDate(2025, time.June, 12) || len(snap.Day) != 1 {
		t.Fatalf("expected day modal for Jun 12 with one todo, got %s and %d", snap.State.FocusedDate, len(snap.Day))
	}

	m = press(m, runes("a"))
	snap = m.Snapshot()
	if snap.State.DayOpen() || snap.State.Modal != coordinator.ModalAdd {
		t.Fatalf("expected add modal replacing the day modal")
	}
	if got := m.form.inputs[fieldDue].Value(); got != "2025-06-12" {
		t.Fatalf("expected due prefill, got %q", got)
	}
	m = press(m, esc)

	m = press(m, runes("]"))
	if got := m.Snapshot().State.Cursor; got != (model.Month{Year: 2025, Month: time.July}) {
		t.Fatalf("expected July cursor, got %s", got)
	}
	if m.Selected != model.NewDate(2025, time.July, 12) {
		t.Fatalf("selection should follow the month, got %s", m.Selected)
	}

	m = press(m, runes("T"))
	if m.Snapshot().State.Cursor.Month != time.June || m.Selected != model.NewDate(2025, time.June, 11) {
		t.Fatalf("expected jump back to today, got %s %s", m.Snapshot().State.Cursor, m.Selected)
	}

	for range 20 {
		m = press(m, runes("l"))
	}
	if m.Snapshot().State.Cursor.Month != time.July {
		t.Fatalf("moving past month end should advance the cursor, got %s", m.Snapshot().State.Cursor)
	}
}

func TestPaletteCommands(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(m, runes(":"))
	if !m.Palette.Active {
		t.Fatalf("expected palette active")
	}
	m = press(m, runes("view list"), enter)
	if m.Palette.Active || m.Snapshot().State.View != coordinator.ViewList {
		t.Fatalf("expected list view after command, got %q", m.Snapshot().State.View)
	}

	m = press(m, runes(":"), runes("frobnicate"), enter)
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}

	m = m.RunCommand("day 2025-08-03")
	snap := m.Snapshot()
	if snap.State.FocusedDate != model.NewDate(2025, time.August, 3) || snap.State.Cursor.Month != time.August {
		t.Fatalf("day command should open the day and move the cursor, got %s %s", snap.State.FocusedDate, snap.State.Cursor)
	}
}

func TestRolloverAlarmReclassifies(t *testing.T) {
	m, clock := newTestModel(t, nil)
	m = m.RunCommand("add Pay rent due:today")
	if len(m.Snapshot().TodayItems) != 1 {
		t.Fatalf("expected one todo due today")
	}

	clock.now = time.Date(2025, time.June, 12, 0, 0, 1, 0, time.UTC)
	m = press(m, AlarmMsg{Alarm: scheduler.RolloverAlarm(time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC))})

	snap := m.Snapshot()
	if snap.Today != model.NewDate(2025, time.June, 12) {
		t.Fatalf("expected today to advance, got %s", snap.Today)
	}
	if len(snap.TodayItems) != 0 || snap.List[0].Status != model.StatusOverdue {
		t.Fatalf("expected Pay rent overdue after rollover")
	}
	if m.Selected != snap.Today {
		t.Fatalf("selection should follow today, got %s", m.Selected)
	}
}

func TestInitSchedulesRollover(t *testing.T) {
	engine := scheduler.NewEngine(1)
	defer engine.Stop()
	m, _ := newTestModel(t, engine)
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected alarm wait command")
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending rollover alarm, got %d", engine.Pending())
	}
}

func TestPinnedClockDoesNotRearmPastRollover(t *testing.T) {
	engine := scheduler.NewEngine(1)
	defer engine.Stop()
	m, _ := newTestModel(t, engine)
	// The date stays pinned to Jun 11 while real time is days later.
	m.wall = func() time.Time { return time.Date(2025, time.June, 20, 8, 0, 0, 0, time.UTC) }

	if cmd := m.Init(); cmd != nil {
		t.Fatalf("expected no alarm wait when midnight already passed")
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected no pending alarm, got %d", engine.Pending())
	}

	updated, cmd := m.Update(AlarmMsg{Alarm: scheduler.RolloverAlarm(m.now())})
	if cmd != nil {
		t.Fatalf("a past rollover must not wait for another alarm")
	}
	if engine.Pending() != 0 {
		t.Fatalf("rollover re-armed a past alarm, %d pending", engine.Pending())
	}
	if updated.(Model).Snapshot().Today != model.NewDate(2025, time.June, 11) {
		t.Fatalf("pinned date must not move")
	}
}

func TestRolloverRearmsForNextMidnight(t *testing.T) {
	engine := scheduler.NewEngine(1)
	defer engine.Stop()
	m, clock := newTestModel(t, engine)

	clock.now = time.Date(2025, time.June, 12, 0, 0, 1, 0, time.UTC)
	_, cmd := m.Update(AlarmMsg{Alarm: scheduler.RolloverAlarm(time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC))})
	if cmd == nil {
		t.Fatalf("expected to keep waiting for alarms")
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected the next midnight armed, got %d pending", engine.Pending())
	}
}

func TestViewRendersHeaderAndCounts(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = m.RunCommand("add Pay rent")
	out := m.View()
	for _, want := range []string{"todocal", "June 2025", "total 1 | pending 1 | completed 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}

	m = press(m, runes("?"))
	if !strings.Contains(m.View(), "help (calendar view)") {
		t.Fatalf("expected help panel")
	}

	m = press(m, runes("q"))
	if !m.Quitting {
		t.Fatalf("expected quit")
	}
}
