package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/query"
	"github.com/sandeepkv93/todocal/internal/views"
)

// rowData maps a classified todo to a renderer row.
func rowData(it query.Item, today model.Date, selected bool) views.TodoRowData {
	return views.TodoRowData{
		ID:          it.Todo.ID,
		Title:       it.Todo.Title,
		Description: it.Todo.Description,
		Due:         model.FormatRelative(it.Todo.DueDate, today),
		Status:      string(it.Status),
		Completed:   it.Todo.Completed,
		Tags:        it.Todo.Tags,
		Selected:    selected,
	}
}

// RowsFor maps classified todos to renderer rows. The CLI printers share it.
func RowsFor(items []query.Item, today model.Date) []views.TodoRowData {
	out := make([]views.TodoRowData, 0, len(items))
	for _, it := range items {
		out = append(out, rowData(it, today, false))
	}
	return out
}

// CalendarFor maps a month grid to renderer cells. selected may be zero.
func CalendarFor(g query.Grid, selected model.Date, cellWidth int) views.CalendarData {
	weeks := make([][]views.CellData, 0, 6)
	for _, week := range g.Weeks() {
		cells := make([]views.CellData, 0, len(week))
		for _, c := range week {
			items := make([]views.CellItemData, 0, len(c.Visible))
			for _, it := range c.Visible {
				items = append(items, views.CellItemData{Title: it.Todo.Title, Classes: it.Classes})
			}
			cells = append(cells, views.CellData{
				Day:      c.Date.Day,
				Classes:  c.Classes,
				Items:    items,
				Overflow: c.Overflow,
				Selected: c.Date == selected,
			})
		}
		weeks = append(weeks, cells)
	}
	return views.CalendarData{Title: g.Month.Title(), Weeks: weeks, CellWidth: cellWidth}
}

// syncBubbleData pushes the snapshot into the bubbles widgets and clamps
// cursors to the current sections.
func (m *Model) syncBubbleData() {
	m.ListCursor = clamp(m.ListCursor, len(m.snap.List))
	m.DayCursor = clamp(m.DayCursor, len(m.snap.Day))

	rows := make([]table.Row, 0, len(m.snap.List))
	for _, it := range m.snap.List {
		box := "[ ]"
		if it.Todo.Completed {
			box = "[x]"
		}
		rows = append(rows, table.Row{
			box,
			views.Truncate(it.Todo.Title, 30),
			model.FormatRelative(it.Todo.DueDate, m.snap.Today),
			strings.Join(it.Todo.Tags, ", "),
		})
	}
	m.listTable.SetRows(rows)
	m.listTable.SetCursor(m.ListCursor)

	desc := ""
	if m.snap.HasDetail {
		desc = views.RenderMarkdown(m.snap.Detail.Description, m.detailViewport.Width)
	}
	m.detailViewport.SetContent(desc)
	m.syncForm()
}

func (m Model) renderListPanel() string {
	preview := ""
	if len(m.snap.List) > 0 {
		preview = m.snap.List[m.ListCursor].Todo.Description
	}
	return views.RenderListPanel(views.ListPanelData{
		Filter:    string(m.snap.State.Filter),
		TableView: m.listTable.View(),
		Empty:     len(m.snap.List) == 0,
		Preview:   preview,
	})
}

func (m Model) renderTabPanel() string {
	data := views.TabPanelData{Tab: string(m.snap.State.Tab)}
	switch m.snap.State.Tab {
	case coordinator.TabWeek:
		data.Heading = fmt.Sprintf("Week of %s to %s", model.FormatShort(m.snap.WeekStart), model.FormatShort(m.snap.WeekEnd))
		data.Rows = RowsFor(m.snap.WeekItems, m.snap.Today)
	default:
		data.Heading = "Today: " + model.FormatLong(m.snap.Today)
		data.Rows = RowsFor(m.snap.TodayItems, m.snap.Today)
	}
	return views.RenderTabPanel(data)
}

func (m Model) cellWidth() int {
	return min(max((m.width-46)/7, 10), 20)
}

func (m Model) renderCalendar() string {
	return views.RenderCalendar(CalendarFor(m.snap.Grid, m.Selected, m.cellWidth()))
}

func (m Model) renderDetail() string {
	t := m.snap.Detail
	return views.RenderDetail(views.DetailData{
		Title:           t.Title,
		Completed:       t.Completed,
		Due:             model.FormatLong(t.DueDate),
		Status:          string(t.Status(m.snap.Today)),
		CreatedAt:       t.CreatedAt,
		Tags:            t.Tags,
		DescriptionView: m.detailViewport.View(),
	})
}

func (m Model) renderDay() string {
	rows := make([]views.TodoRowData, 0, len(m.snap.Day))
	for i, it := range m.snap.Day {
		rows = append(rows, rowData(it, m.snap.Today, i == m.DayCursor))
	}
	return views.RenderDay(views.DayData{
		Heading: model.FormatLong(m.snap.State.FocusedDate),
		Rows:    rows,
	})
}

func (m Model) renderConfirm() string {
	title := m.snap.State.PendingDelete
	for _, t := range m.snap.All {
		if t.ID == m.snap.State.PendingDelete {
			title = t.Title
			break
		}
	}
	return views.RenderConfirm(title)
}

// renderOverlay returns the top-most dialog, or "" when none is open.
func (m Model) renderOverlay() string {
	switch m.snap.State.Modal {
	case coordinator.ModalAdd, coordinator.ModalEdit:
		return m.renderForm()
	case coordinator.ModalConfirmDelete:
		return m.renderConfirm()
	case coordinator.ModalDetail:
		if m.snap.HasDetail {
			return m.renderDetail()
		}
	}
	if m.snap.State.DayOpen() {
		return m.renderDay()
	}
	return ""
}

func (m Model) renderCounts() string {
	s := m.snap.Stats
	return fmt.Sprintf("total %d | pending %d | completed %d", s.Total, s.Pending, s.Completed)
}
