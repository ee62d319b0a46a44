package update

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todocal/internal/query"
)

// filterCycle is the order the filter key steps through.
var filterCycle = []query.Filter{query.FilterAll, query.FilterPending, query.FilterCompleted}

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ListCursor = clamp(m.ListCursor-1, len(m.snap.List))
		m.listTable.SetCursor(m.ListCursor)
	case key.Matches(msg, m.keys.Down):
		m.ListCursor = clamp(m.ListCursor+1, len(m.snap.List))
		m.listTable.SetCursor(m.ListCursor)
	case key.Matches(msg, m.keys.Filter):
		m.refresh(m.coord.SetFilter(string(nextFilter(m.coord.State().Filter))))
		m.info("filter: " + string(m.coord.State().Filter))
	case key.Matches(msg, m.keys.Open):
		if id, ok := m.listTodoID(); ok {
			m.openDetail(id)
		}
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.listTodoID(); ok {
			m.toggle(id)
		}
	case key.Matches(msg, m.keys.Edit):
		if id, ok := m.listTodoID(); ok {
			d, err := m.coord.OpenEdit(m.ctx, id)
			if err != nil {
				m.fail(err)
				break
			}
			m.refresh(d)
		}
	case key.Matches(msg, m.keys.Delete):
		if id, ok := m.listTodoID(); ok {
			m.refresh(m.coord.RequestDelete(id))
		}
	}
	return m
}

func (m Model) listTodoID() (string, bool) {
	if len(m.snap.List) == 0 {
		return "", false
	}
	return m.snap.List[m.ListCursor].Todo.ID, true
}

func nextFilter(f query.Filter) query.Filter {
	for i, c := range filterCycle {
		if c == f {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return query.FilterAll
}
