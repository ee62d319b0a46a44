package coordinator

import (
	"strings"

	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/query"
)

type View string

const (
	ViewList     View = "list"
	ViewCalendar View = "calendar"
)

func (v View) IsValid() bool {
	return v == ViewList || v == ViewCalendar
}

func ParseView(raw string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	return v, v.IsValid()
}

type Tab string

const (
	TabToday Tab = "today"
	TabWeek  Tab = "week"
)

func (t Tab) IsValid() bool {
	return t == TabToday || t == TabWeek
}

func ParseTab(raw string) (Tab, bool) {
	t := Tab(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.IsValid()
}

// Modal is the top-most dialog layer. The day modal is tracked separately
// through State.FocusedDate because detail and add can open above it.
type Modal string

const (
	ModalNone          Modal = "none"
	ModalAdd           Modal = "add"
	ModalDetail        Modal = "detail"
	ModalEdit          Modal = "edit"
	ModalConfirmDelete Modal = "confirm-delete"
)

// State is the derived, non-persisted view state.
type State struct {
	Filter query.Filter
	View   View
	Tab    Tab
	Cursor model.Month

	// FocusedID is the todo shown by the detail modal or edited by the edit
	// modal. Editing keeps it so a successful update can reopen detail.
	FocusedID string
	// FocusedDate is the day modal's date; zero when the day modal is closed.
	FocusedDate model.Date
	Modal       Modal

	PendingDelete string
	// confirmFrom is the layer a cancelled delete returns to.
	confirmFrom Modal
	// AddDate prefills the add form's due date.
	AddDate model.Date
}

func (s State) DayOpen() bool {
	return !s.FocusedDate.IsZero()
}

// Dirty names the derived views a transition made stale.
type Dirty uint16

const (
	DirtyList Dirty = 1 << iota
	DirtyToday
	DirtyWeek
	DirtyCalendar
	DirtyDetail
	DirtyDay
	DirtyStats
	// DirtyModal covers dialog-layer changes that alter no derived data.
	DirtyModal
)

// DirtyAll marks every section.
const DirtyAll = DirtyList | DirtyToday | DirtyWeek | DirtyCalendar | DirtyDetail | DirtyDay | DirtyStats | DirtyModal

var dirtyNames = []struct {
	bit  Dirty
	name string
}{
	{DirtyList, "list"},
	{DirtyToday, "today"},
	{DirtyWeek, "week"},
	{DirtyCalendar, "calendar"},
	{DirtyDetail, "detail"},
	{DirtyDay, "day"},
	{DirtyStats, "stats"},
	{DirtyModal, "modal"},
}

func (d Dirty) Has(bits Dirty) bool {
	return d&bits == bits
}

func (d Dirty) Empty() bool {
	return d == 0
}

func (d Dirty) String() string {
	if d == 0 {
		return "none"
	}
	parts := make([]string, 0, len(dirtyNames))
	for _, n := range dirtyNames {
		if d&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
