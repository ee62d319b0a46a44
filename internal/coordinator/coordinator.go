// Package coordinator tracks which filter, view, tab and dialog are active
// and reports, for every transition, which derived views became stale.
package coordinator

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/query"
)

var ErrNoFocus = errors.New("coordinator: no focused todo")

// TodoStore is the subset of the store the coordinator mutates through.
type TodoStore interface {
	Create(ctx context.Context, in model.Input) (model.Todo, error)
	Update(ctx context.Context, id string, in model.Input) (model.Todo, error)
	ToggleCompleted(ctx context.Context, id string) (model.Todo, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (model.Todo, error)
	List(ctx context.Context) ([]model.Todo, error)
}

type Options struct {
	Now    func() time.Time
	Logger *log.Logger

	Filter query.Filter
	View   View
	Tab    Tab
	// Cursor is the starting calendar month; zero means the current month.
	Cursor model.Month
}

type Coordinator struct {
	store     TodoStore
	now       func() time.Time
	logger    *log.Logger
	state     State
	listeners []func(Dirty)
}

func New(store TodoStore, opts Options) (*Coordinator, error) {
	if store == nil {
		return nil, errors.New("coordinator: nil store")
	}
	c := &Coordinator{
		store:  store,
		now:    opts.Now,
		logger: opts.Logger,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.state = State{
		Filter: query.ParseFilter(string(opts.Filter)),
		View:   opts.View,
		Tab:    opts.Tab,
		Cursor: opts.Cursor,
		Modal:  ModalNone,
	}
	if !c.state.View.IsValid() {
		c.state.View = ViewCalendar
	}
	if !c.state.Tab.IsValid() {
		c.state.Tab = TabToday
	}
	if c.state.Cursor.IsZero() {
		c.state.Cursor = model.MonthOf(c.Today())
	}
	return c, nil
}

// Today is read from the clock on every call.
func (c *Coordinator) Today() model.Date {
	return model.Today(c.now())
}

func (c *Coordinator) State() State {
	return c.state
}

// Subscribe registers fn to run after every transition with a non-empty
// dirty set.
func (c *Coordinator) Subscribe(fn func(Dirty)) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

func (c *Coordinator) emit(op string, d Dirty) Dirty {
	if d.Empty() {
		return d
	}
	c.logger.Debug("transition", "op", op, "dirty", d.String(), "modal", c.state.Modal)
	for _, fn := range c.listeners {
		fn(d)
	}
	return d
}

func (c *Coordinator) reject(op string, err error) {
	c.logger.Warn("rejected", "op", op, "err", err)
}

// mutated is the dirty set for a committed change to todo id: every view
// that could be showing it.
func (c *Coordinator) mutated(id string) Dirty {
	d := DirtyList | DirtyToday | DirtyWeek | DirtyCalendar | DirtyStats
	if id != "" && c.state.FocusedID == id {
		d |= DirtyDetail
	}
	if c.state.DayOpen() {
		d |= DirtyDay
	}
	return d
}

// SetFilter normalizes raw and stores it. Outside list view only the state
// changes.
func (c *Coordinator) SetFilter(raw string) Dirty {
	c.state.Filter = query.ParseFilter(raw)
	if c.state.View != ViewList {
		return 0
	}
	return c.emit("set_filter", DirtyList)
}

func (c *Coordinator) SetView(v View) Dirty {
	if !v.IsValid() {
		return 0
	}
	c.state.View = v
	if v == ViewCalendar {
		return c.emit("set_view", DirtyCalendar)
	}
	return c.emit("set_view", DirtyList)
}

func (c *Coordinator) SetTab(t Tab) Dirty {
	if !t.IsValid() {
		return 0
	}
	c.state.Tab = t
	if t == TabWeek {
		return c.emit("set_tab", DirtyWeek)
	}
	return c.emit("set_tab", DirtyToday)
}

func (c *Coordinator) NavigateMonth(delta int) Dirty {
	c.state.Cursor = c.state.Cursor.Add(delta)
	return c.emit("navigate_month", DirtyCalendar)
}

func (c *Coordinator) GotoMonth(m model.Month) Dirty {
	if m.IsZero() {
		return 0
	}
	c.state.Cursor = m
	return c.emit("goto_month", DirtyCalendar)
}

func (c *Coordinator) GotoToday() Dirty {
	return c.GotoMonth(model.MonthOf(c.Today()))
}

func (c *Coordinator) OpenDetail(ctx context.Context, id string) (Dirty, error) {
	if _, err := c.store.Get(ctx, id); err != nil {
		c.reject("open_detail", err)
		return 0, err
	}
	c.state.FocusedID = id
	c.state.Modal = ModalDetail
	return c.emit("open_detail", DirtyDetail|DirtyModal), nil
}

func (c *Coordinator) CloseDetail() Dirty {
	if c.state.FocusedID == "" && c.state.Modal != ModalDetail {
		return 0
	}
	c.state.FocusedID = ""
	if c.state.Modal == ModalDetail {
		c.state.Modal = ModalNone
	}
	return c.emit("close_detail", DirtyDetail|DirtyModal)
}

func (c *Coordinator) OpenDay(date model.Date) Dirty {
	if date.IsZero() {
		return 0
	}
	c.state.FocusedDate = date
	return c.emit("open_day", DirtyDay|DirtyModal)
}

// CloseDay rebuilds the grid in calendar view since todos may have changed
// while the day modal was open.
func (c *Coordinator) CloseDay() Dirty {
	if !c.state.DayOpen() {
		return 0
	}
	c.state.FocusedDate = model.Date{}
	d := DirtyDay | DirtyModal
	if c.state.View == ViewCalendar {
		d |= DirtyCalendar
	}
	return c.emit("close_day", d)
}

// OpenEdit hides the detail modal without clearing focus.
func (c *Coordinator) OpenEdit(ctx context.Context, id string) (Dirty, error) {
	if _, err := c.store.Get(ctx, id); err != nil {
		c.reject("open_edit", err)
		return 0, err
	}
	c.state.FocusedID = id
	c.state.Modal = ModalEdit
	return c.emit("open_edit", DirtyDetail|DirtyModal), nil
}

// CancelEdit returns to the detail modal of the same todo.
func (c *Coordinator) CancelEdit() Dirty {
	if c.state.Modal != ModalEdit {
		return 0
	}
	c.state.Modal = ModalDetail
	return c.emit("cancel_edit", DirtyDetail|DirtyModal)
}

// OpenAdd opens the add modal with an optional due date prefill.
func (c *Coordinator) OpenAdd(prefill model.Date) Dirty {
	c.state.Modal = ModalAdd
	c.state.AddDate = prefill
	return c.emit("open_add", DirtyModal)
}

func (c *Coordinator) CloseAdd() Dirty {
	if c.state.Modal != ModalAdd {
		return 0
	}
	c.state.Modal = ModalNone
	c.state.AddDate = model.Date{}
	return c.emit("close_add", DirtyModal)
}

// AddForDate swaps the day modal for an add modal prefilled with date.
func (c *Coordinator) AddForDate(date model.Date) Dirty {
	d := c.CloseDay()
	return d | c.OpenAdd(date)
}

func (c *Coordinator) Create(ctx context.Context, form model.Form) (model.Todo, Dirty, error) {
	in, err := form.Parse()
	if err != nil {
		c.reject("create", err)
		return model.Todo{}, 0, err
	}
	todo, err := c.store.Create(ctx, in)
	if err != nil {
		c.reject("create", err)
		return model.Todo{}, 0, err
	}
	d := c.mutated(todo.ID)
	if c.state.Modal == ModalAdd {
		c.state.Modal = ModalNone
		c.state.AddDate = model.Date{}
		d |= DirtyModal
	}
	c.logger.Info("created", "id", todo.ID, "title", todo.Title)
	return todo, c.emit("create", d), nil
}

// Update saves the form for the focused todo. An open edit modal returns to
// the detail modal; any other layer is left as it is.
func (c *Coordinator) Update(ctx context.Context, form model.Form) (model.Todo, Dirty, error) {
	id := c.state.FocusedID
	if id == "" {
		c.reject("update", ErrNoFocus)
		return model.Todo{}, 0, ErrNoFocus
	}
	in, err := form.Parse()
	if err != nil {
		c.reject("update", err)
		return model.Todo{}, 0, err
	}
	todo, err := c.store.Update(ctx, id, in)
	if err != nil {
		c.reject("update", err)
		return model.Todo{}, 0, err
	}
	d := c.mutated(id) | DirtyDetail
	if c.state.Modal == ModalEdit {
		c.state.Modal = ModalDetail
		d |= DirtyModal
	}
	return todo, c.emit("update", d), nil
}

func (c *Coordinator) Toggle(ctx context.Context, id string) (model.Todo, Dirty, error) {
	todo, err := c.store.ToggleCompleted(ctx, id)
	if err != nil {
		c.reject("toggle", err)
		return model.Todo{}, 0, err
	}
	return todo, c.emit("toggle", c.mutated(id)), nil
}

// RequestDelete opens the confirmation layer. The store is not touched.
func (c *Coordinator) RequestDelete(id string) Dirty {
	if id == "" {
		return 0
	}
	if c.state.Modal != ModalConfirmDelete {
		c.state.confirmFrom = c.state.Modal
	}
	c.state.PendingDelete = id
	c.state.Modal = ModalConfirmDelete
	return c.emit("request_delete", DirtyModal)
}

func (c *Coordinator) CancelDelete() Dirty {
	if c.state.Modal != ModalConfirmDelete {
		return 0
	}
	c.state.Modal = c.state.confirmFrom
	c.state.PendingDelete = ""
	c.state.confirmFrom = ""
	return c.emit("cancel_delete", DirtyModal)
}

// ConfirmDelete removes the pending todo. A detail modal showing it closes.
func (c *Coordinator) ConfirmDelete(ctx context.Context) (Dirty, error) {
	if c.state.Modal != ModalConfirmDelete {
		return 0, nil
	}
	id := c.state.PendingDelete
	if err := c.store.Delete(ctx, id); err != nil {
		c.reject("delete", err)
		return 0, err
	}
	d := c.mutated(id) | DirtyModal
	c.state.Modal = c.state.confirmFrom
	c.state.PendingDelete = ""
	c.state.confirmFrom = ""
	if c.state.FocusedID == id {
		c.state.FocusedID = ""
		if c.state.Modal == ModalDetail || c.state.Modal == ModalEdit {
			c.state.Modal = ModalNone
		}
		d |= DirtyDetail
	}
	c.logger.Info("deleted", "id", id)
	return c.emit("delete", d), nil
}

// Escape closes the top-most layer: confirm, add, edit, detail, then day.
func (c *Coordinator) Escape() Dirty {
	switch c.state.Modal {
	case ModalConfirmDelete:
		return c.CancelDelete()
	case ModalAdd:
		return c.CloseAdd()
	case ModalEdit:
		return c.CancelEdit()
	case ModalDetail:
		return c.CloseDetail()
	}
	return c.CloseDay()
}

// Rollover marks every date-relative view stale. It runs when the clock
// crosses midnight.
func (c *Coordinator) Rollover() Dirty {
	d := DirtyList | DirtyToday | DirtyWeek | DirtyCalendar | DirtyDetail | DirtyDay
	return c.emit("rollover", d)
}
