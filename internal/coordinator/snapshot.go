package coordinator

import (
	"context"
	"errors"

	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/query"
	"github.com/sandeepkv93/todocal/internal/storage"
)

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Today model.Date
	State State

	All   []model.Todo
	List  []query.Item
	Stats query.Counts

	TodayItems []query.Item
	WeekStart  model.Date
	WeekEnd    model.Date
	WeekItems  []query.Item

	Grid query.Grid

	Detail    model.Todo
	HasDetail bool

	Day []query.Item
}

// Snapshot computes every section.
func (c *Coordinator) Snapshot(ctx context.Context) (Snapshot, error) {
	return c.Refresh(ctx, Snapshot{}, DirtyAll)
}

// Refresh recomputes the sections named by dirty and copies the rest from
// prev. A change of date since prev forces a full recompute.
func (c *Coordinator) Refresh(ctx context.Context, prev Snapshot, dirty Dirty) (Snapshot, error) {
	today := c.Today()
	if today != prev.Today {
		dirty = DirtyAll
	}
	next := prev
	next.Today = today
	next.State = c.state
	if (dirty &^ DirtyModal).Empty() {
		return next, nil
	}

	all, err := c.store.List(ctx)
	if err != nil {
		c.logger.Error("list todos", "err", err)
		return prev, err
	}
	if dirty&(DirtyList|DirtyStats) != 0 {
		next.All = all
		next.List = query.Classified(query.FilterByStatus(all, c.state.Filter), today)
		next.Stats = query.Stats(all)
	}
	if dirty&DirtyToday != 0 {
		next.TodayItems = query.Classified(query.Today(all, today), today)
	}
	if dirty&DirtyWeek != 0 {
		next.WeekStart, next.WeekEnd = query.WeekRange(today)
		next.WeekItems = query.Classified(query.InWeek(all, today), today)
	}
	if dirty&DirtyCalendar != 0 {
		next.Grid = query.BuildMonthGrid(c.state.Cursor, all, today)
	}
	if dirty&DirtyDetail != 0 {
		next.Detail, next.HasDetail = model.Todo{}, false
		if c.state.FocusedID != "" {
			todo, err := c.store.Get(ctx, c.state.FocusedID)
			switch {
			case err == nil:
				next.Detail, next.HasDetail = todo, true
			case !errors.Is(err, storage.ErrNotFound):
				return prev, err
			}
		}
	}
	if dirty&DirtyDay != 0 {
		next.Day = nil
		if c.state.DayOpen() {
			next.Day = query.Classified(query.OnDate(all, c.state.FocusedDate), today)
		}
	}
	return next, nil
}
