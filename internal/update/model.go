package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/todocal/internal/config"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/scheduler"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type PaletteState struct {
	Active bool
}

// Deps are the collaborators the program drives. Coordinator is required.
type Deps struct {
	Coordinator *coordinator.Coordinator
	Scheduler   *scheduler.Engine
	Logger      *log.Logger
	Keys        config.Keymap
	Now         func() time.Time
	// Wall is the real clock the scheduler fires on. It differs from Now
	// when the date is pinned. Defaults to time.Now.
	Wall func() time.Time
}

type Model struct {
	ctx    context.Context
	coord  *coordinator.Coordinator
	engine *scheduler.Engine
	logger *log.Logger
	now    func() time.Time
	wall   func() time.Time
	keys   keyMap

	snap coordinator.Snapshot

	Status      StatusBar
	Palette     PaletteState
	HelpVisible bool
	Quitting    bool

	// ListCursor indexes snap.List; DayCursor indexes snap.Day.
	ListCursor int
	DayCursor  int
	// Selected is the highlighted calendar date.
	Selected model.Date

	form formState

	listTable      table.Model
	commandInput   textinput.Model
	helpModel      help.Model
	detailViewport viewport.Model
	width          int
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// AlarmMsg delivers a scheduler alarm to the update loop.
type AlarmMsg struct {
	Alarm scheduler.Alarm
}

func NewModel(ctx context.Context, deps Deps) Model {
	m := Model{
		ctx:    ctx,
		coord:  deps.Coordinator,
		engine: deps.Scheduler,
		logger: deps.Logger,
		now:    deps.Now,
		wall:   deps.Wall,
		keys:   newKeyMap(deps.Keys),
		width:  100,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.wall == nil {
		m.wall = time.Now
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.initBubbleComponents()
	m.Selected = m.coord.Today()
	if cursor := m.coord.State().Cursor; !cursor.Contains(m.Selected) {
		m.Selected = cursor.First()
	}
	m.refresh(coordinator.DirtyAll)
	return m
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Title", Width: 32},
		{Title: "Due", Width: 10},
		{Title: "Tags", Width: 20},
	}
	m.listTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(14))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 60

	m.helpModel = help.New()
	m.detailViewport = viewport.New(64, 10)
	m.form = newFormState()
}

// Snapshot exposes the last derived state, for tests and the CLI.
func (m Model) Snapshot() coordinator.Snapshot {
	return m.snap
}

// refresh recomputes the dirty snapshot sections and resyncs widgets.
func (m *Model) refresh(d coordinator.Dirty) {
	next, err := m.coord.Refresh(m.ctx, m.snap, d)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.snap = next
	m.syncBubbleData()
}

// fail records a rejected operation in the status bar.
func (m *Model) fail(err error) {
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m *Model) info(text string) {
	m.Status = StatusBar{Text: text}
}
