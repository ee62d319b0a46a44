package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/todocal/internal/config"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/views"
)

type keyMap struct {
	Quit         key.Binding
	Add          key.Binding
	Toggle       key.Binding
	Delete       key.Binding
	Edit         key.Binding
	Help         key.Binding
	Palette      key.Binding
	ListView     key.Binding
	CalendarView key.Binding
	PrevMonth    key.Binding
	NextMonth    key.Binding
	Filter       key.Binding
	Tab          key.Binding

	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Open   key.Binding
	Escape key.Binding
	Today  key.Binding
}

func binding(raw, desc string) key.Binding {
	keys := config.Keys(raw)
	label := strings.Join(keys, "/")
	label = strings.ReplaceAll(label, " ", "space")
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func newKeyMap(k config.Keymap) keyMap {
	def := config.Default().Keys
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return keyMap{
		Quit:         binding(pick(k.Quit, def.Quit), "quit"),
		Add:          binding(pick(k.Add, def.Add), "add todo"),
		Toggle:       binding(pick(k.Toggle, def.Toggle), "toggle done"),
		Delete:       binding(pick(k.Delete, def.Delete), "delete"),
		Edit:         binding(pick(k.Edit, def.Edit), "edit"),
		Help:         binding(pick(k.Help, def.Help), "help"),
		Palette:      binding(pick(k.Palette, def.Palette), "command"),
		ListView:     binding(pick(k.ListView, def.ListView), "list view"),
		CalendarView: binding(pick(k.CalendarView, def.CalendarView), "calendar view"),
		PrevMonth:    binding(pick(k.PrevMonth, def.PrevMonth), "prev month"),
		NextMonth:    binding(pick(k.NextMonth, def.NextMonth), "next month"),
		Filter:       binding(pick(k.Filter, def.Filter), "cycle filter"),
		Tab:          binding(pick(k.Tab, def.Tab), "today/week"),

		Up:     binding("up,k", "up"),
		Down:   binding("down,j", "down"),
		Left:   binding("left,h", "left"),
		Right:  binding("right,l", "right"),
		Open:   binding("enter", "open"),
		Escape: binding("esc", "close"),
		Today:  binding("T", "go to today"),
	}
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) shortHelp() helpKeyMap {
	short := []key.Binding{m.keys.Add, m.keys.ListView, m.keys.CalendarView, m.keys.Palette, m.keys.Help, m.keys.Quit}
	return helpKeyMap{short: short, full: [][]key.Binding{short}}
}

func (m Model) viewBindings() []key.Binding {
	switch m.coord.State().View {
	case coordinator.ViewList:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Toggle, m.keys.Edit, m.keys.Delete, m.keys.Filter, m.keys.Tab}
	default:
		return []key.Binding{m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.Open, m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today, m.keys.Tab}
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	global := []key.Binding{m.keys.Add, m.keys.ListView, m.keys.CalendarView, m.keys.Palette, m.keys.Help, m.keys.Quit}
	plain := make([]string, 0, len(global))
	for _, b := range append(global, m.viewBindings()...) {
		h := b.Help()
		plain = append(plain, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.coord.State().View),
		Bindings:    plain,
		HelpView:    m.helpModel.View(helpKeyMap{short: m.viewBindings(), full: [][]key.Binding{m.viewBindings()}}),
	})
}
