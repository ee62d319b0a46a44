package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DescriptionPreviewRunes caps description previews in list rows.
const DescriptionPreviewRunes = 100

// Class names understood by the calendar and row renderers.
const (
	ClassToday      = "today"
	ClassOtherMonth = "other-month"
	ClassHasTodos   = "has-todos"
	ClassHasOverdue = "has-overdue"
	ClassCompleted  = "completed"
	ClassOverdue    = "overdue"
)

var (
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	completedStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	todayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

type TodoRowData struct {
	ID          string
	Title       string
	Description string
	Due         string
	Status      string
	Completed   bool
	Tags        []string
	Selected    bool
}

func renderRow(r TodoRowData) string {
	box := "[ ]"
	if r.Completed {
		box = "[x]"
	}
	title := r.Title
	switch {
	case r.Completed:
		title = completedStyle.Render(title)
	case r.Status == ClassOverdue:
		title = overdueStyle.Render(title)
	}
	line := box + " " + title
	if r.Due != "" {
		line += " " + faintStyle.Render(r.Due)
	}
	if len(r.Tags) > 0 {
		line += " " + tagStyle.Render("#"+strings.Join(r.Tags, " #"))
	}
	if r.Selected {
		line = selectedStyle.Render("> ") + line
	} else {
		line = "  " + line
	}
	return line
}

type ListPanelData struct {
	Filter    string
	TableView string
	Empty     bool
	Preview   string
}

func RenderListPanel(data ListPanelData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("list") + faintStyle.Render(fmt.Sprintf(" (filter: %s)", data.Filter)) + "\n")
	if data.Empty {
		b.WriteString(faintStyle.Render("no todos match this filter"))
		return b.String()
	}
	b.WriteString(data.TableView)
	if data.Preview != "" {
		b.WriteString("\n" + faintStyle.Render(Truncate(data.Preview, DescriptionPreviewRunes)))
	}
	return b.String()
}

type TabPanelData struct {
	Tab     string
	Heading string
	Rows    []TodoRowData
}

func RenderTabPanel(data TabPanelData) string {
	var b strings.Builder
	tabs := []string{"today", "week"}
	for i, t := range tabs {
		label := "[" + t + "]"
		if t == data.Tab {
			label = todayStyle.Render(label)
		} else {
			label = faintStyle.Render(label)
		}
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(label)
	}
	b.WriteString("\n" + data.Heading + "\n")
	if len(data.Rows) == 0 {
		b.WriteString(faintStyle.Render("nothing due"))
		return b.String()
	}
	for _, r := range data.Rows {
		b.WriteString(renderRow(r) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

type CellItemData struct {
	Title   string
	Classes []string
}

type CellData struct {
	Day      int
	Classes  []string
	Items    []CellItemData
	Overflow int
	Selected bool
}

type CalendarData struct {
	Title     string
	Weeks     [][]CellData
	CellWidth int
}

var weekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RenderCalendar draws the month as a 7-column grid. Each cell lists its
// visible items and a "+N more" line for the overflow.
func RenderCalendar(data CalendarData) string {
	width := data.CellWidth
	if width <= 0 {
		width = 14
	}
	height := 1
	for _, week := range data.Weeks {
		for _, c := range week {
			h := 1 + len(c.Items)
			if c.Overflow > 0 {
				h++
			}
			height = max(height, h)
		}
	}

	cellStyle := lipgloss.NewStyle().Width(width).Height(height)
	header := make([]string, 0, 7)
	for _, name := range weekdayHeader {
		header = append(header, lipgloss.NewStyle().Width(width).Bold(true).Render(name))
	}

	rows := []string{titleStyle.Render(data.Title), lipgloss.JoinHorizontal(lipgloss.Top, header...)}
	for _, week := range data.Weeks {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, cellStyle.Render(renderCell(c, width)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func renderCell(c CellData, width int) string {
	day := fmt.Sprintf("%2d", c.Day)
	switch {
	case slices.Contains(c.Classes, ClassOtherMonth):
		day = faintStyle.Render(day)
	case slices.Contains(c.Classes, ClassHasOverdue):
		day = overdueStyle.Render(day)
	case slices.Contains(c.Classes, ClassToday):
		day = todayStyle.Render(day)
	}
	if slices.Contains(c.Classes, ClassToday) {
		day += todayStyle.Render("*")
	}
	if c.Selected {
		day = selectedStyle.Render(day)
	}

	lines := []string{day}
	for _, it := range c.Items {
		title := Truncate(it.Title, width-4)
		switch {
		case slices.Contains(it.Classes, ClassCompleted):
			title = completedStyle.Render(title)
		case slices.Contains(it.Classes, ClassOverdue):
			title = overdueStyle.Render(title)
		}
		lines = append(lines, "· "+title)
	}
	if c.Overflow > 0 {
		lines = append(lines, faintStyle.Render(fmt.Sprintf("+%d more", c.Overflow)))
	}
	return strings.Join(lines, "\n")
}

type DetailData struct {
	Title           string
	Completed       bool
	Due             string
	Status          string
	CreatedAt       string
	Tags            []string
	DescriptionView string
}

// DueLine is the detail modal's due date line, including the overdue or
// due-today suffix.
func DueLine(due, status string) string {
	switch {
	case due == "":
		return "No due date"
	case status == ClassOverdue:
		return due + " (overdue)"
	case status == ClassToday:
		return due + " (due today)"
	default:
		return due
	}
}

func RenderDetail(data DetailData) string {
	var b strings.Builder
	state := "pending"
	if data.Completed {
		state = "completed"
	}
	b.WriteString(titleStyle.Render(data.Title) + "\n")
	b.WriteString(fmt.Sprintf("status: %s\n", state))
	due := DueLine(data.Due, data.Status)
	if data.Status == ClassOverdue && !data.Completed {
		due = overdueStyle.Render(due)
	}
	b.WriteString("due: " + due + "\n")
	b.WriteString("created: " + data.CreatedAt + "\n")
	if len(data.Tags) == 0 {
		b.WriteString("tags: " + faintStyle.Render("No tags") + "\n")
	} else {
		b.WriteString("tags: " + tagStyle.Render("#"+strings.Join(data.Tags, " #")) + "\n")
	}
	b.WriteString("\n")
	if strings.TrimSpace(data.DescriptionView) == "" {
		b.WriteString(faintStyle.Render("No description"))
	} else {
		b.WriteString(data.DescriptionView)
	}
	b.WriteString("\n\n" + faintStyle.Render("[e]dit [d]elete [space]toggle [esc]close"))
	return b.String()
}

type DayData struct {
	Heading string
	Rows    []TodoRowData
}

func RenderDay(data DayData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Heading) + "\n\n")
	if len(data.Rows) == 0 {
		b.WriteString(faintStyle.Render("No todos for this date") + "\n")
	}
	for _, r := range data.Rows {
		b.WriteString(renderRow(r) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("[enter]open [space]toggle [a]add todo for this date [esc]close"))
	return b.String()
}

type FormData struct {
	Heading     string
	Fields      []string
	Suggestions []string
	Error       string
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Heading) + "\n\n")
	for _, f := range data.Fields {
		b.WriteString(f + "\n")
	}
	if len(data.Suggestions) > 0 {
		b.WriteString(faintStyle.Render("suggested tags: ") + tagStyle.Render(strings.Join(data.Suggestions, ", ")) + "\n")
	}
	if data.Error != "" {
		b.WriteString(overdueStyle.Render(data.Error) + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("[tab]next field [ctrl+t]add suggested tag [enter]save [esc]cancel"))
	return b.String()
}

func RenderConfirm(title string) string {
	return fmt.Sprintf("Delete %q?\nThis cannot be undone.\n\n%s", title, faintStyle.Render("[y]es [n]o"))
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s view):\n%s\n\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
