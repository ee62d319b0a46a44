package update

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todocal/internal/coordinator"
	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/views"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldTags
	fieldCount
)

// defaultTagSuggestions are offered until the collection carries tags of
// its own.
var defaultTagSuggestions = []string{"work", "personal", "urgent"}

// formState backs the add and edit modals. The coordinator owns which of
// the two is open; the inputs live here.
type formState struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
	// loaded is the modal the inputs were last filled for.
	loaded coordinator.Modal
}

func newFormState() formState {
	var f formState
	placeholders := [fieldCount]string{"title", "description (markdown)", "due YYYY-MM-DD", "tags, comma separated"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 256
		in.Width = 48
		f.inputs[i] = in
	}
	f.inputs[fieldDue].CharLimit = 10
	return f
}

func (f *formState) fill(form model.Form) {
	f.inputs[fieldTitle].SetValue(form.Title)
	f.inputs[fieldDescription].SetValue(form.Description)
	f.inputs[fieldDue].SetValue(form.DueDate)
	f.inputs[fieldTags].SetValue(form.TagsRaw)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	f.err = ""
	f.setFocus(fieldTitle)
}

func (f *formState) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f formState) value() model.Form {
	return model.Form{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		DueDate:     f.inputs[fieldDue].Value(),
		TagsRaw:     f.inputs[fieldTags].Value(),
	}
}

// suggestTag appends the first suggestion the tag field does not hold yet.
func (f *formState) suggestTag(suggestions []string) {
	raw := f.inputs[fieldTags].Value()
	current := model.ParseTags(raw)
	for _, s := range suggestions {
		if !slices.Contains(current, s) {
			f.inputs[fieldTags].SetValue(model.AddTag(raw, s))
			return
		}
	}
}

// syncForm loads the inputs when the add or edit modal has just opened.
func (m *Model) syncForm() {
	modal := m.snap.State.Modal
	if modal != coordinator.ModalAdd && modal != coordinator.ModalEdit {
		m.form.loaded = modal
		return
	}
	if m.form.loaded == modal {
		return
	}
	m.form.loaded = modal
	switch modal {
	case coordinator.ModalAdd:
		m.form.fill(model.Form{DueDate: m.snap.State.AddDate.String()})
	case coordinator.ModalEdit:
		if m.snap.HasDetail {
			m.form.fill(model.FormFromTodo(m.snap.Detail))
		}
	}
}

func (m Model) tagSuggestions() []string {
	seen := make([]string, 0)
	for _, t := range m.snap.All {
		for _, tag := range t.Tags {
			if !slices.Contains(seen, tag) {
				seen = append(seen, tag)
			}
		}
	}
	if len(seen) == 0 {
		return defaultTagSuggestions
	}
	slices.Sort(seen)
	return seen
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.refresh(m.coord.Escape())
		return m, nil
	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil
	case "ctrl+t":
		m.form.suggestTag(m.tagSuggestions())
		return m, nil
	case "enter":
		return m.submitForm(), nil
	}
	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() Model {
	form := m.form.value()
	var (
		todo  model.Todo
		dirty coordinator.Dirty
		err   error
	)
	editing := m.coord.State().Modal == coordinator.ModalEdit
	if editing {
		todo, dirty, err = m.coord.Update(m.ctx, form)
	} else {
		todo, dirty, err = m.coord.Create(m.ctx, form)
	}
	if err != nil {
		m.form.err = err.Error()
		m.fail(err)
		return m
	}
	m.form.err = ""
	m.refresh(dirty)
	if editing {
		m.info("updated: " + todo.Title)
	} else {
		m.info("added: " + todo.Title)
	}
	return m
}

func (m Model) renderForm() string {
	heading := "Add todo"
	if m.snap.State.Modal == coordinator.ModalEdit {
		heading = "Edit todo"
	}
	labels := [fieldCount]string{"title", "description", "due", "tags"}
	fields := make([]string, 0, fieldCount)
	for i, in := range m.form.inputs {
		fields = append(fields, strings.TrimSpace(labels[i]+": "+in.View()))
	}
	return views.RenderForm(views.FormData{
		Heading:     heading,
		Fields:      fields,
		Suggestions: m.tagSuggestions(),
		Error:       m.form.err,
	})
}
