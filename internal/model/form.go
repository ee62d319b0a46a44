package model

import (
	"slices"
	"strings"
)

// Form is a raw create/edit request as typed by the user.
type Form struct {
	Title       string
	Description string
	DueDate     string
	TagsRaw     string
}

// FormFromTodo prefills an edit form.
func FormFromTodo(t Todo) Form {
	return Form{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.String(),
		TagsRaw:     strings.Join(t.Tags, ", "),
	}
}

// Parse converts the form into a normalized Input. A blank due date means
// no due date; a malformed one fails with ErrInvalidDate.
func (f Form) Parse() (Input, error) {
	in := Input{
		Title:       f.Title,
		Description: f.Description,
		Tags:        ParseTags(f.TagsRaw),
	}
	if raw := strings.TrimSpace(f.DueDate); raw != "" {
		due, err := ParseDate(raw)
		if err != nil {
			return Input{}, err
		}
		in.DueDate = due
	}
	return in.Normalize()
}

// ParseTags splits a comma separated list, trimming and dropping blanks.
// Duplicates are kept.
func ParseTags(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// AddTag appends a suggested tag to a raw tag field unless it is already
// present.
func AddTag(raw, tag string) string {
	tag = strings.TrimSpace(tag)
	tags := ParseTags(raw)
	if tag == "" || slices.Contains(tags, tag) {
		return strings.Join(tags, ", ")
	}
	return strings.Join(append(tags, tag), ", ")
}
