package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrValidation = errors.New("model: validation failed")
	ErrEmptyTitle = fmt.Errorf("%w: todo title is required", ErrValidation)
)

// CreatedAtLayout is the display layout stamped into Todo.CreatedAt.
const CreatedAtLayout = "Jan 2, 2006"

type Todo struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   string
	DueDate     Date
	Tags        []string
}

func (t Todo) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// Status classifies the todo against today. It is never cached on the record.
func (t Todo) Status(today Date) Status {
	return Classify(t.DueDate, today)
}

// Clone returns a copy that shares no memory with t.
func (t Todo) Clone() Todo {
	out := t
	out.Tags = slices.Clone(t.Tags)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: todo id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(t.CreatedAt) == "" {
		return errors.New("model: todo created_at is required")
	}
	if !t.DueDate.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDate, t.DueDate)
	}
	for _, tag := range t.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: empty tag", ErrValidation)
		}
	}
	return nil
}

// Input carries the user-editable fields of a todo.
type Input struct {
	Title       string
	Description string
	DueDate     Date
	Tags        []string
}

// Normalize trims text fields and drops blank tags. It fails with
// ErrEmptyTitle when nothing is left of the title and with ErrInvalidDate
// when the due date is not a real calendar day.
func (in Input) Normalize() (Input, error) {
	out := Input{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		DueDate:     in.DueDate,
		Tags:        make([]string, 0, len(in.Tags)),
	}
	if out.Title == "" {
		return Input{}, ErrEmptyTitle
	}
	if !in.DueDate.Valid() {
		return Input{}, fmt.Errorf("%w: %s", ErrInvalidDate, in.DueDate)
	}
	for _, tag := range in.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out.Tags = append(out.Tags, tag)
		}
	}
	return out, nil
}

// Apply overwrites the mutable fields of t. ID, CreatedAt and Completed are kept.
func (in Input) Apply(t Todo) Todo {
	t.Title = in.Title
	t.Description = in.Description
	t.DueDate = in.DueDate
	t.Tags = slices.Clone(in.Tags)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return t
}
