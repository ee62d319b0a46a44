package model

import (
	"errors"
	"testing"
	"time"
)

func TestFormParse(t *testing.T) {
	in, err := Form{
		Title:       "Report",
		Description: "Quarterly numbers",
		DueDate:     "2025-06-12",
		TagsRaw:     "work, important,, work ",
	}.Parse()
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if in.DueDate != NewDate(2025, time.June, 12) {
		t.Fatalf("unexpected due date: %s", in.DueDate)
	}
	want := []string{"work", "important", "work"}
	if len(in.Tags) != len(want) {
		t.Fatalf("unexpected tags: %#v", in.Tags)
	}
	for i := range want {
		if in.Tags[i] != want[i] {
			t.Fatalf("tag[%d] = %q, want %q", i, in.Tags[i], want[i])
		}
	}
}

func TestFormParseBlankDueDate(t *testing.T) {
	in, err := Form{Title: "Read", DueDate: "  "}.Parse()
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if !in.DueDate.IsZero() || len(in.Tags) != 0 {
		t.Fatalf("unexpected input: %#v", in)
	}
}

func TestFormParseErrors(t *testing.T) {
	if _, err := (Form{Title: " "}).Parse(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := (Form{Title: "ok", DueDate: "06/12/2025"}).Parse(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestFormFromTodo(t *testing.T) {
	f := FormFromTodo(Todo{Title: "Gym", DueDate: NewDate(2025, time.July, 1), Tags: []string{"health", "personal"}})
	if f.DueDate != "2025-07-01" || f.TagsRaw != "health, personal" {
		t.Fatalf("unexpected form: %#v", f)
	}
}

func TestAddTagSuppressesDuplicates(t *testing.T) {
	raw := AddTag("work, meeting", "work")
	if raw != "work, meeting" {
		t.Fatalf("unexpected tags after duplicate: %q", raw)
	}
	raw = AddTag(raw, "urgent")
	if raw != "work, meeting, urgent" {
		t.Fatalf("unexpected tags after add: %q", raw)
	}
	if AddTag("", "solo") != "solo" {
		t.Fatalf("unexpected single tag: %q", AddTag("", "solo"))
	}
}
