package model

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	today := NewDate(2025, time.June, 10)
	cases := []struct {
		due  Date
		want Status
	}{
		{Date{}, StatusNoDate},
		{today, StatusToday},
		{today.AddDays(-1), StatusOverdue},
		{today.AddDays(-400), StatusOverdue},
		{today.AddDays(1), StatusFuture},
	}
	for _, tc := range cases {
		if got := Classify(tc.due, today); got != tc.want {
			t.Fatalf("classify %q = %s, want %s", tc.due, got, tc.want)
		}
		if !tc.want.IsValid() {
			t.Fatalf("expected valid status: %q", tc.want)
		}
	}
	if Status("later").IsValid() {
		t.Fatal("expected invalid status")
	}
}

func TestStatusIsRecomputedAsTodayAdvances(t *testing.T) {
	today := NewDate(2025, time.June, 10)
	todo := Todo{ID: "t1", Title: "Pay rent", DueDate: today}
	if todo.Status(today) != StatusToday {
		t.Fatalf("expected today, got %s", todo.Status(today))
	}
	if todo.Status(today.AddDays(1)) != StatusOverdue {
		t.Fatalf("expected overdue, got %s", todo.Status(today.AddDays(1)))
	}
}

func TestFormatRelative(t *testing.T) {
	today := NewDate(2025, time.June, 30)
	cases := map[Date]string{
		{}:                "",
		today:             "Today",
		today.AddDays(1):  "Tomorrow",
		today.AddDays(2):  "Jul 2",
		today.AddDays(-1): "Jun 29",
	}
	for due, want := range cases {
		if got := FormatRelative(due, today); got != want {
			t.Fatalf("format %q = %q, want %q", due, got, want)
		}
	}
	// tomorrow follows the supplied today, not a cached value
	if got := FormatRelative(today.AddDays(2), today.AddDays(1)); got != "Tomorrow" {
		t.Fatalf("expected Tomorrow after rollover, got %q", got)
	}
}

func TestFormatLong(t *testing.T) {
	if got := FormatLong(NewDate(2025, time.June, 9)); got != "Monday, June 9, 2025" {
		t.Fatalf("unexpected long format: %q", got)
	}
}
