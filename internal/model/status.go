package model

// Status is the date classification of a todo relative to today.
type Status string

const (
	StatusNoDate  Status = "none"
	StatusToday   Status = "today"
	StatusOverdue Status = "overdue"
	StatusFuture  Status = "future"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNoDate, StatusToday, StatusOverdue, StatusFuture:
		return true
	default:
		return false
	}
}

func Classify(due, today Date) Status {
	switch {
	case due.IsZero():
		return StatusNoDate
	case due == today:
		return StatusToday
	case due.Before(today):
		return StatusOverdue
	default:
		return StatusFuture
	}
}

// FormatRelative renders a due date for list rows: "Today", "Tomorrow" or
// a short month-day string. Tomorrow is derived from today on every call.
func FormatRelative(due, today Date) string {
	switch {
	case due.IsZero():
		return ""
	case due == today:
		return "Today"
	case due == today.AddDays(1):
		return "Tomorrow"
	default:
		return FormatShort(due)
	}
}

// FormatShort renders "Jan 2".
func FormatShort(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("Jan 2")
}

// FormatLong renders "Monday, January 2, 2006".
func FormatLong(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("Monday, January 2, 2006")
}
