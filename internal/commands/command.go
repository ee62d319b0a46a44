// Package commands parses the command palette grammar and dispatches parsed
// commands to handlers.
package commands

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/query"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeFilter Type = "filter"
	TypeView   Type = "view"
	TypeTab    Type = "tab"
	TypeMonth  Type = "month"
	TypeDay    Type = "day"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// DateArg is a date typed in the palette. Keywords resolve against the day
// the command runs, not the day it was parsed.
type DateArg struct {
	Keyword string
	Date    model.Date
}

func (d DateArg) IsZero() bool {
	return d.Keyword == "" && d.Date.IsZero()
}

func (d DateArg) Resolve(today model.Date) model.Date {
	switch d.Keyword {
	case "today":
		return today
	case "tomorrow":
		return today.AddDays(1)
	case "yesterday":
		return today.AddDays(-1)
	default:
		return d.Date
	}
}

func parseDateArg(raw string) (DateArg, error) {
	switch kw := strings.ToLower(strings.TrimSpace(raw)); kw {
	case "today", "tomorrow", "yesterday":
		return DateArg{Keyword: kw}, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return DateArg{}, invalid("date must be YYYY-MM-DD, today or tomorrow: %q", raw)
	}
	return DateArg{Date: d}, nil
}

type AddArgs struct {
	Title string
	Due   DateArg
	Tags  []string
}

// Form converts the arguments into a create request.
func (a AddArgs) Form(today model.Date) model.Form {
	return model.Form{
		Title:   a.Title,
		DueDate: a.Due.Resolve(today).String(),
		TagsRaw: strings.Join(a.Tags, ","),
	}
}

type FilterArgs struct {
	Filter query.Filter
}

type ViewArgs struct {
	View string
}

type TabArgs struct {
	Tab string
}

// MonthArgs moves the calendar cursor. Exactly one of Today, Month or a
// non-zero Delta is set.
type MonthArgs struct {
	Delta int
	Month model.Month
	Today bool
}

type DayArgs struct {
	Date DateArg
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	View   *ViewArgs
	Tab    *TabArgs
	Month  *MonthArgs
	Day    *DayArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeView:
		return parseView(input, args)
	case TypeTab:
		return parseTab(input, args)
	case TypeMonth:
		return parseMonth(input, args)
	case TypeDay:
		return parseDay(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads title words with optional due: and tags: tokens anywhere
// in the argument list.
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{Tags: []string{}}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			due, err := parseDateArg(arg[len("due:"):])
			if err != nil {
				return Command{}, err
			}
			out.Due = due
		case strings.HasPrefix(lower, "tags:"):
			for _, tag := range model.ParseTags(arg[len("tags:"):]) {
				if !slices.Contains(out.Tags, tag) {
					out.Tags = append(out.Tags, tag)
				}
			}
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("filter requires one of all, pending, completed")
	}
	switch name := strings.ToLower(args[0]); name {
	case "all", "pending", "completed", "today", "overdue":
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: query.ParseFilter(name)}}, nil
	default:
		return Command{}, invalid("unknown filter: %s", args[0])
	}
}

func parseView(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("view requires list or calendar")
	}
	switch name := strings.ToLower(args[0]); name {
	case "list", "calendar":
		return Command{Type: TypeView, Raw: raw, View: &ViewArgs{View: name}}, nil
	default:
		return Command{}, invalid("unknown view: %s", args[0])
	}
}

func parseTab(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("tab requires today or week")
	}
	switch name := strings.ToLower(args[0]); name {
	case "today", "week":
		return Command{Type: TypeTab, Raw: raw, Tab: &TabArgs{Tab: name}}, nil
	default:
		return Command{}, invalid("unknown tab: %s", args[0])
	}
}

func parseMonth(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("month requires +N, -N, YYYY-MM or today")
	}
	arg := strings.ToLower(args[0])
	out := MonthArgs{}
	switch {
	case arg == "today":
		out.Today = true
	case arg == "next":
		out.Delta = 1
	case arg == "prev":
		out.Delta = -1
	case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
		n, err := strconv.Atoi(arg)
		if err != nil || n == 0 {
			return Command{}, invalid("month offset must be a non-zero integer: %s", args[0])
		}
		out.Delta = n
	default:
		m, err := model.ParseMonth(arg)
		if err != nil {
			return Command{}, invalid("month must be YYYY-MM: %s", args[0])
		}
		out.Month = m
	}
	return Command{Type: TypeMonth, Raw: raw, Month: &out}, nil
}

func parseDay(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("day requires YYYY-MM-DD or today")
	}
	d, err := parseDateArg(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDay, Raw: raw, Day: &DayArgs{Date: d}}, nil
}
