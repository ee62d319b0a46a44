package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	View   func(ViewArgs) (Result, error)
	Tab    func(TabArgs) (Result, error)
	Month  func(MonthArgs) (Result, error)
	Day    func(DayArgs) (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing("filter")
		}
		return handlers.Filter(*cmd.Filter)
	case TypeView:
		if handlers.View == nil {
			return Result{}, missing("view")
		}
		return handlers.View(*cmd.View)
	case TypeTab:
		if handlers.Tab == nil {
			return Result{}, missing("tab")
		}
		return handlers.Tab(*cmd.Tab)
	case TypeMonth:
		if handlers.Month == nil {
			return Result{}, missing("month")
		}
		return handlers.Month(*cmd.Month)
	case TypeDay:
		if handlers.Day == nil {
			return Result{}, missing("day")
		}
		return handlers.Day(*cmd.Day)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
