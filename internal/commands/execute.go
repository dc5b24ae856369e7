package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Done    func(TargetArgs) (Result, error)
	Remove  func(TargetArgs) (Result, error)
	Restore func(TargetArgs) (Result, error)
	Purge   func(TargetArgs) (Result, error)
	Filter  func(FilterArgs) (Result, error)
	Notify  func(NotifyArgs) (Result, error)
	Theme   func(ThemeArgs) (Result, error)
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
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing("done")
		}
		return handlers.Done(*cmd.Target)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing("rm")
		}
		return handlers.Remove(*cmd.Target)
	case TypeRestore:
		if handlers.Restore == nil {
			return Result{}, missing("restore")
		}
		return handlers.Restore(*cmd.Target)
	case TypePurge:
		if handlers.Purge == nil {
			return Result{}, missing("purge")
		}
		return handlers.Purge(*cmd.Target)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing("filter")
		}
		return handlers.Filter(*cmd.Filter)
	case TypeNotify:
		if handlers.Notify == nil {
			return Result{}, missing("notify")
		}
		return handlers.Notify(*cmd.Notify)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing("theme")
		}
		return handlers.Theme(*cmd.Theme)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
