package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskwall/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeDone    Type = "done"
	TypeRemove  Type = "rm"
	TypeRestore Type = "restore"
	TypePurge   Type = "purge"
	TypeFilter  Type = "filter"
	TypeNotify  Type = "notify"
	TypeTheme   Type = "theme"
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

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs carries the raw fields of /add; date and time are validated on create.
type AddArgs struct {
	Text     string
	Date     string
	Time     string
	Meridiem string
	Category string
	Color    string
}

type TargetArgs struct {
	ID int64
}

type FilterArgs struct {
	Category string
}

type NotifyArgs struct {
	Enabled bool
}

type ThemeArgs struct {
	Theme model.Theme
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Target *TargetArgs
	Filter *FilterArgs
	Notify *NotifyArgs
	Theme  *ThemeArgs
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

const addUsage = "usage: add <text> @ <YYYY-MM-DD> <h:mm> <AM|PM> [#category] [#rrggbb]"

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
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
	case TypeDone, TypeRemove, TypeRestore, TypePurge:
		return parseTarget(input, Type(head), args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeNotify:
		return parseNotify(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	at := -1
	for i, arg := range args {
		if arg == "@" {
			at = i
		}
	}
	if at < 1 {
		return Command{}, invalid(addUsage)
	}
	a := &AddArgs{Text: strings.Join(args[:at], " ")}
	rest := args[at+1:]
	if len(rest) < 2 {
		return Command{}, invalid(addUsage)
	}
	a.Date, a.Time = rest[0], rest[1]
	rest = rest[2:]
	if len(rest) > 0 {
		if _, err := model.ParseMeridiem(rest[0]); err == nil && !strings.HasPrefix(rest[0], "#") {
			a.Meridiem = strings.ToUpper(rest[0])
			rest = rest[1:]
		}
	}
	for _, tok := range rest {
		switch {
		case hexColor.MatchString(tok) && a.Color == "":
			a.Color = strings.ToUpper(tok)
		case strings.HasPrefix(tok, "#") && len(tok) > 1 && a.Category == "":
			a.Category = tok[1:]
		default:
			return Command{}, invalid("unexpected token %q; %s", tok, addUsage)
		}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: a}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires a task id", typ)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return Command{}, invalid("invalid task id %q", args[0])
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("filter requires a category or all")
	}
	category := strings.TrimPrefix(strings.Join(args, " "), "#")
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Category: category}}, nil
}

func parseNotify(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("notify requires on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return Command{Type: TypeNotify, Raw: raw, Notify: &NotifyArgs{Enabled: true}}, nil
	case "off":
		return Command{Type: TypeNotify, Raw: raw, Notify: &NotifyArgs{Enabled: false}}, nil
	default:
		return Command{}, invalid("notify requires on or off, got %q", args[0])
	}
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("theme requires a name")
	}
	name := strings.ToLower(args[0])
	if !strings.HasPrefix(name, "theme-") {
		name = "theme-" + name
	}
	theme := model.Theme(name)
	if !theme.IsValid() {
		return Command{}, invalid("unknown theme %q", args[0])
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
}
