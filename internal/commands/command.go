package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/kosei/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeToggle Type = "toggle"
	TypeLog    Type = "log"
	TypeMonth  Type = "month"
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

// AddArgs.Due is an ISO date or a relative word (today, tomorrow,
// yesterday); empty means today. Importance 0 means the configured default.
type AddArgs struct {
	Name       string
	Due        string
	Importance int
}

// EditArgs targets the task at 1-based queue position Index. Empty fields
// are left unchanged.
type EditArgs struct {
	Index      int
	Name       string
	Due        string
	Importance int
}

type ToggleArgs struct {
	Index int
}

type LogArgs struct {
	Minutes     int
	Category    model.Category
	Description string
}

type MonthDirection string

const (
	MonthNext  MonthDirection = "next"
	MonthPrev  MonthDirection = "prev"
	MonthToday MonthDirection = "today"
)

type MonthArgs struct {
	Direction MonthDirection
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Toggle *ToggleArgs
	Log    *LogArgs
	Month  *MonthArgs
}

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
	case TypeEdit:
		return parseEdit(input, args)
	case TypeToggle:
		return parseToggle(input, args)
	case TypeLog:
		return parseLog(input, args)
	case TypeMonth:
		return parseMonth(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	fields, err := parseTaskFields(args)
	if err != nil {
		return Command{}, err
	}
	if fields.name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: fields.name, Due: fields.due, Importance: fields.importance}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a task number and a change"}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	fields, err := parseTaskFields(args[1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Index: idx, Name: fields.name, Due: fields.due, Importance: fields.importance}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a task number"}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{Index: idx}}, nil
}

func parseLog(raw string, args []string) (Command, error) {
	if len(args) < 3 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "log requires minutes, category and description"}
	}
	cat, err := model.ParseCategory(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category %q", args[1])}
	}
	return Command{Type: TypeLog, Raw: raw, Log: &LogArgs{
		Minutes:     model.ParseMinutes(args[0]),
		Category:    cat,
		Description: strings.Join(args[2:], " "),
	}}, nil
}

func parseMonth(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "month requires next, prev or today"}
	}
	dir := MonthDirection(strings.ToLower(args[0]))
	switch dir {
	case MonthNext, MonthPrev, MonthToday:
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown month direction %q", args[0])}
	}
	return Command{Type: TypeMonth, Raw: raw, Month: &MonthArgs{Direction: dir}}, nil
}

type taskFields struct {
	name       string
	due        string
	importance int
}

func parseTaskFields(args []string) (taskFields, error) {
	var out taskFields
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			due := strings.TrimSpace(arg[len("due:"):])
			if !validDue(due) {
				return out, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid due date %q", due)}
			}
			out.due = due
		case strings.HasPrefix(lower, "p:"):
			p, err := strconv.Atoi(strings.TrimSpace(arg[len("p:"):]))
			if err != nil || !model.ValidImportance(p) {
				return out, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("importance must be 1-5, got %q", arg[len("p:"):])}
			}
			out.importance = p
		default:
			words = append(words, arg)
		}
	}
	out.name = strings.TrimSpace(strings.Join(words, " "))
	return out, nil
}

// validDue only checks the shape; relative words resolve in the handler.
func validDue(raw string) bool {
	_, ok := model.ResolveDate(raw, time.Time{})
	return ok
}

func parseIndex(raw string) (int, error) {
	idx, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || idx < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number %q", raw)}
	}
	return idx, nil
}
