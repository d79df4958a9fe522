// Package commands parses the one-line command palette grammar:
//
//	add <title> [list:N] [due:YYYY-MM-DD] [prio:P] [tag:T]... [every:R] [note:TEXT]
//	done N | undo N | rm N
//	search TERM
//	show WINDOW [list:N] [tag:T] [sort:S]
//	newlist NAME
//	clear
//
// note: consumes the rest of the line.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/query"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeDone    Type = "done"
	TypeUndo    Type = "undo"
	TypeRemove  Type = "rm"
	TypeSearch  Type = "search"
	TypeShow    Type = "show"
	TypeNewList Type = "newlist"
	TypeClear   Type = "clear"
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

// AddArgs carries a draft whose ListID is zero unless list:N was given; the
// handler picks the list in that case.
type AddArgs struct {
	Draft model.TaskDraft
}

type TargetArgs struct {
	ID int
}

type SearchArgs struct {
	Term string
}

type ShowArgs struct {
	Query query.Query
}

type NewListArgs struct {
	Name string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Target  *TargetArgs
	Search  *SearchArgs
	Show    *ShowArgs
	NewList *NewListArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeUndo, TypeRemove:
		return parseTarget(input, Type(head), args)
	case TypeSearch:
		term := strings.Join(args, " ")
		if term == "" {
			return Command{}, invalid("search requires a term")
		}
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Term: term}}, nil
	case TypeShow:
		return parseShow(input, args)
	case TypeNewList:
		name := strings.Join(args, " ")
		if name == "" {
			return Command{}, invalid("newlist requires a name")
		}
		return Command{Type: TypeNewList, Raw: input, NewList: &NewListArgs{Name: name}}, nil
	case TypeClear:
		if len(args) > 0 {
			return Command{}, invalid("clear takes no arguments")
		}
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// splitOption splits "key:value" with a lowercase key. ok is false for plain words.
func splitOption(arg string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(arg, ":")
	if !ok || key == "" {
		return "", "", false
	}
	return strings.ToLower(key), value, true
}

func parseAdd(raw string, args []string) (Command, error) {
	draft := model.TaskDraft{Tags: []string{}}
	title := make([]string, 0, len(args))
	for i, arg := range args {
		key, value, ok := splitOption(arg)
		if !ok {
			title = append(title, arg)
			continue
		}
		switch key {
		case "list":
			id, err := parseID(value)
			if err != nil {
				return Command{}, err
			}
			draft.ListID = id
		case "due":
			due, err := model.ParseDate(value)
			if err != nil {
				return Command{}, invalid("bad due date %q, want YYYY-MM-DD", value)
			}
			draft.DueDate = &due
		case "prio", "priority":
			p, err := model.ParsePriority(value)
			if err != nil {
				return Command{}, invalid("bad priority %q", value)
			}
			draft.Priority = p
		case "tag", "tags":
			draft.Tags = append(draft.Tags, model.ParseTags(value)...)
		case "every", "repeat":
			r, err := model.ParseRecurrence(value)
			if err != nil {
				return Command{}, invalid("bad recurrence %q", value)
			}
			draft.Recurrence = r
		case "note", "notes":
			draft.Notes = strings.TrimSpace(strings.Join(append([]string{value}, args[i+1:]...), " "))
			return finishAdd(raw, draft, title)
		default:
			title = append(title, arg)
		}
	}
	return finishAdd(raw, draft, title)
}

func finishAdd(raw string, draft model.TaskDraft, title []string) (Command, error) {
	draft.Title = strings.Join(title, " ")
	if draft.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Draft: draft}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires one task id", typ)
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("show requires a window")
	}
	window, err := query.ParseWindow(args[0])
	if err != nil {
		return Command{}, invalid("unknown window %q", args[0])
	}
	q := query.Query{Window: window}
	for _, arg := range args[1:] {
		key, value, ok := splitOption(arg)
		if !ok {
			return Command{}, invalid("unexpected argument %q", arg)
		}
		switch key {
		case "list":
			id, err := parseID(value)
			if err != nil {
				return Command{}, err
			}
			q.ListID = id
		case "tag":
			q.Tag = strings.TrimSpace(value)
		case "sort":
			by, err := query.ParseCriterion(value)
			if err != nil {
				return Command{}, invalid("unknown sort %q", value)
			}
			q.Sort = by
		default:
			return Command{}, invalid("unknown option %q", key)
		}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Query: q}}, nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if err != nil || id <= 0 {
		return 0, invalid("bad id %q", raw)
	}
	return id, nil
}
