package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDate     = errors.New("model: invalid date")
	ErrEmptyTitle      = errors.New("model: task title is required")
	ErrEmptyName       = errors.New("model: list name is required")
)

// DateLayout is the ISO-8601 calendar date used on disk and on the command line.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityNone   Priority = "none"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityNone:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting; lower is more urgent.
func (p Priority) Rank() int {
	switch Priority(strings.ToLower(string(p))) {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	case PriorityNone:
		return 3
	default:
		return 4
	}
}

// ParsePriority accepts canonical names and the Portuguese names written by
// older data files. Blank input yields PriorityNone.
func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return PriorityNone, nil
	case "high", "alta":
		return PriorityHigh, nil
	case "medium", "media", "média":
		return PriorityMedium, nil
	case "low", "baixa":
		return PriorityLow, nil
	case "none", "nenhuma":
		return PriorityNone, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

type TaskList struct {
	ID   int
	Name string
}

func (l TaskList) Validate() error {
	if l.ID <= 0 {
		return errors.New("model: list id must be positive")
	}
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

type Task struct {
	ID         int
	Title      string
	ListID     int
	Completed  bool
	DueDate    *time.Time
	Priority   Priority
	Tags       []string
	Notes      string
	Recurrence Recurrence
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return errors.New("model: task id must be positive")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.ListID <= 0 {
		return errors.New("model: task list_id must be positive")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Recurrence.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, t.Recurrence)
	}
	return nil
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	out := t
	out.Tags = slices.Clone(t.Tags)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	return out
}

// Successor builds the next occurrence of a recurring task. ok is false when
// the task does not recur or has no due date.
func (t Task) Successor(id int) (Task, bool) {
	if t.Recurrence == RecurrenceNever || t.DueDate == nil {
		return Task{}, false
	}
	next := t.Clone()
	next.ID = id
	next.Completed = false
	due := t.Recurrence.Next(*t.DueDate)
	next.DueDate = &due
	return next, true
}

// HasTag reports whether any tag equals tag, ignoring case.
func (t Task) HasTag(tag string) bool {
	for _, item := range t.Tags {
		if strings.EqualFold(item, tag) {
			return true
		}
	}
	return false
}

func (t Task) Overdue(today time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(Day(today))
}

// DueBy reports whether the task has a due date on or before limit.
func (t Task) DueBy(limit time.Time) bool {
	return t.DueDate != nil && !t.DueDate.After(Day(limit))
}

// DueWithin reports whether the task has a due date no later than days after
// today. Overdue tasks count.
func (t Task) DueWithin(today time.Time, days int) bool {
	return t.DueBy(Day(today).AddDate(0, 0, days))
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DatePtr(year int, month time.Month, day int) *time.Time {
	d := Date(year, month, day)
	return &d
}

func ParseDate(raw string) (time.Time, error) {
	tm, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return tm, nil
}

func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// ParseTags splits a comma separated tag string, dropping blank entries.
func ParseTags(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
