package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

var ErrInvalidWindow = errors.New("query: invalid window")

// Window selects tasks by due-date proximity or completion state.
type Window string

const (
	WindowAll       Window = "all"
	WindowToday     Window = "today"
	WindowWeek      Window = "week"
	WindowPending   Window = "pending"
	WindowCompleted Window = "completed"
)

// Windows lists every window in the order the TUI cycles through them.
var Windows = []Window{WindowAll, WindowToday, WindowWeek, WindowPending, WindowCompleted}

// weekDays is how far ahead the week window reaches.
const weekDays = 7

func (w Window) IsValid() bool {
	switch w {
	case WindowAll, WindowToday, WindowWeek, WindowPending, WindowCompleted:
		return true
	default:
		return false
	}
}

func (w Window) Label() string {
	switch w {
	case WindowToday:
		return "due today or overdue"
	case WindowWeek:
		return "due within 7 days or overdue"
	case WindowPending:
		return "pending"
	case WindowCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Next returns the window after w in Windows, wrapping around.
func (w Window) Next() Window {
	for i, item := range Windows {
		if item == w {
			return Windows[(i+1)%len(Windows)]
		}
	}
	return WindowAll
}

func ParseWindow(raw string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return WindowAll, nil
	case "today":
		return WindowToday, nil
	case "week", "7d":
		return WindowWeek, nil
	case "pending", "open":
		return WindowPending, nil
	case "completed", "done":
		return WindowCompleted, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidWindow, raw)
	}
}

// FilterByWindow keeps the tasks inside window relative to today. The date
// windows ignore completion state.
func FilterByWindow(tasks []model.Task, window Window, today time.Time) []model.Task {
	switch window {
	case WindowToday:
		return filter(tasks, func(t model.Task) bool { return t.DueBy(today) })
	case WindowWeek:
		return filter(tasks, func(t model.Task) bool { return t.DueWithin(today, weekDays) })
	case WindowPending:
		return filter(tasks, func(t model.Task) bool { return !t.Completed })
	case WindowCompleted:
		return filter(tasks, func(t model.Task) bool { return t.Completed })
	default:
		return filter(tasks, func(model.Task) bool { return true })
	}
}

func FilterByList(tasks []model.Task, listID int) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.ListID == listID })
}

// FilterByTag matches tag exactly, ignoring case.
func FilterByTag(tasks []model.Task, tag string) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.HasTag(tag) })
}

func filter(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
