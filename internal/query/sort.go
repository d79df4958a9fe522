// Package query holds the pure ordering and filtering helpers applied to
// task snapshots taken from the manager.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

var ErrInvalidCriterion = errors.New("query: invalid sort criterion")

type Criterion string

const (
	ByDate     Criterion = "date"
	ByPriority Criterion = "priority"
)

func (c Criterion) IsValid() bool {
	switch c {
	case ByDate, ByPriority:
		return true
	default:
		return false
	}
}

// ParseCriterion accepts "date" or "priority"; blank means ByDate.
func ParseCriterion(raw string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "date", "due":
		return ByDate, nil
	case "priority", "prio":
		return ByPriority, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCriterion, raw)
	}
}

// Sort returns a stably sorted copy of tasks. Tasks without a due date sort
// after every dated task; list id breaks the remaining ties.
func Sort(tasks []model.Task, by Criterion) []model.Task {
	out := slices.Clone(tasks)
	cmp := compareByDate
	if by == ByPriority {
		cmp = compareByPriority
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func compareByDate(a, b model.Task) int {
	if c := compareDue(a.DueDate, b.DueDate); c != 0 {
		return c
	}
	if c := a.Priority.Rank() - b.Priority.Rank(); c != 0 {
		return c
	}
	return a.ListID - b.ListID
}

func compareByPriority(a, b model.Task) int {
	if c := a.Priority.Rank() - b.Priority.Rank(); c != 0 {
		return c
	}
	if c := compareDue(a.DueDate, b.DueDate); c != 0 {
		return c
	}
	return a.ListID - b.ListID
}

func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}
