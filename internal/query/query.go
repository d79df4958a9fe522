package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// Query narrows tasks to a context (a list, a tag, or everything), then a
// window, then orders them. ListID 0 and an empty Tag mean no context. When
// both are set the list wins.
type Query struct {
	ListID int
	Tag    string
	Window Window
	Sort   Criterion
}

func (q Query) Apply(tasks []model.Task, today time.Time) []model.Task {
	switch {
	case q.ListID > 0:
		tasks = FilterByList(tasks, q.ListID)
	case strings.TrimSpace(q.Tag) != "":
		tasks = FilterByTag(tasks, strings.TrimSpace(q.Tag))
	}
	window := q.Window
	if window == "" {
		window = WindowAll
	}
	by := q.Sort
	if by == "" {
		by = ByDate
	}
	return Sort(FilterByWindow(tasks, window, today), by)
}

func (q Query) Validate() error {
	if q.ListID < 0 {
		return fmt.Errorf("query: invalid list id %d", q.ListID)
	}
	if q.Window != "" && !q.Window.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidWindow, q.Window)
	}
	if q.Sort != "" && !q.Sort.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCriterion, q.Sort)
	}
	return nil
}

// Describe renders the query as a short heading, e.g. "list Work · pending · by date".
func (q Query) Describe(listName string) string {
	parts := make([]string, 0, 3)
	switch {
	case q.ListID > 0:
		parts = append(parts, "list "+listName)
	case q.Tag != "":
		parts = append(parts, "tag "+q.Tag)
	default:
		parts = append(parts, "all lists")
	}
	window := q.Window
	if window == "" {
		window = WindowAll
	}
	parts = append(parts, window.Label())
	by := q.Sort
	if by == "" {
		by = ByDate
	}
	parts = append(parts, "by "+string(by))
	return strings.Join(parts, " · ")
}
