package model

import (
	"slices"
	"strings"
	"time"
)

// TaskDraft carries the caller supplied fields of a new task. Zero values
// take the entity defaults.
type TaskDraft struct {
	Title      string
	ListID     int
	DueDate    *time.Time
	Priority   Priority
	Tags       []string
	Notes      string
	Recurrence Recurrence
}

// Build assigns id and defaults, then validates the result.
func (d TaskDraft) Build(id int) (Task, error) {
	task := Task{
		ID:         id,
		Title:      strings.TrimSpace(d.Title),
		ListID:     d.ListID,
		Priority:   d.Priority,
		Tags:       slices.Clone(d.Tags),
		Notes:      d.Notes,
		Recurrence: d.Recurrence,
	}
	task.normalizeEnums()
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if d.DueDate != nil {
		due := Day(*d.DueDate)
		task.DueDate = &due
	}
	if err := task.Validate(); err != nil {
		return Task{}, err
	}
	return task, nil
}

// TaskPatch is a partial update. Nil fields are left untouched; ClearDueDate
// removes the due date and wins over DueDate.
type TaskPatch struct {
	Title        *string
	ListID       *int
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *Priority
	Tags         *[]string
	Notes        *string
	Recurrence   *Recurrence
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.ListID == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.Priority == nil && p.Tags == nil && p.Notes == nil && p.Recurrence == nil
}

// Apply returns t with the patch applied. t is not modified, and the result
// is validated before it is returned.
func (p TaskPatch) Apply(t Task) (Task, error) {
	out := t.Clone()
	if p.Title != nil {
		out.Title = strings.TrimSpace(*p.Title)
	}
	if p.ListID != nil {
		out.ListID = *p.ListID
	}
	if p.ClearDueDate {
		out.DueDate = nil
	} else if p.DueDate != nil {
		due := Day(*p.DueDate)
		out.DueDate = &due
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.Tags != nil {
		out.Tags = slices.Clone(*p.Tags)
		if out.Tags == nil {
			out.Tags = []string{}
		}
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Recurrence != nil {
		out.Recurrence = *p.Recurrence
	}
	out.normalizeEnums()
	if err := out.Validate(); err != nil {
		return Task{}, err
	}
	return out, nil
}

// normalizeEnums rewrites priority and recurrence to their canonical
// spelling, ignoring case. Empty values become the defaults; values that do
// not parse are kept so Validate reports them.
func (t *Task) normalizeEnums() {
	if p, err := ParsePriority(string(t.Priority)); err == nil {
		t.Priority = p
	}
	if r, err := ParseRecurrence(string(t.Recurrence)); err == nil {
		t.Recurrence = r
	}
}
