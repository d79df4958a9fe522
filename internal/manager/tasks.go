package manager

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// Completion is the result of CompleteTask. Next is set when completing the
// task spawned its next occurrence.
type Completion struct {
	Task model.Task
	Next *model.Task
}

// Tasks returns a copy of every task in insertion order.
func (m *Manager) Tasks() []model.Task {
	return cloneTasks(m.tasks)
}

func (m *Manager) FindTask(id int) (model.Task, bool) {
	if i := m.taskIndex(id); i >= 0 {
		return m.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// SearchTasks matches term case-insensitively as a substring of the title,
// the notes or any tag. Results keep insertion order; a blank term matches
// nothing.
func (m *Manager) SearchTasks(term string) []model.Task {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]model.Task, 0)
	if needle == "" {
		return out
	}
	for _, t := range m.tasks {
		if matches(t, needle) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func matches(t model.Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) || strings.Contains(strings.ToLower(t.Notes), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Tags lists the distinct tags in use, ignoring case. The first spelling
// seen wins.
func (m *Manager) Tags() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range m.tasks {
		for _, tag := range t.Tags {
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i]) < strings.ToLower(out[j]) })
	return out
}

// AddTask creates a task in an existing list.
func (m *Manager) AddTask(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if _, ok := m.FindList(draft.ListID); !ok {
		return model.Task{}, fmt.Errorf("%w: %d", ErrListNotFound, draft.ListID)
	}
	task, err := draft.Build(m.nextTaskID)
	if err != nil {
		return model.Task{}, err
	}
	m.allocTaskID()
	m.tasks = append(m.tasks, task)
	return task.Clone(), m.persist(ctx)
}

// EditTask applies patch to a task. Moving a task requires the target list
// to exist. Nothing changes when validation fails.
func (m *Manager) EditTask(ctx context.Context, id int, patch model.TaskPatch) (model.Task, error) {
	i := m.taskIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	if patch.IsEmpty() {
		return m.tasks[i].Clone(), nil
	}
	if patch.ListID != nil {
		if _, ok := m.FindList(*patch.ListID); !ok {
			return model.Task{}, fmt.Errorf("%w: %d", ErrListNotFound, *patch.ListID)
		}
	}
	updated, err := patch.Apply(m.tasks[i])
	if err != nil {
		return model.Task{}, err
	}
	m.tasks[i] = updated
	return updated.Clone(), m.persist(ctx)
}

func (m *Manager) RemoveTask(ctx context.Context, id int) (bool, error) {
	i := m.taskIndex(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	m.tasks = slices.Delete(m.tasks, i, i+1)
	return true, m.persist(ctx)
}

// CompleteTask marks a task done. Every completion of a recurring task with a
// due date appends its next occurrence as a new pending task, even when the
// task was already completed; the completed original stays in place.
func (m *Manager) CompleteTask(ctx context.Context, id int) (Completion, error) {
	i := m.taskIndex(id)
	if i < 0 {
		return Completion{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	m.tasks[i].Completed = true
	out := Completion{Task: m.tasks[i].Clone()}

	if next, ok := m.tasks[i].Successor(m.nextTaskID); ok {
		m.allocTaskID()
		m.tasks = append(m.tasks, next)
		spawned := next.Clone()
		out.Next = &spawned
		m.logger.Debug("recurring task spawned", "from", id, "task_id", next.ID, "due", model.FormatDate(next.DueDate))
	}
	return out, m.persist(ctx)
}

// UncompleteTask marks a task pending again. A successor spawned by an
// earlier completion is left alone.
func (m *Manager) UncompleteTask(ctx context.Context, id int) (model.Task, error) {
	i := m.taskIndex(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	m.tasks[i].Completed = false
	return m.tasks[i].Clone(), m.persist(ctx)
}

// RemoveCompletedTasks deletes every completed task and returns how many were
// removed. The store is only written when something was removed.
func (m *Manager) RemoveCompletedTasks(ctx context.Context) (int, error) {
	before := len(m.tasks)
	m.tasks = slices.DeleteFunc(m.tasks, func(t model.Task) bool { return t.Completed })
	removed := before - len(m.tasks)
	if removed == 0 {
		return 0, nil
	}
	return removed, m.persist(ctx)
}

func (m *Manager) taskIndex(id int) int {
	return slices.IndexFunc(m.tasks, func(t model.Task) bool { return t.ID == id })
}

func cloneTasks(in []model.Task) []model.Task {
	out := make([]model.Task, 0, len(in))
	for _, t := range in {
		out = append(out, t.Clone())
	}
	return out
}
