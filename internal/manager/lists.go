package manager

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// Lists returns a copy of every list in storage order.
func (m *Manager) Lists() []model.TaskList {
	return slices.Clone(m.lists)
}

func (m *Manager) FindList(id int) (model.TaskList, bool) {
	if i := m.listIndex(id); i >= 0 {
		return m.lists[i], true
	}
	return model.TaskList{}, false
}

// AddList rejects blank names and names that match an existing list
// ignoring case.
func (m *Manager) AddList(ctx context.Context, name string) (model.TaskList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.TaskList{}, ErrEmptyName
	}
	if m.nameTaken(name, 0) {
		return model.TaskList{}, fmt.Errorf("%w: %q", ErrDuplicateListName, name)
	}
	list := model.TaskList{ID: m.allocListID(), Name: name}
	m.lists = append(m.lists, list)
	return list, m.persist(ctx)
}

// EditList renames a list. Renaming a list to a different casing of its own
// name is allowed.
func (m *Manager) EditList(ctx context.Context, id int, name string) (model.TaskList, error) {
	name = strings.TrimSpace(name)
	i := m.listIndex(id)
	if i < 0 {
		return model.TaskList{}, fmt.Errorf("%w: %d", ErrListNotFound, id)
	}
	if name == "" {
		return model.TaskList{}, ErrEmptyName
	}
	if m.nameTaken(name, id) {
		return model.TaskList{}, fmt.Errorf("%w: %q", ErrDuplicateListName, name)
	}
	m.lists[i].Name = name
	return m.lists[i], m.persist(ctx)
}

// RemoveList deletes a list and every task that belongs to it. The last
// remaining list is never removed. ok is false whenever nothing was deleted,
// and err then says why.
func (m *Manager) RemoveList(ctx context.Context, id int) (bool, error) {
	if len(m.lists) <= 1 {
		return false, ErrLastList
	}
	i := m.listIndex(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %d", ErrListNotFound, id)
	}
	m.lists = slices.Delete(m.lists, i, i+1)
	before := len(m.tasks)
	m.tasks = slices.DeleteFunc(m.tasks, func(t model.Task) bool { return t.ListID == id })
	m.logger.Info("list removed", "list_id", id, "tasks_removed", before-len(m.tasks))
	return true, m.persist(ctx)
}

func (m *Manager) listIndex(id int) int {
	return slices.IndexFunc(m.lists, func(l model.TaskList) bool { return l.ID == id })
}

func (m *Manager) nameTaken(name string, exceptID int) bool {
	for _, l := range m.lists {
		if l.ID != exceptID && strings.EqualFold(l.Name, name) {
			return true
		}
	}
	return false
}
