package storage

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
)

// DefaultListName is the list created when no data exists yet.
const DefaultListName = "General"

// Dataset is the whole persisted document. NextListID and NextTaskID are the
// ids the manager hands out next; they only ever grow.
type Dataset struct {
	Lists      []model.TaskList
	Tasks      []model.Task
	NextListID int
	NextTaskID int
}

func DefaultDataset() Dataset {
	return Dataset{
		Lists:      []model.TaskList{{ID: 1, Name: DefaultListName}},
		Tasks:      []model.Task{},
		NextListID: 2,
		NextTaskID: 1,
	}
}

// Normalize guarantees at least one list and counters above every stored id.
// Data written without counters gets max(id)+1.
func (d Dataset) Normalize() Dataset {
	out := d.Clone()
	for _, l := range out.Lists {
		if l.ID >= out.NextListID {
			out.NextListID = l.ID + 1
		}
	}
	for _, t := range out.Tasks {
		if t.ID >= out.NextTaskID {
			out.NextTaskID = t.ID + 1
		}
	}
	if out.NextListID < 1 {
		out.NextListID = 1
	}
	if out.NextTaskID < 1 {
		out.NextTaskID = 1
	}
	if len(out.Lists) == 0 {
		out.Lists = append(out.Lists, model.TaskList{ID: out.NextListID, Name: DefaultListName})
		out.NextListID++
	}
	return out
}

// Clone deep-copies the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Lists:      make([]model.TaskList, len(d.Lists)),
		Tasks:      make([]model.Task, 0, len(d.Tasks)),
		NextListID: d.NextListID,
		NextTaskID: d.NextTaskID,
	}
	copy(out.Lists, d.Lists)
	for _, t := range d.Tasks {
		out.Tasks = append(out.Tasks, t.Clone())
	}
	return out
}

// checkUnique rejects repeated list ids, list names that differ only in
// case, and repeated task ids.
func (d Dataset) checkUnique() error {
	listIDs := make(map[int]bool, len(d.Lists))
	names := make(map[string]bool, len(d.Lists))
	for _, l := range d.Lists {
		if listIDs[l.ID] {
			return fmt.Errorf("duplicate list id %d", l.ID)
		}
		key := strings.ToLower(strings.TrimSpace(l.Name))
		if names[key] {
			return fmt.Errorf("duplicate list name %q", l.Name)
		}
		listIDs[l.ID] = true
		names[key] = true
	}
	taskIDs := make(map[int]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		if taskIDs[t.ID] {
			return fmt.Errorf("duplicate task id %d", t.ID)
		}
		taskIDs[t.ID] = true
	}
	return nil
}
