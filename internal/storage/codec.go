package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, raw)
	}
}

// On-disk key names match the existing Portuguese-keyed data files.
type document struct {
	Lists      []listRecord `json:"listas" yaml:"listas"`
	Tasks      []taskRecord `json:"tarefas" yaml:"tarefas"`
	NextListID int          `json:"proximo_id_lista,omitempty" yaml:"proximo_id_lista,omitempty"`
	NextTaskID int          `json:"proximo_id_tarefa,omitempty" yaml:"proximo_id_tarefa,omitempty"`
}

type listRecord struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"nome" yaml:"nome"`
}

type taskRecord struct {
	ID         int      `json:"id" yaml:"id"`
	Title      string   `json:"titulo" yaml:"titulo"`
	ListID     int      `json:"lista_id" yaml:"lista_id"`
	Completed  bool     `json:"concluida" yaml:"concluida"`
	DueDate    *string  `json:"data_termino" yaml:"data_termino"`
	Priority   string   `json:"prioridade" yaml:"prioridade"`
	Tags       []string `json:"tags" yaml:"tags"`
	Notes      string   `json:"notas" yaml:"notas"`
	Recurrence string   `json:"repeticao" yaml:"repeticao"`
}

// Encode serializes ds. Output always lists every key, with null for a
// missing due date and [] for no tags.
func Encode(ds Dataset, format Format) ([]byte, error) {
	doc := toDocument(ds)
	switch format {
	case FormatJSON, "":
		payload, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(payload, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
}

// Decode parses a document. Any structural problem is reported as
// ErrCorrupt; the returned dataset is normalized.
func Decode(raw []byte, format Format) (Dataset, error) {
	var doc document
	var err error
	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(raw, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(raw, &doc)
	default:
		return Dataset{}, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	ds, err := fromDocument(doc)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return ds.Normalize(), nil
}

func toDocument(ds Dataset) document {
	doc := document{
		Lists:      make([]listRecord, 0, len(ds.Lists)),
		Tasks:      make([]taskRecord, 0, len(ds.Tasks)),
		NextListID: ds.NextListID,
		NextTaskID: ds.NextTaskID,
	}
	for _, l := range ds.Lists {
		doc.Lists = append(doc.Lists, listRecord{ID: l.ID, Name: l.Name})
	}
	for _, t := range ds.Tasks {
		rec := taskRecord{
			ID:         t.ID,
			Title:      t.Title,
			ListID:     t.ListID,
			Completed:  t.Completed,
			Priority:   string(t.Priority),
			Tags:       append([]string{}, t.Tags...),
			Notes:      t.Notes,
			Recurrence: string(t.Recurrence),
		}
		if t.DueDate != nil {
			due := t.DueDate.Format(model.DateLayout)
			rec.DueDate = &due
		}
		doc.Tasks = append(doc.Tasks, rec)
	}
	return doc
}

func fromDocument(doc document) (Dataset, error) {
	ds := Dataset{
		Lists:      make([]model.TaskList, 0, len(doc.Lists)),
		Tasks:      make([]model.Task, 0, len(doc.Tasks)),
		NextListID: doc.NextListID,
		NextTaskID: doc.NextTaskID,
	}
	for i, rec := range doc.Lists {
		list := model.TaskList{ID: rec.ID, Name: rec.Name}
		if err := list.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("list %d: %w", i, err)
		}
		ds.Lists = append(ds.Lists, list)
	}
	for i, rec := range doc.Tasks {
		task, err := rec.toTask()
		if err != nil {
			return Dataset{}, fmt.Errorf("task %d: %w", i, err)
		}
		ds.Tasks = append(ds.Tasks, task)
	}
	if err := ds.checkUnique(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func (rec taskRecord) toTask() (model.Task, error) {
	task := model.Task{
		ID:         rec.ID,
		Title:      rec.Title,
		ListID:     rec.ListID,
		Completed:  rec.Completed,
		Tags:       append([]string{}, rec.Tags...),
		Notes:      rec.Notes,
	}
	task.Priority, task.Recurrence = decodeEnums(rec.Priority, rec.Recurrence)
	if rec.DueDate != nil && strings.TrimSpace(*rec.DueDate) != "" {
		due, err := model.ParseDate(*rec.DueDate)
		if err != nil {
			return model.Task{}, err
		}
		task.DueDate = &due
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// decodeEnums maps stored priority and recurrence text to canonical values.
// Unknown values fall back to the defaults rather than discarding the whole
// document. Both the file and sqlite backends read through it.
func decodeEnums(priority, recurrence string) (model.Priority, model.Recurrence) {
	p, err := model.ParsePriority(priority)
	if err != nil {
		p = model.PriorityNone
	}
	r, err := model.ParseRecurrence(recurrence)
	if err != nil {
		r = model.RecurrenceNever
	}
	return p, r
}
