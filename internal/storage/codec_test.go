package storage

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func sampleDataset() Dataset {
	return Dataset{
		Lists: []model.TaskList{
			{ID: 1, Name: "General"},
			{ID: 3, Name: "Work"},
		},
		Tasks: []model.Task{
			{
				ID: 1, Title: "Buy milk", ListID: 1, Priority: model.PriorityLow,
				Tags: []string{"Grocery", "grocery"}, Notes: "2 litres", Recurrence: model.RecurrenceWeekly,
				DueDate: model.DatePtr(2024, 3, 1),
			},
			{
				ID: 4, Title: "Write report", ListID: 3, Completed: true, Priority: model.PriorityNone,
				Tags: []string{}, Recurrence: model.RecurrenceNever,
			},
		},
		NextListID: 5,
		NextTaskID: 9,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		ds := sampleDataset()
		raw, err := Encode(ds, format)
		if err != nil {
			t.Fatalf("%s encode failed: %v", format, err)
		}
		got, err := Decode(raw, format)
		if err != nil {
			t.Fatalf("%s decode failed: %v", format, err)
		}
		if !reflect.DeepEqual(got, ds) {
			t.Fatalf("%s roundtrip mismatch:\n got %#v\nwant %#v", format, got, ds)
		}
	}
}

func TestEncodeWritesNullDueAndEmptyTags(t *testing.T) {
	raw, err := Encode(sampleDataset(), FormatJSON)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out := string(raw)
	for _, want := range []string{`"data_termino": null`, `"tags": []`, `"listas"`, `"tarefas"`, `"proximo_id_tarefa": 9`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
}

func TestDecodeLegacyDocument(t *testing.T) {
	legacy := `{
		"listas": [{"id": 1, "nome": "Geral"}, {"id": 2, "nome": "Casa"}],
		"tarefas": [
			{"id": 5, "titulo": "Limpar", "lista_id": 2, "concluida": false,
			 "data_termino": "2024-01-31", "prioridade": "alta", "tags": null,
			 "notas": "", "repeticao": "mensal"},
			{"id": 6, "titulo": "Ler", "lista_id": 1}
		]
	}`
	ds, err := Decode([]byte(legacy), FormatJSON)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if ds.NextListID != 3 || ds.NextTaskID != 7 {
		t.Fatalf("counters not derived from max ids: %+v", ds)
	}
	first := ds.Tasks[0]
	if first.Priority != model.PriorityHigh || first.Recurrence != model.RecurrenceMonthly {
		t.Fatalf("legacy enums not mapped: %+v", first)
	}
	if model.FormatDate(first.DueDate) != "2024-01-31" {
		t.Fatalf("unexpected due date: %v", first.DueDate)
	}
	second := ds.Tasks[1]
	if second.Tags == nil || len(second.Tags) != 0 || second.DueDate != nil {
		t.Fatalf("missing keys must decode to empty values: %+v", second)
	}
	if second.Priority != model.PriorityNone || second.Recurrence != model.RecurrenceNever {
		t.Fatalf("missing enums must take defaults: %+v", second)
	}
}

func TestDecodeAddsDefaultListWhenNoneStored(t *testing.T) {
	ds, err := Decode([]byte(`{}`), FormatJSON)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(ds.Lists) != 1 || ds.Lists[0].Name != DefaultListName || ds.Lists[0].ID != 1 {
		t.Fatalf("expected default list, got %+v", ds.Lists)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	cases := []string{
		`{"listas": [`,
		`{"tarefas": [{"id": 1, "lista_id": 1}]}`,
		`{"tarefas": [{"id": 1, "titulo": "x", "lista_id": 1, "data_termino": "31/01/2024"}]}`,
		`{"listas": [{"id": 1}]}`,
	}
	for _, in := range cases {
		if _, err := Decode([]byte(in), FormatJSON); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("decode %s: expected ErrCorrupt, got %v", in, err)
		}
	}
}

func TestDecodeRejectsDuplicates(t *testing.T) {
	cases := map[string]string{
		"list id":   `{"listas": [{"id": 1, "nome": "A"}, {"id": 1, "nome": "B"}]}`,
		"list name": `{"listas": [{"id": 1, "nome": "Work"}, {"id": 2, "nome": " work"}]}`,
		"task id": `{"listas": [{"id": 1, "nome": "A"}], "tarefas": [
			{"id": 5, "titulo": "x", "lista_id": 1}, {"id": 5, "titulo": "y", "lista_id": 1}]}`,
	}
	for name, in := range cases {
		_, err := Decode([]byte(in), FormatJSON)
		if !errors.Is(err, ErrCorrupt) || !strings.Contains(err.Error(), "duplicate "+name) {
			t.Fatalf("%s: expected duplicate ErrCorrupt, got %v", name, err)
		}
	}
}

func TestDecodeNormalizesEnumCase(t *testing.T) {
	in := `{"listas": [{"id": 1, "nome": "A"}], "tarefas": [
		{"id": 1, "titulo": "x", "lista_id": 1, "prioridade": "HIGH", "repeticao": "Semanal"},
		{"id": 2, "titulo": "y", "lista_id": 1, "prioridade": "urgent", "repeticao": "hourly"}]}`
	ds, err := Decode([]byte(in), FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ds.Tasks[0].Priority != model.PriorityHigh || ds.Tasks[0].Recurrence != model.RecurrenceWeekly {
		t.Fatalf("enums not normalized: %+v", ds.Tasks[0])
	}
	if ds.Tasks[1].Priority != model.PriorityNone || ds.Tasks[1].Recurrence != model.RecurrenceNever {
		t.Fatalf("unknown enums not defaulted: %+v", ds.Tasks[1])
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Fatalf("unexpected format parse: %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}
