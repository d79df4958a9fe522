package storage

import (
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "tasklist-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteEmptyDatabaseYieldsDefault(t *testing.T) {
	store := setupStore(t)
	ds, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(ds, DefaultDataset()) {
		t.Fatalf("expected default dataset, got %#v", ds)
	}
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	store := setupStore(t)
	ds := sampleDataset()
	if err := store.Save(t.Context(), ds); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, ds) {
		t.Fatalf("roundtrip mismatch:\n got %#v\nwant %#v", got, ds)
	}
}

func TestSQLiteSaveReplacesPreviousRows(t *testing.T) {
	store := setupStore(t)
	ds := sampleDataset()
	if err := store.Save(t.Context(), ds); err != nil {
		t.Fatalf("first save: %v", err)
	}

	ds.Tasks = ds.Tasks[:1]
	ds.Tasks[0].Tags = []string{"only"}
	ds.Lists = append(ds.Lists, model.TaskList{ID: 5, Name: "Later"})
	ds.NextListID = 6
	if err := store.Save(t.Context(), ds); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Tasks) != 1 || len(got.Lists) != 3 {
		t.Fatalf("stale rows survived: %+v", got)
	}
	if !reflect.DeepEqual(got.Tasks[0].Tags, []string{"only"}) {
		t.Fatalf("unexpected tags after replace: %#v", got.Tasks[0].Tags)
	}
	if got.NextListID != 6 {
		t.Fatalf("counter not stored: %d", got.NextListID)
	}
}

func TestSQLitePreservesOrderAcrossIDs(t *testing.T) {
	store := setupStore(t)
	ds := DefaultDataset()
	ds.Tasks = []model.Task{
		{ID: 9, Title: "late id first", ListID: 1, Priority: model.PriorityNone, Recurrence: model.RecurrenceNever, Tags: []string{}},
		{ID: 2, Title: "early id second", ListID: 1, Priority: model.PriorityNone, Recurrence: model.RecurrenceNever, Tags: []string{}},
	}
	ds.NextTaskID = 10
	if err := store.Save(t.Context(), ds); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Tasks[0].ID != 9 || got.Tasks[1].ID != 2 {
		t.Fatalf("insertion order not preserved: %+v", got.Tasks)
	}
}

func TestNewSQLiteStoreRejectsNilDB(t *testing.T) {
	var db *sql.DB
	if _, err := NewSQLiteStore(db); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestSQLiteLoadNormalizesEnums(t *testing.T) {
	store := setupStore(t)
	if err := store.Save(t.Context(), sampleDataset()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.db.Exec(`UPDATE tasks SET priority = 'HIGH', recurrence = 'Mensal' WHERE id = 1`); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := store.db.Exec(`UPDATE tasks SET priority = 'urgent', recurrence = 'hourly' WHERE id = 4`); err != nil {
		t.Fatalf("update: %v", err)
	}
	ds, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.Tasks[0].Priority != model.PriorityHigh || ds.Tasks[0].Recurrence != model.RecurrenceMonthly {
		t.Fatalf("stored enums not normalized: %+v", ds.Tasks[0])
	}
	if ds.Tasks[1].Priority != model.PriorityNone || ds.Tasks[1].Recurrence != model.RecurrenceNever {
		t.Fatalf("unknown enums not defaulted: %+v", ds.Tasks[1])
	}
}

func TestSQLiteLoadRejectsInvalidRows(t *testing.T) {
	cases := map[string]string{
		"empty title":         `UPDATE tasks SET title = ' ' WHERE id = 1`,
		"duplicate list name": `UPDATE lists SET name = 'WORK' WHERE id = 1`,
		"empty list name":     `UPDATE lists SET name = '' WHERE id = 3`,
	}
	for name, stmt := range cases {
		store := setupStore(t)
		if err := store.Save(t.Context(), sampleDataset()); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		if _, err := store.db.Exec(stmt); err != nil {
			t.Fatalf("%s: update: %v", name, err)
		}
		ds, err := store.Load(t.Context())
		if !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", name, err)
		}
		if len(ds.Lists) != 1 || ds.Lists[0].Name != DefaultListName {
			t.Fatalf("%s: expected default dataset, got %+v", name, ds.Lists)
		}
	}
}
