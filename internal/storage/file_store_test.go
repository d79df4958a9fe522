package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileStoreMissingFileYieldsDefault(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tasks.json"), FormatJSON, nil)
	ds, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if !reflect.DeepEqual(ds, DefaultDataset()) {
		t.Fatalf("expected default dataset, got %#v", ds)
	}
}

func TestFileStoreEmptyFileYieldsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := NewFileStore(path, FormatJSON, nil).Load(t.Context())
	if err != nil {
		t.Fatalf("load empty file: %v", err)
	}
	if len(ds.Lists) != 1 || ds.Lists[0].Name != DefaultListName {
		t.Fatalf("expected default list, got %+v", ds.Lists)
	}
}

func TestFileStoreCorruptFileMovedAside(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := NewFileStore(path, FormatJSON, nil).Load(t.Context())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if !reflect.DeepEqual(ds, DefaultDataset()) {
		t.Fatalf("expected default dataset on corrupt file, got %#v", ds)
	}
	if _, statErr := os.Stat(path + ".corrupt"); statErr != nil {
		t.Fatalf("corrupt file not preserved: %v", statErr)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("corrupt file still at original path: %v", statErr)
	}
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "tasks."+string(format))
		store := NewFileStore(path, format, nil)
		ds := sampleDataset()
		if err := store.Save(t.Context(), ds); err != nil {
			t.Fatalf("%s save: %v", format, err)
		}
		got, err := store.Load(t.Context())
		if err != nil {
			t.Fatalf("%s load: %v", format, err)
		}
		if !reflect.DeepEqual(got, ds) {
			t.Fatalf("%s roundtrip mismatch:\n got %#v\nwant %#v", format, got, ds)
		}

		entries, err := os.ReadDir(filepath.Dir(path))
		if err != nil {
			t.Fatalf("read dir: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected only the data file after save, found %d entries", len(entries))
		}
	}
}

func TestFileStoreSaveReportsFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewFileStore(filepath.Join(blocker, "tasks.json"), FormatJSON, nil)
	if err := store.Save(t.Context(), DefaultDataset()); err == nil {
		t.Fatal("expected save under a regular file to fail")
	}
}
