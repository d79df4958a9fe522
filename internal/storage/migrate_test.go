package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateTracksSchemaVersion(t *testing.T) {
	db := openTestDB(t)

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	v, err := schemaVersion(db)
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if v != 1 {
		t.Fatalf("expected version 1 after up, got %d", v)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if v, _ = schemaVersion(db); v != 0 {
		t.Fatalf("expected version 0 after down, got %d", v)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`).Scan(&n); err != nil {
		t.Fatalf("inspect schema: %v", err)
	}
	if n != 0 {
		t.Fatal("tasks table survived migrate down")
	}
}

func TestMigrateRoundTripCompatibility(t *testing.T) {
	db := openTestDB(t)

	for i, step := range []func(*sql.DB) error{MigrateUp, MigrateUp, MigrateDown, MigrateUp} {
		if err := step(db); err != nil {
			t.Fatalf("migration step %d failed: %v", i, err)
		}
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save(t.Context(), sampleDataset()); err != nil {
		t.Fatalf("save after roundtrip failed: %v", err)
	}
	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("load after roundtrip failed: %v", err)
	}
	if len(got.Tasks) != 2 || got.Tasks[0].Title != "Buy milk" {
		t.Fatalf("unexpected tasks after roundtrip: %+v", got.Tasks)
	}
}

func TestListMigrationsOrdersByVersion(t *testing.T) {
	steps, err := listMigrations(".up.sql")
	if err != nil {
		t.Fatalf("list migrations: %v", err)
	}
	if len(steps) == 0 || steps[0].version != 1 {
		t.Fatalf("unexpected migrations: %+v", steps)
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].version <= steps[i-1].version {
			t.Fatalf("migrations out of order: %+v", steps)
		}
	}
}
