package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sandeepkv93/tasklist/internal/model"
)

const (
	counterNextList = "next_list_id"
	counterNextTask = "next_task_id"
)

// SQLiteStore persists the dataset in a SQLite database. Every Save rewrites
// all rows inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// OpenSQLite opens path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps the foreign_keys pragma in effect.
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (Dataset, error) {
	ds := Dataset{
		Lists: make([]model.TaskList, 0),
		Tasks: make([]model.Task, 0),
	}
	counters, err := s.loadCounters(ctx)
	if err != nil {
		return DefaultDataset(), err
	}
	ds.NextListID = counters[counterNextList]
	ds.NextTaskID = counters[counterNextTask]

	if ds.Lists, err = s.loadLists(ctx); err != nil {
		return DefaultDataset(), err
	}
	if len(ds.Lists) == 0 && ds.NextListID == 0 {
		return DefaultDataset(), nil
	}
	if ds.Tasks, err = s.loadTasks(ctx); err != nil {
		return DefaultDataset(), err
	}
	for _, l := range ds.Lists {
		if err := l.Validate(); err != nil {
			return DefaultDataset(), fmt.Errorf("%w: list %d: %w", ErrCorrupt, l.ID, err)
		}
	}
	if err := ds.checkUnique(); err != nil {
		return DefaultDataset(), fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return ds.Normalize(), nil
}

func (s *SQLiteStore) loadCounters(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM counters`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var value int
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadLists(ctx context.Context) ([]model.TaskList, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM lists ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TaskList, 0)
	for rows.Next() {
		var item model.TaskList
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadTasks(ctx context.Context) ([]model.Task, error) {
	tags, err := s.loadTags(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, list_id, completed, due_date, priority, notes, recurrence
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		task.Tags = tags[task.ID]
		if task.Tags == nil {
			task.Tags = []string{}
		}
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("%w: task %d: %w", ErrCorrupt, task.ID, err)
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) loadTags(ctx context.Context) (map[int][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT task_id, tag FROM task_tags ORDER BY task_id ASC, position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]string)
	for rows.Next() {
		var taskID int
		var tag string
		if err := rows.Scan(&taskID, &tag); err != nil {
			return nil, err
		}
		out[taskID] = append(out[taskID], tag)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, ds Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := s.replaceAll(ctx, tx, ds); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) replaceAll(ctx context.Context, tx *sql.Tx, ds Dataset) error {
	for _, stmt := range []string{`DELETE FROM task_tags`, `DELETE FROM tasks`, `DELETE FROM lists`, `DELETE FROM counters`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}
	for i, l := range ds.Lists {
		if _, err := tx.ExecContext(ctx, `INSERT INTO lists (id, name, position) VALUES (?, ?, ?)`, l.ID, l.Name, i); err != nil {
			return fmt.Errorf("insert list %d: %w", l.ID, err)
		}
	}
	for i, t := range ds.Tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, title, list_id, completed, due_date, priority, notes, recurrence, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.ListID, boolInt(t.Completed), nullDate(t.DueDate), string(t.Priority), t.Notes, string(t.Recurrence), i,
		)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
		for pos, tag := range t.Tags {
			if _, err := tx.ExecContext(ctx, `INSERT INTO task_tags (task_id, position, tag) VALUES (?, ?, ?)`, t.ID, pos, tag); err != nil {
				return fmt.Errorf("insert tag for task %d: %w", t.ID, err)
			}
		}
	}
	for name, value := range map[string]int{counterNextList: ds.NextListID, counterNextTask: ds.NextTaskID} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO counters (name, value) VALUES (?, ?)`, name, value); err != nil {
			return fmt.Errorf("insert counter %s: %w", name, err)
		}
	}
	return nil
}

func nullDate(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.Format(model.DateLayout)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var completed int
	var due sql.NullString
	var priority, recurrence string
	if err := s.Scan(&out.ID, &out.Title, &out.ListID, &completed, &due, &priority, &out.Notes, &recurrence); err != nil {
		return model.Task{}, err
	}
	out.Completed = completed == 1
	out.Priority, out.Recurrence = decodeEnums(priority, recurrence)
	if due.Valid && due.String != "" {
		d, err := model.ParseDate(due.String)
		if err != nil {
			return model.Task{}, fmt.Errorf("%w: task %d: %w", ErrCorrupt, out.ID, err)
		}
		out.DueDate = &d
	}
	return out, nil
}
