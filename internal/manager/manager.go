// Package manager owns the in-memory lists and tasks, enforces their
// invariants and writes the whole dataset back to its store after every
// mutation.
package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

// Manager is not safe for concurrent use; it expects a single owner.
type Manager struct {
	store      storage.Store
	logger     *slog.Logger
	lists      []model.TaskList
	tasks      []model.Task
	nextListID int
	nextTaskID int
	syncErr    error
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New loads the dataset from store. Load failures never abort construction:
// the store hands back the default dataset, and for anything other than a
// corrupt document the failure stays visible through SyncErr.
func New(ctx context.Context, store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	ds, err := store.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrCorrupt):
		m.logger.Warn("stored data unreadable, starting with default list", "err", err)
	default:
		m.logger.Error("could not load stored data, starting with default list", "err", err)
		m.syncErr = fmt.Errorf("load data: %w", err)
	}
	ds = ds.Normalize()
	m.lists = ds.Lists
	m.tasks = ds.Tasks
	m.nextListID = ds.NextListID
	m.nextTaskID = ds.NextTaskID
	return m
}

// SyncErr reports the last storage failure that has not been resolved by a
// later successful save. A non-nil value means the stored copy is stale.
func (m *Manager) SyncErr() error {
	return m.syncErr
}

// Flush saves the current state regardless of pending changes.
func (m *Manager) Flush(ctx context.Context) error {
	return m.persist(ctx)
}

// Snapshot returns a deep copy of the current dataset.
func (m *Manager) Snapshot() storage.Dataset {
	return storage.Dataset{
		Lists:      m.lists,
		Tasks:      m.tasks,
		NextListID: m.nextListID,
		NextTaskID: m.nextTaskID,
	}.Clone()
}

func (m *Manager) persist(ctx context.Context) error {
	if err := m.store.Save(ctx, m.Snapshot()); err != nil {
		m.syncErr = err
		m.logger.Error("save failed, in-memory state kept", "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	m.syncErr = nil
	return nil
}

func (m *Manager) allocListID() int {
	id := m.nextListID
	m.nextListID++
	return id
}

func (m *Manager) allocTaskID() int {
	id := m.nextTaskID
	m.nextTaskID++
	return id
}
