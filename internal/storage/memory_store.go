package storage

import "context"

// MemoryStore keeps the dataset in process. SaveErr, when set, is returned
// by every Save and the stored copy is left unchanged.
type MemoryStore struct {
	data    *Dataset
	LoadErr error
	SaveErr error
	Saves   int
}

// NewMemoryStore starts empty; Load then yields DefaultDataset.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith seeds the store with ds.
func NewMemoryStoreWith(ds Dataset) *MemoryStore {
	clone := ds.Clone()
	return &MemoryStore{data: &clone}
}

func (s *MemoryStore) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return DefaultDataset(), err
	}
	if s.LoadErr != nil {
		return DefaultDataset(), s.LoadErr
	}
	if s.data == nil {
		return DefaultDataset(), nil
	}
	return s.data.Clone().Normalize(), nil
}

func (s *MemoryStore) Save(ctx context.Context, ds Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.SaveErr != nil {
		return s.SaveErr
	}
	clone := ds.Clone()
	s.data = &clone
	s.Saves++
	return nil
}

// Snapshot returns a copy of the last saved dataset and whether one exists.
func (s *MemoryStore) Snapshot() (Dataset, bool) {
	if s.data == nil {
		return Dataset{}, false
	}
	return s.data.Clone(), true
}
