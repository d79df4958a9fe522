package storage

import (
	"context"
	"errors"
)

var (
	// ErrCorrupt reports a stored document that could not be decoded. Load
	// returns the default dataset along with it.
	ErrCorrupt = errors.New("storage: corrupt data")
	ErrFormat  = errors.New("storage: unsupported format")
)

// Store loads and saves the complete dataset. Implementations never return
// a partial dataset: on failure Load returns DefaultDataset.
type Store interface {
	Load(ctx context.Context) (Dataset, error)
	Save(ctx context.Context, ds Dataset) error
}
