package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore keeps the dataset in a single JSON or YAML document. Saves go
// through a temp file in the same directory followed by a rename, so a crash
// mid-write leaves the previous document intact.
type FileStore struct {
	path   string
	format Format
	logger *slog.Logger
}

func NewFileStore(path string, format Format, logger *slog.Logger) *FileStore {
	if format == "" {
		format = FormatJSON
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &FileStore{path: path, format: format, logger: logger}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns DefaultDataset with a nil error when the file is missing or
// blank. A document that fails to decode is moved to <path>.corrupt and
// reported as ErrCorrupt.
func (s *FileStore) Load(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return DefaultDataset(), err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info("data file not found, starting with default list", "path", s.path)
			return DefaultDataset(), nil
		}
		return DefaultDataset(), fmt.Errorf("read data file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		s.logger.Info("data file empty, starting with default list", "path", s.path)
		return DefaultDataset(), nil
	}
	ds, err := Decode(raw, s.format)
	if err != nil {
		aside := s.path + ".corrupt"
		if renameErr := os.Rename(s.path, aside); renameErr != nil {
			s.logger.Error("could not move corrupt data file aside", "path", s.path, "err", renameErr)
		} else {
			s.logger.Warn("corrupt data file moved aside", "path", s.path, "moved_to", aside, "err", err)
		}
		return DefaultDataset(), fmt.Errorf("load %s: %w", s.path, err)
	}
	return ds, nil
}

func (s *FileStore) Save(ctx context.Context, ds Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := Encode(ds, s.format)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	name := tmp.Name()
	_, err = tmp.Write(payload)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(name, s.path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("rename data file: %w", err)
	}
	return nil
}
