package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is the swappable plain-file backend: one JSON document, written
// via rename so a crash mid-save never leaves a torn snapshot.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) (UserProgress, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProgress(), nil
		}
		return DefaultProgress(), fmt.Errorf("progress read: %w", err)
	}
	return Hydrate(raw), nil
}

func (s *FileStore) Save(ctx context.Context, p UserProgress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("progress encode: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".progress-*.json")
	if err != nil {
		return fmt.Errorf("progress write: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("progress write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("progress write: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("progress write: %w", err)
	}
	return nil
}
