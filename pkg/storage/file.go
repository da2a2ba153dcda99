package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Collection file names, one JSON array per collection.
const (
	RoomsFile    = "rooms.json"
	BookingsFile = "bookings.json"
	MoviesFile   = "movies.json"
	ReviewsFile  = "reviews.json"
	TasksFile    = "tasks.json"
)

// FileStore persists one collection as an indented JSON array. A missing
// file reads as an empty collection so services start against a bare data
// directory without any migration step.
type FileStore[T any] struct {
	path string
}

func NewFileStore[T any](dataDir, fileName string) *FileStore[T] {
	return &FileStore[T]{path: filepath.Join(dataDir, fileName)}
}

func (s *FileStore[T]) LoadAll() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *FileStore[T]) SaveAll(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}
