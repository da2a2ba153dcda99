// Package storage provides the collection persistence used by all
// repositories: each collection is a JSON array in a single file, loaded
// whole into memory on every read and serialized whole on every write.
// There is no locking and no cross-collection transaction; two concurrent
// writers to the same collection race and the last write wins.
package storage

// Store is the authoritative backend for one collection.
type Store[T any] interface {
	LoadAll() ([]T, error)
	SaveAll(items []T) error
}

// MemStore is an in-memory Store used by tests.
type MemStore[T any] struct {
	Items []T

	// SaveCount tracks how many times SaveAll ran, letting tests assert
	// that a write (or a cascade) actually persisted.
	SaveCount int

	LoadErr error
	SaveErr error
}

func NewMemStore[T any](items ...T) *MemStore[T] {
	return &MemStore[T]{Items: items}
}

func (m *MemStore[T]) LoadAll() ([]T, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]T, len(m.Items))
	copy(out, m.Items)
	return out, nil
}

func (m *MemStore[T]) SaveAll(items []T) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Items = make([]T, len(items))
	copy(m.Items, items)
	m.SaveCount++
	return nil
}
