package slots

import (
	"context"
	"maps"
	"sync"
)

// MemoryRepository is an in-process Repository. It backs unit tests of the
// layers above storage and can inject write failures.
type MemoryRepository struct {
	mu     sync.Mutex
	values map[string]string

	// SetErr, when non-nil, is returned by Set and Delete without
	// touching the stored value.
	SetErr error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string]string)}
}

func (m *MemoryRepository) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryRepository) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	delete(m.values, key)
	return nil
}

func (m *MemoryRepository) List(_ context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values), nil
}
