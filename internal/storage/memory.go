package storage

import (
	"fmt"
	"sync"
)

// Memory is an in-process Provider.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int
}

// NewMemory returns an empty provider.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Read returns a copy of the value under key.
func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("storage: read %s: %w", key, ErrNotExist)
	}
	return append([]byte(nil), v...), nil
}

// Write stores a copy of data under key.
func (m *Memory) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Writes returns how many writes the provider has accepted.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
