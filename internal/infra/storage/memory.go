package storage

import (
	"context"
	"sync"
)

type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close makes every later call fail with ErrClosed.
func (m *MemoryKV) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}
