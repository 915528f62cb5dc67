package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store. The Fail* hooks let callers simulate a
// failing backend; a non-nil error returned from a hook aborts the call.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string

	FailGet    func(key string) error
	FailSet    func(key string) error
	FailRemove func(key string) error

	gets int
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	m.gets++
	m.mu.Unlock()

	if m.FailGet != nil {
		if err := m.FailGet(key); err != nil {
			return "", false, err
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if m.FailSet != nil {
		if err := m.FailSet(key); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	if m.FailRemove != nil {
		if err := m.FailRemove(key); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Gets returns how many Get calls reached the store
func (m *Memory) Gets() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gets
}

// Keys returns the number of stored keys
func (m *Memory) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
