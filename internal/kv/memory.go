package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Failures can be injected for tests.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	writes int
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.writes++
	return nil
}

// SetMulti implements Store.
func (m *Memory) SetMulti(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	for k, v := range entries {
		m.data[k] = v
	}
	m.writes++
	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }

// FailGets makes every subsequent Get return err. Pass nil to clear.
func (m *Memory) FailGets(err error) {
	m.mu.Lock()
	m.getErr = err
	m.mu.Unlock()
}

// FailSets makes every subsequent Set and SetMulti return err. Pass nil to clear.
func (m *Memory) FailSets(err error) {
	m.mu.Lock()
	m.setErr = err
	m.mu.Unlock()
}

// Writes returns the number of successful write calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
