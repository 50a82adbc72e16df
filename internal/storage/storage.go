// Package storage is the durable key-value layer behind the wallet session.
package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when key has no value.
var ErrNotFound = errors.New("key not found")

// ErrCorrupt is returned by Get when the backing data can't be parsed.
var ErrCorrupt = errors.New("storage is corrupt")

// KV is a minimal durable key-value store, the Go side of browser local storage.
type KV interface {
	// Get returns the value of key, ErrNotFound when there is none.
	Get(key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. A missing key is not an error.
	Delete(key string) error
}

// MemoryKV keeps values in process memory.
type MemoryKV struct {
	mu    sync.RWMutex
	State map[string][]byte
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{State: make(map[string][]byte)}
}

// Get returns a copy of the value of key.
func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.State[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value.
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.State[key] = v
	return nil
}

// Delete removes key.
func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.State, key)
	return nil
}
