// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer for ephemeral sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores blobs keyed by owner, then by key.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for missing keys.

package store

import (
	"bytes"
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("store: not found")

// Store defines the key-value persistence used for session snapshots.
// Values are opaque blobs; owner scopes keys to a single player.
// Implementations may be backed by memory (this package), SQLite, etc.
type Store interface {
	// Set persists or replaces the value under (owner, key).
	Set(ctx context.Context, owner, key string, value []byte) error

	// Get retrieves the value under (owner, key).
	// Returns ErrNotFound if nothing is stored.
	Get(ctx context.Context, owner, key string) ([]byte, error)

	// Claim moves every key of from to to, unless to already has keys.
	// It reports whether anything moved.
	Claim(ctx context.Context, from, to string) (bool, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex                 // guards data
	data map[string]map[string][]byte // owner -> key -> value
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{data: make(map[string]map[string][]byte)}
}

// Set stores a private copy of value.
func (m *memory) Set(ctx context.Context, owner, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kv, ok := m.data[owner]
	if !ok {
		kv = make(map[string][]byte)
		m.data[owner] = kv
	}
	kv[key] = bytes.Clone(value)
	return nil
}

// Get returns a copy of the stored value or ErrNotFound.
func (m *memory) Get(ctx context.Context, owner, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[owner][key]; ok {
		return bytes.Clone(v), nil
	}
	return nil, ErrNotFound
}

// Claim re-homes from's keys under to.
func (m *memory) Claim(ctx context.Context, from, to string) (bool, error) {
	if from == "" || to == "" || from == to {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.data[from]
	if !ok || len(src) == 0 || len(m.data[to]) > 0 {
		return false, nil
	}
	m.data[to] = src
	delete(m.data, from)
	return true, nil
}
