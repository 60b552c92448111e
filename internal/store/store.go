// Package store is the key-value cache the data-source tiers persist into.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for keys that were never stored or were deleted.
var ErrNotFound = errors.New("store: key not found")

// Entry is a stored value and the time it was written.
type Entry struct {
	Value    []byte
	StoredAt time.Time
}

// Store persists opaque values by key.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, value []byte, at time.Time) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open connects to the store named by dsn:
//
//	memory://                 process-local, lost on exit
//	sqlite://path/to/file.db  SQLite file
//	postgres://user@host/db   PostgreSQL
func Open(ctx context.Context, dsn string) (Store, error) {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return nil, fmt.Errorf("store: invalid DSN %q (expected scheme://...)", dsn)
	}
	switch scheme {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return openSQL(ctx, "sqlite", rest)
	case "postgres", "postgresql":
		return openSQL(ctx, "postgres", dsn)
	}
	return nil, fmt.Errorf("store: unsupported scheme %q", scheme)
}

func openSQL(ctx context.Context, driver, dsn string) (Store, error) {
	s, err := OpenSQL(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Get(_ context.Context, key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return Entry{Value: append([]byte(nil), e.Value...), StoredAt: e.StoredAt}, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{Value: append([]byte(nil), value...), StoredAt: at}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *Memory) Close() error { return nil }
