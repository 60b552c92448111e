package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	sqlite, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	at := time.UnixMilli(1735862400123)

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "apiMinistryData")
			assert.True(t, errors.Is(err, ErrNotFound))

			require.NoError(t, s.Put(ctx, "apiMinistryData", []byte(`[{"date":"2025-01-05"}]`), at))

			e, err := s.Get(ctx, "apiMinistryData")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"date":"2025-01-05"}]`, string(e.Value))
			assert.Equal(t, at.UnixMilli(), e.StoredAt.UnixMilli())
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	first := time.UnixMilli(1000)
	second := time.UnixMilli(2000)

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "k", []byte("one"), first))
			require.NoError(t, s.Put(ctx, "k", []byte("two"), second))

			e, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "two", string(e.Value))
			assert.Equal(t, int64(2000), e.StoredAt.UnixMilli())
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "k", []byte("v"), time.Now()))
			require.NoError(t, s.Delete(ctx, "k"))
			require.NoError(t, s.Delete(ctx, "never-stored"))

			_, err := s.Get(ctx, "k")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestSQLStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "cache.db")

	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "ministryData", []byte("[]"), time.UnixMilli(42)))
	require.NoError(t, s.Close())

	s, err = Open(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	e, err := s.Get(ctx, "ministryData")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(e.Value))
}

func TestOpenRejectsBadDSN(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "roster-cache.db")
	assert.Error(t, err)

	_, err = Open(ctx, "redis://localhost:6379")
	assert.Error(t, err)

	s, err := Open(ctx, "memory://")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	v := []byte("abc")

	require.NoError(t, m.Put(ctx, "k", v, time.Now()))
	v[0] = 'x'

	e, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(e.Value))
}
