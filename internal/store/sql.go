package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS roster_cache (
  cache_key  VARCHAR(255) PRIMARY KEY,
  value      TEXT NOT NULL,
  stored_at  BIGINT NOT NULL
)`

// SQL is a Store backed by a roster_cache table. Timestamps are kept as
// Unix milliseconds.
type SQL struct {
	db *sqlx.DB
}

type cacheRow struct {
	Value    string `db:"value"`
	StoredAt int64  `db:"stored_at"`
}

// OpenSQL connects with the given database/sql driver ("sqlite" or
// "postgres") and creates the cache table if needed.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQL, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cache: %w", driver, err)
	}
	if driver == "sqlite" {
		// One writer at a time keeps SQLite from returning SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s cache: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Get(ctx context.Context, key string) (Entry, error) {
	var row cacheRow
	query := s.db.Rebind(`SELECT value, stored_at FROM roster_cache WHERE cache_key = ?`)
	if err := s.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("failed to read cache key %q: %w", key, err)
	}
	return Entry{Value: []byte(row.Value), StoredAt: time.UnixMilli(row.StoredAt)}, nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte, at time.Time) error {
	query := s.db.Rebind(`INSERT INTO roster_cache (cache_key, value, stored_at) VALUES (?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at`)
	if _, err := s.db.ExecContext(ctx, query, key, string(value), at.UnixMilli()); err != nil {
		return fmt.Errorf("failed to write cache key %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	query := s.db.Rebind(`DELETE FROM roster_cache WHERE cache_key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete cache key %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
