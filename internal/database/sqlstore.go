package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type dialect struct {
	get string
	set string
}

var (
	dialectSQLite = dialect{
		get: `SELECT value FROM kv WHERE key = ?`,
		set: `INSERT INTO kv (key, value) VALUES (?, ?)
		      ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	}
	dialectPostgres = dialect{
		get: `SELECT value FROM kv WHERE key = $1`,
		set: `INSERT INTO kv (key, value) VALUES ($1, $2)
		      ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	}
)

// SQLStore keeps every record as one row of the kv table.
type SQLStore struct {
	db *sql.DB
	d  dialect
}

// NewSQLiteStore wraps a database opened by New.
func NewSQLiteStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, d: dialectSQLite}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.d.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.d.set, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
