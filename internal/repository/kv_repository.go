package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// KVRepository persists opaque values in the kv_store table. It satisfies
// storage.Storage.
type KVRepository struct {
	db  *sql.DB
	now func() time.Time
}

type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db, now: time.Now}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := r.GetEntry(ctx, key)
	if err == ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Value, true, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		formatTime(r.now()),
	)
	if err != nil {
		return errors.Wrapf(err, "set %s", key)
	}
	return nil
}

func (r *KVRepository) GetEntry(ctx context.Context, key string) (*Entry, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT key, value, updated_at FROM kv_store WHERE key = ?`,
		key,
	)
	return scanEntry(row)
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "delete %s", key)
	}
	return nil
}

func (r *KVRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM kv_store ORDER BY key`)
	if err != nil {
		return nil, errors.Wrap(err, "list keys")
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrap(err, "scan key")
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate keys")
	}
	return keys, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (*Entry, error) {
	var entry Entry
	var updatedAt string
	if err := s.Scan(&entry.Key, &entry.Value, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "scan entry")
	}

	parsed, err := parseTime(updatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "parse entry updated_at")
	}
	entry.UpdatedAt = parsed
	return &entry, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime accepts RFC3339 with or without fractional seconds.
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse updated_at %q", raw)
	}
	return t.UTC(), nil
}
