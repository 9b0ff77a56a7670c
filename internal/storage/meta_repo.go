package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const MetaLastDailyReset = "last_daily_reset"

// MetaRepo is a small key/value store, used for the last-reset gate.
type MetaRepo struct {
	db DBTX
}

func NewMetaRepo(db DBTX) *MetaRepo {
	return &MetaRepo{db: db}
}

func (r *MetaRepo) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("meta get: %w", err)
	}
	return v, true, nil
}

func (r *MetaRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("meta set: %w", err)
	}
	return nil
}

// GetTime parses a stored RFC3339 timestamp; missing key yields nil.
func (r *MetaRepo) GetTime(ctx context.Context, key string) (*time.Time, error) {
	v, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("meta parse time %q: %w", key, err)
	}
	return &t, nil
}

func (r *MetaRepo) SetTime(ctx context.Context, key string, t time.Time) error {
	return r.Set(ctx, key, t.Format(time.RFC3339))
}
