package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Upsert inserts a definition row, preserving unlock state if it already exists.
func (r *AchievementRepo) Upsert(ctx context.Context, a Achievement) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (id, title, description, icon, condition_type, condition_value)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			icon = excluded.icon,
			condition_type = excluded.condition_type,
			condition_value = excluded.condition_value
	`, a.ID, a.Title, a.Description, a.Icon, a.ConditionType, a.ConditionValue)
	if err != nil {
		return fmt.Errorf("achievement upsert: %w", err)
	}
	return nil
}

func (r *AchievementRepo) Get(ctx context.Context, id string) (*Achievement, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, icon, condition_type, condition_value, unlocked, unlocked_at
		FROM achievements WHERE id = ?
	`, id)
	return scanAchievement(row)
}

func (r *AchievementRepo) ListAll(ctx context.Context) ([]Achievement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, icon, condition_type, condition_value, unlocked, unlocked_at
		FROM achievements ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}

// Unlock is a one-way transition; an already-unlocked row keeps its original timestamp.
func (r *AchievementRepo) Unlock(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE achievements SET unlocked = 1, unlocked_at = ?
		WHERE id = ? AND unlocked = 0
	`, at, id)
	if err != nil {
		return fmt.Errorf("achievement unlock: %w", err)
	}
	return nil
}

func scanAchievement(row scanner) (*Achievement, error) {
	var (
		a          Achievement
		unlocked   int
		unlockedAt sql.NullTime
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Icon, &a.ConditionType, &a.ConditionValue, &unlocked, &unlockedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("achievement scan: %w", err)
	}
	a.Unlocked = unlocked != 0
	if unlockedAt.Valid {
		v := unlockedAt.Time
		a.UnlockedAt = &v
	}
	return &a, nil
}
