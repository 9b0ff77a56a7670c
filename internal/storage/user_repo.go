package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const DefaultUserID = "default-user"

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, avatar, level, experience, total_points, available_points,
			longest_streak, total_tasks_completed, perfect_days, unlocked_achievements,
			created_at, last_login_at
		FROM users WHERE id = ?
	`, id)

	var u User
	var unlockedRaw sql.NullString
	if err := row.Scan(
		&u.ID, &u.Name, &u.Avatar, &u.Level, &u.Experience, &u.TotalPoints, &u.AvailablePoints,
		&u.LongestStreak, &u.TotalTasksCompleted, &u.PerfectDays, &unlockedRaw,
		&u.CreatedAt, &u.LastLoginAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}

	if unlockedRaw.Valid && unlockedRaw.String != "" {
		if err := json.Unmarshal([]byte(unlockedRaw.String), &u.UnlockedAchievements); err != nil {
			return nil, fmt.Errorf("unmarshal unlocked achievements: %w", err)
		}
	}
	return &u, nil
}

// GetOrCreateDefault returns the single local user, seeding the row on first run.
func (r *UserRepo) GetOrCreateDefault(ctx context.Context) (*User, error) {
	u, err := r.Get(ctx, DefaultUserID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	now := time.Now()
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, avatar, unlocked_achievements, created_at, last_login_at)
		VALUES (?, ?, ?, '[]', ?, ?)
	`, DefaultUserID, "Kiddo", "😊", now, now); err != nil {
		return nil, fmt.Errorf("user insert: %w", err)
	}
	return r.Get(ctx, DefaultUserID)
}

func (r *UserRepo) Update(ctx context.Context, u *User) error {
	unlocked, err := json.Marshal(u.UnlockedAchievements)
	if err != nil {
		return fmt.Errorf("marshal unlocked achievements: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, avatar = ?, level = ?, experience = ?, total_points = ?,
			available_points = ?, longest_streak = ?, total_tasks_completed = ?,
			perfect_days = ?, unlocked_achievements = ?, last_login_at = ?
		WHERE id = ?
	`, u.Name, u.Avatar, u.Level, u.Experience, u.TotalPoints,
		u.AvailablePoints, u.LongestStreak, u.TotalTasksCompleted,
		u.PerfectDays, string(unlocked), u.LastLoginAt, u.ID)
	if err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}

func (r *UserRepo) TouchLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("user touch login: %w", err)
	}
	return nil
}
