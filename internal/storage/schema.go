package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			avatar TEXT NOT NULL,
			level INTEGER DEFAULT 1,
			experience INTEGER DEFAULT 0,
			total_points INTEGER DEFAULT 0,
			available_points INTEGER DEFAULT 0,
			longest_streak INTEGER DEFAULT 0,
			total_tasks_completed INTEGER DEFAULT 0,
			perfect_days INTEGER DEFAULT 0,
			unlocked_achievements TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_login_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			icon TEXT NOT NULL DEFAULT '📝',
			difficulty TEXT NOT NULL DEFAULT 'medium',

			points INTEGER DEFAULT 0,
			streak INTEGER DEFAULT 0,
			last_completed_date DATETIME,

			repeat_days TEXT,
			due_date DATETIME,
			checklist TEXT,

			completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			sort_order INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS rewards (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cost INTEGER NOT NULL,
			icon TEXT NOT NULL DEFAULT '🎁',
			category TEXT NOT NULL DEFAULT 'activity',
			redeemed INTEGER DEFAULT 0,
			redeemed_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			icon TEXT NOT NULL,
			condition_type TEXT NOT NULL,
			condition_value INTEGER NOT NULL,
			unlocked INTEGER DEFAULT 0,
			unlocked_at DATETIME
		);`,
		// Written only when a perfect day is recorded; feeds the weekly stats.
		`CREATE TABLE IF NOT EXISTS daily_history (
			id TEXT PRIMARY KEY,
			date DATETIME NOT NULL,
			completed_tasks INTEGER NOT NULL,
			total_tasks INTEGER NOT NULL,
			is_perfect_day INTEGER NOT NULL
		);`,
		// Key/value store for reset gating (last_daily_reset).
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_kind ON tasks(kind);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_sort_order ON tasks(sort_order);`,
		`CREATE INDEX IF NOT EXISTS idx_daily_history_date ON daily_history(date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
