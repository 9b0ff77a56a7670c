package storage

import (
	"context"
	"fmt"
	"time"
)

type HistoryRepo struct {
	db DBTX
}

func NewHistoryRepo(db DBTX) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Insert(ctx context.Context, h DailyHistory) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_history (id, date, completed_tasks, total_tasks, is_perfect_day)
		VALUES (?, ?, ?, ?, ?)
	`, h.ID, h.Date, h.CompletedTasks, h.TotalTasks, boolToInt(h.IsPerfectDay))
	if err != nil {
		return fmt.Errorf("history insert: %w", err)
	}
	return nil
}

// ListSince returns entries on or after the given time, oldest first.
func (r *HistoryRepo) ListSince(ctx context.Context, since time.Time) ([]DailyHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, completed_tasks, total_tasks, is_perfect_day
		FROM daily_history
		WHERE date >= ?
		ORDER BY date ASC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	var out []DailyHistory
	for rows.Next() {
		var h DailyHistory
		var perfect int
		if err := rows.Scan(&h.ID, &h.Date, &h.CompletedTasks, &h.TotalTasks, &perfect); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		h.IsPerfectDay = perfect != 0
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}
	return out, nil
}
