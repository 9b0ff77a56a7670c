package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	ID          string
	Kind        string
	Title       string
	Description *string
	Icon        string
	Difficulty  string
	RepeatDays  []int
	DueDate     *time.Time
	Checklist   []ChecklistItem
	SortOrder   int
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) error {
	repeatJSON, err := marshalNullable(in.RepeatDays)
	if err != nil {
		return fmt.Errorf("marshal repeat days: %w", err)
	}
	checklistJSON, err := marshalNullable(in.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, kind, title, description, icon, difficulty,
			repeat_days, due_date, checklist, sort_order
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.ID, in.Kind, in.Title, in.Description, in.Icon, in.Difficulty,
		repeatJSON, in.DueDate, checklistJSON, in.SortOrder)
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

const taskColumns = `id, kind, title, description, icon, difficulty,
	points, streak, last_completed_date, repeat_days, due_date, checklist,
	completed, completed_at, created_at, sort_order`

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTaskRow(row)
}

// GetByPrefix resolves a task by unambiguous id prefix (CLI convenience).
func (r *TaskRepo) GetByPrefix(ctx context.Context, prefix string) (*Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id LIKE ? LIMIT 2`, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("task prefix query: %w", err)
	}
	defer rows.Close()

	var matches []*Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task prefix rows: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("task id prefix %q is ambiguous", prefix)
	}
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY sort_order ASC, created_at ASC`)
}

func (r *TaskRepo) ListByKind(ctx context.Context, kind string) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE kind = ? ORDER BY sort_order ASC, created_at ASC`, kind)
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

// UpdateCompletion persists the completion-cycle fields in one statement.
func (r *TaskRepo) UpdateCompletion(ctx context.Context, t *Task) error {
	checklistJSON, err := marshalNullable(t.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE tasks
		SET points = ?, streak = ?, last_completed_date = ?,
			completed = ?, completed_at = ?, checklist = ?
		WHERE id = ?
	`, t.Points, t.Streak, t.LastCompletedDate,
		boolToInt(t.Completed), t.CompletedAt, checklistJSON, t.ID)
	if err != nil {
		return fmt.Errorf("task update completion: %w", err)
	}
	return nil
}

type TaskUpdate struct {
	Title       string
	Description *string
	Icon        string
	Difficulty  string
	RepeatDays  []int
	DueDate     *time.Time
	Checklist   []ChecklistItem
}

func (r *TaskRepo) Update(ctx context.Context, id string, in TaskUpdate) error {
	repeatJSON, err := marshalNullable(in.RepeatDays)
	if err != nil {
		return fmt.Errorf("marshal repeat days: %w", err)
	}
	checklistJSON, err := marshalNullable(in.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, icon = ?, difficulty = ?,
			repeat_days = ?, due_date = ?, checklist = ?
		WHERE id = ?
	`, in.Title, in.Description, in.Icon, in.Difficulty,
		repeatJSON, in.DueDate, checklistJSON, id)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

func (r *TaskRepo) UpdateSortOrder(ctx context.Context, id string, order int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET sort_order = ? WHERE id = ?`, order, id)
	if err != nil {
		return fmt.Errorf("task update sort order: %w", err)
	}
	return nil
}

func (r *TaskRepo) MaxSortOrder(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), 0) FROM tasks`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("task max sort order: %w", err)
	}
	return n, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// marshalNullable keeps NULL in the column when the slice is nil, so "no
// repeat days set" stays distinguishable from "empty set".
func marshalNullable[T any](v []T) (*string, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		t             Task
		description   sql.NullString
		lastCompleted sql.NullTime
		repeatRaw     sql.NullString
		dueDate       sql.NullTime
		checklistRaw  sql.NullString
		completed     int
		completedAt   sql.NullTime
	)

	if err := row.Scan(
		&t.ID, &t.Kind, &t.Title, &description, &t.Icon, &t.Difficulty,
		&t.Points, &t.Streak, &lastCompleted, &repeatRaw, &dueDate, &checklistRaw,
		&completed, &completedAt, &t.CreatedAt, &t.SortOrder,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	if description.Valid {
		v := description.String
		t.Description = &v
	}
	if lastCompleted.Valid {
		v := lastCompleted.Time
		t.LastCompletedDate = &v
	}
	if dueDate.Valid {
		v := dueDate.Time
		t.DueDate = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		t.CompletedAt = &v
	}
	t.Completed = completed != 0

	if repeatRaw.Valid && repeatRaw.String != "" {
		if err := json.Unmarshal([]byte(repeatRaw.String), &t.RepeatDays); err != nil {
			return nil, fmt.Errorf("unmarshal repeat days: %w", err)
		}
	}
	if checklistRaw.Valid && checklistRaw.String != "" {
		if err := json.Unmarshal([]byte(checklistRaw.String), &t.Checklist); err != nil {
			return nil, fmt.Errorf("unmarshal checklist: %w", err)
		}
	}

	return &t, nil
}
