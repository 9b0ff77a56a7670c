package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

type CreateTaskInput struct {
	Kind        TaskKind
	Title       string
	Description *string
	Icon        string
	Difficulty  Difficulty
	RepeatDays  []int // daily tasks; nil means every day
	DueDate     *time.Time
	Checklist   []storage.ChecklistItem
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*storage.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Kind.IsValid() {
		return nil, fmt.Errorf("invalid task kind: %q", in.Kind)
	}
	if !in.Difficulty.IsValid() {
		in.Difficulty = DefaultDifficulty
	}
	icon := in.Icon
	if icon == "" {
		icon = "📝"
	}
	for _, d := range in.RepeatDays {
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid repeat day: %d", d)
		}
	}

	maxOrder, err := s.tasks.MaxSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	err = s.tasks.Insert(ctx, storage.TaskInsert{
		ID:          id,
		Kind:        string(in.Kind),
		Title:       title,
		Description: in.Description,
		Icon:        icon,
		Difficulty:  string(in.Difficulty),
		RepeatDays:  in.RepeatDays,
		DueDate:     in.DueDate,
		Checklist:   in.Checklist,
		SortOrder:   maxOrder + 1,
	})
	if err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, id)
}

type UpdateTaskInput struct {
	Title       string
	Description *string
	Icon        string
	Difficulty  Difficulty
	RepeatDays  []int
	DueDate     *time.Time
	Checklist   []storage.ChecklistItem
}

func (s *Service) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) error {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return err
	}
	if !in.Difficulty.IsValid() {
		return fmt.Errorf("invalid difficulty: %q", in.Difficulty)
	}

	t, err := resolveTask(ctx, s.tasks, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}

	return s.tasks.Update(ctx, t.ID, storage.TaskUpdate{
		Title:       title,
		Description: in.Description,
		Icon:        in.Icon,
		Difficulty:  string(in.Difficulty),
		RepeatDays:  in.RepeatDays,
		DueDate:     in.DueDate,
		Checklist:   in.Checklist,
	})
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	t, err := resolveTask(ctx, s.tasks, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}
	return s.tasks.Delete(ctx, t.ID)
}

// ReorderTasks rewrites sort order to match the given id sequence, as one batch.
func (s *Service) ReorderTasks(ctx context.Context, ids []string) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := storage.NewTaskRepo(tx)
		for i, id := range ids {
			if err := tasks.UpdateSortOrder(ctx, id, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetTask resolves a task by id or unambiguous prefix.
func (s *Service) GetTask(ctx context.Context, id string) (*storage.Task, error) {
	t, err := resolveTask(ctx, s.tasks, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

// ListCompleted returns tasks currently marked complete, in list order.
func (s *Service) ListCompleted(ctx context.Context) ([]storage.Task, error) {
	all, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []storage.Task
	for _, t := range all {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListTodayTasks returns what is on the plate for the given day: todo tasks
// always, daily tasks only when due.
func (s *Service) ListTodayTasks(ctx context.Context, now time.Time) ([]storage.Task, error) {
	all, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	weekday := now.Weekday()
	var out []storage.Task
	for _, t := range all {
		switch TaskKind(t.Kind) {
		case KindTodo:
			out = append(out, t)
		case KindDaily:
			if DueOn(t.RepeatDays, weekday) {
				out = append(out, t)
			}
		}
	}
	return out, nil
}
