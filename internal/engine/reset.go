package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MookeeHugo/kiddo-habit-app/internal/logger"
	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

type SweepResult struct {
	CompletedCount int
	MissedCount    int
	PerfectDay     bool
	// MaxStreakLost is the largest streak broken by a missed day.
	MaxStreakLost int
}

// DueOn reports whether a daily task is due on the given weekday.
// A nil repeat-day set means "due every day".
func DueOn(repeatDays []int, weekday time.Weekday) bool {
	if repeatDays == nil {
		return true
	}
	for _, d := range repeatDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// DailySweep closes the previous cycle for a set of daily tasks, mutating
// them in place. Tasks not due on the given weekday are left untouched.
// For each due task:
//   - completed: counted, streak preserved
//   - missed: counted, streak broken to 0 (no grace period)
//   - either way: completed flag and checklist items cleared for the next cycle
//
// PerfectDay is true when nothing due was missed, including the zero-tasks-due
// case; callers must additionally require CompletedCount > 0 before recording
// a perfect day.
func DailySweep(tasks []*storage.Task, weekday time.Weekday) SweepResult {
	res := SweepResult{PerfectDay: true}

	for _, t := range tasks {
		if !DueOn(t.RepeatDays, weekday) {
			continue
		}

		if t.Completed {
			res.CompletedCount++
		} else {
			res.MissedCount++
			res.PerfectDay = false
			if t.Streak > res.MaxStreakLost {
				res.MaxStreakLost = t.Streak
			}
			t.Streak = 0
		}

		t.Completed = false
		for i := range t.Checklist {
			t.Checklist[i].Completed = false
		}
	}

	return res
}

type ResetOutcome struct {
	SweepResult
	PerfectDayRecorded bool
}

// RunDailyReset runs the sweep if a calendar day has passed since the last
// recorded reset. Returns nil when the sweep was not due. Per-task changes,
// the optional history entry and the new last-reset stamp are persisted as
// one transaction.
func (s *Service) RunDailyReset(ctx context.Context) (*ResetOutcome, error) {
	return s.RunDailyResetAt(ctx, time.Now())
}

func (s *Service) RunDailyResetAt(ctx context.Context, now time.Time) (*ResetOutcome, error) {
	lastReset, err := s.meta.GetTime(ctx, storage.MetaLastDailyReset)
	if err != nil {
		return nil, err
	}
	if !ShouldReset(lastReset, now) {
		return nil, nil
	}

	var outcome *ResetOutcome
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := storage.NewTaskRepo(tx)
		users := storage.NewUserRepo(tx)
		history := storage.NewHistoryRepo(tx)
		meta := storage.NewMetaRepo(tx)

		dailies, err := tasks.ListByKind(ctx, string(KindDaily))
		if err != nil {
			return err
		}

		swept := make([]*storage.Task, len(dailies))
		for i := range dailies {
			swept[i] = &dailies[i]
		}
		res := DailySweep(swept, now.Weekday())

		for _, t := range swept {
			if err := tasks.UpdateCompletion(ctx, t); err != nil {
				return err
			}
		}

		outcome = &ResetOutcome{SweepResult: res}

		// An empty day is not a meaningful achievement.
		if res.PerfectDay && res.CompletedCount > 0 {
			u, err := users.GetOrCreateDefault(ctx)
			if err != nil {
				return err
			}
			u.PerfectDays++
			if err := users.Update(ctx, u); err != nil {
				return err
			}
			err = history.Insert(ctx, storage.DailyHistory{
				ID:             uuid.NewString(),
				Date:           now,
				CompletedTasks: res.CompletedCount,
				TotalTasks:     res.CompletedCount + res.MissedCount,
				IsPerfectDay:   true,
			})
			if err != nil {
				return err
			}
			outcome.PerfectDayRecorded = true
		}

		return meta.SetTime(ctx, storage.MetaLastDailyReset, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("daily reset completed",
		zap.Int("completed", outcome.CompletedCount),
		zap.Int("missed", outcome.MissedCount),
		zap.Bool("perfect_day", outcome.PerfectDayRecorded),
		zap.Int("max_streak_lost", outcome.MaxStreakLost),
	)
	return outcome, nil
}
