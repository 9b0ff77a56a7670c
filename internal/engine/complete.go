package engine

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/MookeeHugo/kiddo-habit-app/internal/logger"
	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

type CompleteResult struct {
	TaskID             string
	Title              string
	Points             int
	Experience         int
	StreakBonusPercent int
	Streak             int
	LevelBefore        int
	LevelAfter         int
	LevelUp            bool
	NewAchievements    []string
}

// CompleteTask marks a task complete and applies the full progression chain:
// streak, reward, user totals, level, achievements. Everything is persisted
// in a single transaction.
func (s *Service) CompleteTask(ctx context.Context, id string) (*CompleteResult, error) {
	return s.CompleteTaskAt(ctx, id, time.Now())
}

func (s *Service) CompleteTaskAt(ctx context.Context, id string, now time.Time) (*CompleteResult, error) {
	var res *CompleteResult

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := storage.NewTaskRepo(tx)
		users := storage.NewUserRepo(tx)
		achievements := storage.NewAchievementRepo(tx)

		t, err := resolveTask(ctx, tasks, id)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTaskNotFound
		}
		if t.Completed {
			return AlreadyError{TaskID: t.ID, Done: true}
		}

		u, err := users.GetOrCreateDefault(ctx)
		if err != nil {
			return err
		}
		levelBefore := u.Level

		// Only daily tasks carry a streak; todos keep theirs fixed.
		newStreak := t.Streak
		if TaskKind(t.Kind) == KindDaily {
			newStreak = NextStreak(t.Streak, t.LastCompletedDate, now)
		}

		reward, err := CalculateReward(Difficulty(t.Difficulty), newStreak)
		if err != nil {
			return err
		}

		u.TotalPoints += reward.Points
		u.AvailablePoints += reward.Points
		u.TotalTasksCompleted++
		if newStreak > u.LongestStreak {
			u.LongestStreak = newStreak
		}

		lr := ApplyExperience(u.Experience, u.Level, reward.Experience)
		u.Experience = lr.RemainingExp
		u.Level = lr.NewLevel

		newly := EvaluateAchievements(u, UnlockedSet(u.UnlockedAchievements))
		u.UnlockedAchievements = append(u.UnlockedAchievements, newly...)

		if err := users.Update(ctx, u); err != nil {
			return err
		}
		for _, achID := range newly {
			if err := achievements.Unlock(ctx, achID, now); err != nil {
				return err
			}
		}

		completedAt := now
		t.Completed = true
		t.CompletedAt = &completedAt
		t.LastCompletedDate = &completedAt
		t.Streak = newStreak
		t.Points = reward.Points
		if err := tasks.UpdateCompletion(ctx, t); err != nil {
			return err
		}

		res = &CompleteResult{
			TaskID:             t.ID,
			Title:              t.Title,
			Points:             reward.Points,
			Experience:         reward.Experience,
			StreakBonusPercent: reward.StreakBonusPercent,
			Streak:             newStreak,
			LevelBefore:        levelBefore,
			LevelAfter:         u.Level,
			LevelUp:            lr.LevelUp,
			NewAchievements:    newly,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("task completed",
		zap.String("task_id", res.TaskID),
		zap.Int("points", res.Points),
		zap.Int("streak", res.Streak),
		zap.Bool("level_up", res.LevelUp),
	)
	return res, nil
}

type UncompleteResult struct {
	TaskID string
	Title  string
	Streak int
}

// UncompleteTask undoes a completion toggle. Only the task is touched: the
// streak is decremented (never below zero) and the cycle fields are cleared.
// Points and experience already credited to the user are kept.
func (s *Service) UncompleteTask(ctx context.Context, id string) (*UncompleteResult, error) {
	var res *UncompleteResult

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := storage.NewTaskRepo(tx)

		t, err := resolveTask(ctx, tasks, id)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTaskNotFound
		}
		if !t.Completed {
			return AlreadyError{TaskID: t.ID, Done: false}
		}

		if TaskKind(t.Kind) == KindDaily {
			t.Streak = RewindStreak(t.Streak)
		}
		t.Completed = false
		t.CompletedAt = nil
		t.Points = 0
		if err := tasks.UpdateCompletion(ctx, t); err != nil {
			return err
		}

		res = &UncompleteResult{TaskID: t.ID, Title: t.Title, Streak: t.Streak}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("task completion undone", zap.String("task_id", res.TaskID), zap.Int("streak", res.Streak))
	return res, nil
}
