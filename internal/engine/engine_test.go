package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func mustCreateDaily(t *testing.T, svc *Service, title string, diff Difficulty, repeatDays []int) *storage.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		Kind:       KindDaily,
		Title:      title,
		Difficulty: diff,
		RepeatDays: repeatDays,
	})
	if err != nil {
		t.Fatalf("CreateTask(%q): %v", title, err)
	}
	return task
}

func TestCompleteTaskAwardsAndUnlocks(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	task := mustCreateDaily(t, svc, "Brush teeth", DifficultyMedium, nil)
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.Local) // a Monday

	res, err := svc.CompleteTaskAt(ctx, task.ID, now)
	if err != nil {
		t.Fatalf("CompleteTaskAt: %v", err)
	}

	// First completion: streak 1, medium base 10 at the x1.10 tier.
	if res.Streak != 1 {
		t.Errorf("streak=%d, want 1", res.Streak)
	}
	if res.Points != 11 || res.Experience != 5 {
		t.Errorf("reward={%d pts, %d exp}, want {11, 5}", res.Points, res.Experience)
	}

	u, err := svc.UserRepo().GetOrCreateDefault(ctx)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.TotalPoints != 11 || u.AvailablePoints != 11 {
		t.Errorf("user points total=%d available=%d, want 11/11", u.TotalPoints, u.AvailablePoints)
	}
	if u.TotalTasksCompleted != 1 || u.LongestStreak != 1 {
		t.Errorf("user counters completed=%d longest=%d, want 1/1", u.TotalTasksCompleted, u.LongestStreak)
	}

	if len(res.NewAchievements) != 1 || res.NewAchievements[0] != "first_task" {
		t.Fatalf("new achievements=%v, want [first_task]", res.NewAchievements)
	}
	a, err := svc.AchievementRepo().Get(ctx, "first_task")
	if err != nil {
		t.Fatalf("get achievement: %v", err)
	}
	if !a.Unlocked || a.UnlockedAt == nil {
		t.Errorf("first_task not persisted as unlocked: %+v", a)
	}

	// Completing an already completed task is rejected.
	_, err = svc.CompleteTaskAt(ctx, task.ID, now)
	var already AlreadyError
	if !errors.As(err, &already) || !already.Done {
		t.Fatalf("second completion err=%v, want AlreadyError{Done:true}", err)
	}
}

func TestStreakAcrossResets(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	task := mustCreateDaily(t, svc, "Read a book", DifficultyEasy, nil)

	day1 := time.Date(2026, 3, 2, 19, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)

	if _, err := svc.CompleteTaskAt(ctx, task.ID, day1); err != nil {
		t.Fatalf("complete day1: %v", err)
	}

	outcome, err := svc.RunDailyResetAt(ctx, day2)
	if err != nil {
		t.Fatalf("reset day2: %v", err)
	}
	if outcome == nil {
		t.Fatal("expected a sweep on the next day")
	}
	if outcome.CompletedCount != 1 || outcome.MissedCount != 0 {
		t.Fatalf("sweep=%+v, want 1 completed, 0 missed", outcome.SweepResult)
	}
	if !outcome.PerfectDayRecorded {
		t.Fatal("expected a perfect day to be recorded")
	}

	// The sweep cleared the flag but kept the streak, so today continues it.
	res, err := svc.CompleteTaskAt(ctx, task.ID, day2)
	if err != nil {
		t.Fatalf("complete day2: %v", err)
	}
	if res.Streak != 2 {
		t.Errorf("streak after consecutive day=%d, want 2", res.Streak)
	}

	u, err := svc.UserRepo().GetOrCreateDefault(ctx)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.PerfectDays != 1 {
		t.Errorf("perfect days=%d, want 1", u.PerfectDays)
	}
}

func TestResetRunsOncePerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateDaily(t, svc, "Make the bed", DifficultyEasy, nil)
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.Local)

	first, err := svc.RunDailyResetAt(ctx, now)
	if err != nil {
		t.Fatalf("first reset: %v", err)
	}
	if first == nil {
		t.Fatal("first ever reset should run")
	}

	second, err := svc.RunDailyResetAt(ctx, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if second != nil {
		t.Fatal("same-day reset should be a no-op")
	}
}

func TestResetBreaksMissedStreaks(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	missed := mustCreateDaily(t, svc, "Practice piano", DifficultyMedium, nil)
	done := mustCreateDaily(t, svc, "Tidy up", DifficultyEasy, nil)

	day1 := time.Date(2026, 3, 2, 18, 0, 0, 0, time.Local)
	if _, err := svc.CompleteTaskAt(ctx, missed.ID, day1); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.CompleteTaskAt(ctx, done.ID, day1); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.RunDailyResetAt(ctx, day1.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("reset: %v", err)
	}

	// Day 2: only one of the two gets done.
	day2 := day1.AddDate(0, 0, 1)
	if _, err := svc.CompleteTaskAt(ctx, done.ID, day2); err != nil {
		t.Fatalf("complete day2: %v", err)
	}

	outcome, err := svc.RunDailyResetAt(ctx, day1.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("reset day3: %v", err)
	}
	if outcome.CompletedCount != 1 || outcome.MissedCount != 1 {
		t.Fatalf("sweep=%+v, want 1 completed, 1 missed", outcome.SweepResult)
	}
	if outcome.PerfectDayRecorded {
		t.Fatal("missed day must not count as perfect")
	}
	if outcome.MaxStreakLost != 1 {
		t.Errorf("max streak lost=%d, want 1", outcome.MaxStreakLost)
	}

	broken, err := svc.TaskRepo().Get(ctx, missed.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if broken.Streak != 0 || broken.Completed {
		t.Errorf("missed task after sweep: streak=%d completed=%v, want 0/false", broken.Streak, broken.Completed)
	}
	kept, err := svc.TaskRepo().Get(ctx, done.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if kept.Streak != 2 || kept.Completed {
		t.Errorf("completed task after sweep: streak=%d completed=%v, want 2/false", kept.Streak, kept.Completed)
	}
}

func TestSweepSkipsNotDueTasks(t *testing.T) {
	weekdays := mustCreateDailyTask(t, "School prep", []int{1, 2, 3, 4, 5})
	weekdays.Completed = true
	weekdays.Streak = 5
	everyday := mustCreateDailyTask(t, "Brush teeth", nil)
	everyday.Completed = true
	everyday.Streak = 3

	res := DailySweep([]*storage.Task{weekdays, everyday}, time.Saturday)

	if res.CompletedCount != 1 || res.MissedCount != 0 {
		t.Fatalf("sweep=%+v, want 1 completed, 0 missed", res)
	}
	if !res.PerfectDay {
		t.Fatal("not-due tasks must not spoil a perfect day")
	}
	if weekdays.Streak != 5 || !weekdays.Completed {
		t.Errorf("not-due task was touched: %+v", weekdays)
	}
	if everyday.Streak != 3 || everyday.Completed {
		t.Errorf("due task after sweep: streak=%d completed=%v, want 3/false", everyday.Streak, everyday.Completed)
	}
}

func mustCreateDailyTask(t *testing.T, title string, repeatDays []int) *storage.Task {
	t.Helper()
	return &storage.Task{
		ID:         title,
		Kind:       string(KindDaily),
		Title:      title,
		Difficulty: string(DifficultyMedium),
		RepeatDays: repeatDays,
		Checklist:  []storage.ChecklistItem{{ID: "a", Text: "step", Completed: true}},
	}
}

func TestSweepClearsChecklist(t *testing.T) {
	task := mustCreateDailyTask(t, "Homework", nil)
	task.Completed = true

	DailySweep([]*storage.Task{task}, time.Monday)

	for _, item := range task.Checklist {
		if item.Completed {
			t.Fatalf("checklist item still completed after sweep: %+v", item)
		}
	}
}

func TestUncompleteKeepsEarnedPoints(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	task := mustCreateDaily(t, svc, "Water the plants", DifficultyHard, nil)
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.Local)

	if _, err := svc.CompleteTaskAt(ctx, task.ID, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	before, err := svc.UserRepo().GetOrCreateDefault(ctx)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}

	res, err := svc.UncompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if res.Streak != 0 {
		t.Errorf("streak after undo=%d, want 0", res.Streak)
	}

	got, err := svc.TaskRepo().Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Completed || got.CompletedAt != nil || got.Points != 0 {
		t.Errorf("task after undo: %+v", got)
	}

	// The user keeps what was credited.
	after, err := svc.UserRepo().GetOrCreateDefault(ctx)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if after.TotalPoints != before.TotalPoints || after.AvailablePoints != before.AvailablePoints {
		t.Errorf("user points changed on undo: before=%d/%d after=%d/%d",
			before.TotalPoints, before.AvailablePoints, after.TotalPoints, after.AvailablePoints)
	}

	// Undoing twice is rejected.
	_, err = svc.UncompleteTask(ctx, task.ID)
	var already AlreadyError
	if !errors.As(err, &already) || already.Done {
		t.Fatalf("second undo err=%v, want AlreadyError{Done:false}", err)
	}
}

func TestRedeemReward(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	rw, err := svc.CreateReward(ctx, CreateRewardInput{Title: "Ice cream", Cost: 30})
	if err != nil {
		t.Fatalf("CreateReward: %v", err)
	}

	// Nothing earned yet.
	_, err = svc.RedeemReward(ctx, rw.ID)
	var insufficient InsufficientPointsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("redeem with no points err=%v, want InsufficientPointsError", err)
	}

	u, err := svc.UserRepo().GetOrCreateDefault(ctx)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	u.AvailablePoints = 50
	if err := svc.UserRepo().Update(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	res, err := svc.RedeemReward(ctx, rw.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if res.PointsRemaining != 20 {
		t.Errorf("points remaining=%d, want 20", res.PointsRemaining)
	}

	_, err = svc.RedeemReward(ctx, rw.ID)
	var redeemed AlreadyRedeemedError
	if !errors.As(err, &redeemed) {
		t.Fatalf("second redeem err=%v, want AlreadyRedeemedError", err)
	}
}

func TestTaskPrefixResolution(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	task := mustCreateDaily(t, svc, "Feed the fish", DifficultyEasy, nil)

	got, err := svc.GetTask(ctx, task.ID[:8])
	if err != nil {
		t.Fatalf("GetTask by prefix: %v", err)
	}
	if got.ID != task.ID {
		t.Errorf("resolved %q, want %q", got.ID, task.ID)
	}

	if _, err := svc.GetTask(ctx, "nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("unknown id err=%v, want ErrTaskNotFound", err)
	}
}

func TestListTodayTasks(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mustCreateDaily(t, svc, "School prep", DifficultyMedium, []int{1, 2, 3, 4, 5})
	mustCreateDaily(t, svc, "Brush teeth", DifficultyEasy, nil)
	if _, err := svc.CreateTask(ctx, CreateTaskInput{Kind: KindTodo, Title: "Build a kite"}); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	saturday := time.Date(2026, 3, 7, 10, 0, 0, 0, time.Local)
	tasks, err := svc.ListTodayTasks(ctx, saturday)
	if err != nil {
		t.Fatalf("ListTodayTasks: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("got %d tasks on Saturday, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.Title == "School prep" {
			t.Fatal("weekday-only task listed on Saturday")
		}
	}
}

func TestTaskCRUDAndReorder(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	a := mustCreateDaily(t, svc, "First", DifficultyEasy, nil)
	b := mustCreateDaily(t, svc, "Second", DifficultyEasy, nil)
	if b.SortOrder <= a.SortOrder {
		t.Fatalf("new task sort order %d not after %d", b.SortOrder, a.SortOrder)
	}

	err := svc.UpdateTask(ctx, a.ID, UpdateTaskInput{
		Title:      "First (renamed)",
		Icon:       "🧹",
		Difficulty: DifficultyHard,
		RepeatDays: []int{0, 6},
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	got, err := svc.GetTask(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "First (renamed)" || got.Difficulty != string(DifficultyHard) {
		t.Errorf("task after update: %+v", got)
	}
	if len(got.RepeatDays) != 2 {
		t.Errorf("repeat days after update: %v", got.RepeatDays)
	}

	if err := svc.ReorderTasks(ctx, []string{b.ID, a.ID}); err != nil {
		t.Fatalf("ReorderTasks: %v", err)
	}
	all, err := svc.TaskRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 || all[0].ID != b.ID {
		t.Fatalf("order after reorder: %v, %v", all[0].Title, all[1].Title)
	}

	if err := svc.DeleteTask(ctx, b.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := svc.GetTask(ctx, b.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("deleted task lookup err=%v, want ErrTaskNotFound", err)
	}
}

func TestListCompleted(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	done := mustCreateDaily(t, svc, "Done one", DifficultyEasy, nil)
	mustCreateDaily(t, svc, "Open one", DifficultyEasy, nil)

	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.Local)
	if _, err := svc.CompleteTaskAt(ctx, done.ID, now); err != nil {
		t.Fatalf("complete: %v", err)
	}

	completed, err := svc.ListCompleted(ctx)
	if err != nil {
		t.Fatalf("ListCompleted: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != done.ID {
		t.Fatalf("completed=%v, want only %q", completed, done.Title)
	}
}

func TestWeeklyStats(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	task := mustCreateDaily(t, svc, "Brush teeth", DifficultyEasy, nil)
	day1 := time.Date(2026, 3, 2, 18, 0, 0, 0, time.Local)

	if _, err := svc.CompleteTaskAt(ctx, task.ID, day1); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := svc.RunDailyResetAt(ctx, day1.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("reset: %v", err)
	}

	stats, err := svc.WeeklyStats(ctx, day1.AddDate(0, 0, 1), 7)
	if err != nil {
		t.Fatalf("WeeklyStats: %v", err)
	}
	if len(stats) != 7 {
		t.Fatalf("got %d day entries, want 7", len(stats))
	}

	// The perfect day was stamped with the sweep time, day1+1.
	last := stats[6]
	if last.Completed != 1 || last.Total != 1 || !last.Perfect || last.Rate != 100 {
		t.Errorf("last day stat=%+v, want a recorded perfect day", last)
	}
	if stats[0].Total != 0 {
		t.Errorf("oldest day stat=%+v, want empty", stats[0])
	}
}
