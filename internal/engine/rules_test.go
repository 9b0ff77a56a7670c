package engine

import (
	"testing"
	"time"

	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

func TestStreakMultiplierTiers(t *testing.T) {
	cases := []struct {
		streak int
		want   float64
	}{
		{0, 1.0},
		{1, 1.1},
		{7, 1.1},
		{8, 1.2},
		{14, 1.2},
		{15, 1.5},
		{100, 1.5},
	}
	for _, c := range cases {
		if got := StreakMultiplier(c.streak); got != c.want {
			t.Errorf("StreakMultiplier(%d)=%v, want %v", c.streak, got, c.want)
		}
	}
}

func TestCalculateReward(t *testing.T) {
	cases := []struct {
		diff       Difficulty
		streak     int
		wantPoints int
		wantExp    int
		wantBonus  int
	}{
		{DifficultyEasy, 0, 5, 2, 0},
		{DifficultyMedium, 0, 10, 5, 0},
		{DifficultyHard, 0, 20, 10, 0},
		// 5 * 1.1 = 5.5, floored
		{DifficultyEasy, 1, 5, 2, 10},
		{DifficultyMedium, 8, 12, 6, 20},
		{DifficultyHard, 15, 30, 15, 50},
		{DifficultyEasy, 15, 7, 3, 50},
	}
	for _, c := range cases {
		r, err := CalculateReward(c.diff, c.streak)
		if err != nil {
			t.Fatalf("CalculateReward(%s, %d): %v", c.diff, c.streak, err)
		}
		if r.Points != c.wantPoints || r.Experience != c.wantExp || r.StreakBonusPercent != c.wantBonus {
			t.Errorf("CalculateReward(%s, %d)={%d, %d, %d}, want {%d, %d, %d}",
				c.diff, c.streak, r.Points, r.Experience, r.StreakBonusPercent,
				c.wantPoints, c.wantExp, c.wantBonus)
		}
	}
}

func TestCalculateRewardInvalidDifficulty(t *testing.T) {
	if _, err := CalculateReward(Difficulty("impossible"), 0); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestExpForNextLevel(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 50},
		{2, 70},
		{3, 90},
		{4, 110},
		{5, 200},
		{10, 350},
		{19, 620},
		{20, NoNextLevel},
		{25, NoNextLevel},
	}
	for _, c := range cases {
		if got := ExpForNextLevel(c.level); got != c.want {
			t.Errorf("ExpForNextLevel(%d)=%d, want %d", c.level, got, c.want)
		}
	}
}

func TestApplyExperience(t *testing.T) {
	// Below the threshold: no level change, experience accumulates.
	r := ApplyExperience(85, 4, 10)
	if r.LevelUp || r.NewLevel != 4 || r.RemainingExp != 95 {
		t.Fatalf("ApplyExperience(85, 4, 10)=%+v, want no level-up at 95", r)
	}

	// Crossing the threshold: one level, overflow carried.
	r = ApplyExperience(105, 4, 10)
	if !r.LevelUp || r.NewLevel != 5 || r.RemainingExp != 5 {
		t.Fatalf("ApplyExperience(105, 4, 10)=%+v, want level 5 with 5 remaining", r)
	}

	// A huge gain still advances at most one level per completion.
	r = ApplyExperience(0, 1, 1000)
	if !r.LevelUp || r.NewLevel != 2 || r.RemainingExp != 950 {
		t.Fatalf("ApplyExperience(0, 1, 1000)=%+v, want single level-up to 2", r)
	}

	// At the cap experience keeps accumulating, level stays.
	r = ApplyExperience(40, MaxLevel, 25)
	if r.LevelUp || r.NewLevel != MaxLevel || r.RemainingExp != 65 {
		t.Fatalf("ApplyExperience at cap=%+v, want level %d with 65 exp", r, MaxLevel)
	}
}

func TestNextStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)
	threeDaysAgo := today.AddDate(0, 0, -3)

	if got := NextStreak(0, nil, today); got != 1 {
		t.Errorf("first completion: got %d, want 1", got)
	}
	if got := NextStreak(4, &yesterday, today); got != 5 {
		t.Errorf("consecutive day: got %d, want 5", got)
	}
	if got := NextStreak(4, &threeDaysAgo, today); got != 1 {
		t.Errorf("broken streak: got %d, want 1", got)
	}

	// Re-completing on the same calendar day never double-counts.
	earlierToday := today.Add(-2 * time.Hour)
	if got := NextStreak(20, &earlierToday, today); got != 20 {
		t.Errorf("same day: got %d, want 20", got)
	}
}

func TestRewindStreak(t *testing.T) {
	if got := RewindStreak(5); got != 4 {
		t.Errorf("RewindStreak(5)=%d, want 4", got)
	}
	if got := RewindStreak(0); got != 0 {
		t.Errorf("RewindStreak(0)=%d, want 0", got)
	}
}

func TestShouldReset(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)

	if !ShouldReset(nil, now) {
		t.Error("nil last reset: want true")
	}
	sameDay := now.Add(-3 * time.Hour)
	if ShouldReset(&sameDay, now) {
		t.Error("same calendar day: want false")
	}
	lateYesterday := time.Date(2026, 3, 9, 23, 50, 0, 0, time.Local)
	if !ShouldReset(&lateYesterday, now) {
		t.Error("previous calendar day: want true")
	}
}

func TestDueOn(t *testing.T) {
	if !DueOn(nil, time.Sunday) {
		t.Error("nil repeat days should mean due every day")
	}
	if DueOn([]int{}, time.Sunday) {
		t.Error("empty repeat days should mean due never")
	}

	weekdaysOnly := []int{1, 2, 3, 4, 5}
	if DueOn(weekdaysOnly, time.Saturday) {
		t.Error("Mon-Fri task should not be due on Saturday")
	}
	if !DueOn(weekdaysOnly, time.Wednesday) {
		t.Error("Mon-Fri task should be due on Wednesday")
	}
}

func TestEvaluateAchievements(t *testing.T) {
	u := &storage.User{TotalTasksCompleted: 1, TotalPoints: 150, Level: 5, LongestStreak: 7}

	newly := EvaluateAchievements(u, map[string]bool{})
	want := []string{"first_task", "streak_7", "level_5", "points_100"}
	if len(newly) != len(want) {
		t.Fatalf("newly=%v, want %v", newly, want)
	}
	for i := range want {
		if newly[i] != want[i] {
			t.Fatalf("newly=%v, want %v (table order)", newly, want)
		}
	}

	// Already-unlocked ids never come back.
	again := EvaluateAchievements(u, UnlockedSet(newly))
	if len(again) != 0 {
		t.Fatalf("second evaluation returned %v, want none", again)
	}

	// Counters only grow, so unlocks are monotone: a later state with higher
	// stats yields a superset of ids.
	u.TotalPoints = 1000
	u.PerfectDays = 7
	more := EvaluateAchievements(u, UnlockedSet(newly))
	wantMore := []string{"points_1000", "perfect_7"}
	if len(more) != len(wantMore) || more[0] != wantMore[0] || more[1] != wantMore[1] {
		t.Fatalf("more=%v, want %v", more, wantMore)
	}
}

func TestBuiltinAchievementsTable(t *testing.T) {
	defs := BuiltinAchievements()
	if len(defs) != 10 {
		t.Fatalf("got %d achievement defs, want 10", len(defs))
	}
	seen := map[string]bool{}
	for _, d := range defs {
		if d.ID == "" || d.Title == "" || d.Threshold <= 0 {
			t.Errorf("incomplete def: %+v", d)
		}
		if seen[d.ID] {
			t.Errorf("duplicate achievement id %q", d.ID)
		}
		seen[d.ID] = true
	}
}
