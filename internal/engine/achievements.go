package engine

import "github.com/MookeeHugo/kiddo-habit-app/internal/storage"

type ConditionType string

const (
	ConditionTasksCompleted ConditionType = "tasks_completed"
	ConditionStreak         ConditionType = "streak"
	ConditionPointsEarned   ConditionType = "points_earned"
	ConditionLevelReached   ConditionType = "level_reached"
	ConditionPerfectDays    ConditionType = "perfect_days"
)

// AchievementDef is a static unlock rule: a cumulative statistic compared
// against a threshold.
type AchievementDef struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Condition   ConditionType
	Threshold   int
}

// BuiltinAchievements returns the fixed rule table. Evaluation order is the
// order of this slice.
func BuiltinAchievements() []AchievementDef {
	return []AchievementDef{
		{ID: "first_task", Title: "First Step", Description: "Complete your first task", Icon: "🎯", Condition: ConditionTasksCompleted, Threshold: 1},
		{ID: "streak_7", Title: "Star of Persistence", Description: "Keep a 7-day streak", Icon: "⭐", Condition: ConditionStreak, Threshold: 7},
		{ID: "streak_30", Title: "Habit Master", Description: "Keep a 30-day streak", Icon: "🏆", Condition: ConditionStreak, Threshold: 30},
		{ID: "level_5", Title: "Hard Worker", Description: "Reach level 5", Icon: "🌿", Condition: ConditionLevelReached, Threshold: 5},
		{ID: "level_10", Title: "Habit Star", Description: "Reach level 10", Icon: "🌳", Condition: ConditionLevelReached, Threshold: 10},
		{ID: "level_20", Title: "Little Genius", Description: "Reach level 20 (max)", Icon: "👑", Condition: ConditionLevelReached, Threshold: 20},
		{ID: "points_100", Title: "Point Collector", Description: "Earn 100 points in total", Icon: "💰", Condition: ConditionPointsEarned, Threshold: 100},
		{ID: "points_1000", Title: "Point Tycoon", Description: "Earn 1000 points in total", Icon: "💎", Condition: ConditionPointsEarned, Threshold: 1000},
		{ID: "perfect_7", Title: "Perfect Week", Description: "Collect 7 perfect days", Icon: "✨", Condition: ConditionPerfectDays, Threshold: 7},
		{ID: "tasks_100", Title: "Task Champion", Description: "Complete 100 tasks in total", Icon: "🎖️", Condition: ConditionTasksCompleted, Threshold: 100},
	}
}

func statFor(u *storage.User, c ConditionType) int {
	switch c {
	case ConditionTasksCompleted:
		return u.TotalTasksCompleted
	case ConditionStreak:
		return u.LongestStreak
	case ConditionPointsEarned:
		return u.TotalPoints
	case ConditionLevelReached:
		return u.Level
	case ConditionPerfectDays:
		return u.PerfectDays
	default:
		return 0
	}
}

// EvaluateAchievements folds the rule table over the user's post-update
// counters and returns every newly qualifying id, in table order. Ids already
// in the unlocked set are never returned again.
func EvaluateAchievements(u *storage.User, unlocked map[string]bool) []string {
	var newly []string
	for _, def := range BuiltinAchievements() {
		if unlocked[def.ID] {
			continue
		}
		if statFor(u, def.Condition) >= def.Threshold {
			newly = append(newly, def.ID)
		}
	}
	return newly
}

// UnlockedSet builds the membership set from the user's stored id list.
// Duplicate ids collapse into one entry.
func UnlockedSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
