package storage

import "time"

// User is the single seeded profile for the local installation.
type User struct {
	ID                   string
	Name                 string
	Avatar               string
	Level                int
	Experience           int
	TotalPoints          int
	AvailablePoints      int
	LongestStreak        int
	TotalTasksCompleted  int
	PerfectDays          int
	UnlockedAchievements []string
	CreatedAt            time.Time
	LastLoginAt          time.Time
}

type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID                string
	Kind              string // "daily" or "todo"
	Title             string
	Description       *string
	Icon              string
	Difficulty        string // "easy", "medium", "hard"
	Points            int
	Streak            int
	LastCompletedDate *time.Time
	RepeatDays        []int // weekdays 0-6; nil means due every day
	DueDate           *time.Time
	Checklist         []ChecklistItem
	Completed         bool
	CompletedAt       *time.Time
	CreatedAt         time.Time
	SortOrder         int
}

type Reward struct {
	ID          string
	Title       string
	Description string
	Cost        int
	Icon        string
	Category    string // "toy", "activity", "privilege"
	Redeemed    bool
	RedeemedAt  *time.Time
	CreatedAt   time.Time
}

type Achievement struct {
	ID             string
	Title          string
	Description    string
	Icon           string
	ConditionType  string
	ConditionValue int
	Unlocked       bool
	UnlockedAt     *time.Time
}

type DailyHistory struct {
	ID             string
	Date           time.Time
	CompletedTasks int
	TotalTasks     int
	IsPerfectDay   bool
}
