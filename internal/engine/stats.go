package engine

import (
	"context"
	"time"

	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
)

type DayStat struct {
	Date      time.Time
	Completed int
	Total     int
	Rate      int // percent
	Perfect   bool
}

// WeeklyStats returns one entry per day for the last `days` days, oldest
// first, filled from the daily history. Days without a recorded entry are
// zeroes.
func (s *Service) WeeklyStats(ctx context.Context, now time.Time, days int) ([]DayStat, error) {
	since := startOfDay(now).AddDate(0, 0, -(days - 1))
	entries, err := s.history.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	byDay := map[string]storage.DailyHistory{}
	for _, e := range entries {
		byDay[e.Date.Format("2006-01-02")] = e
	}

	out := make([]DayStat, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i)
		st := DayStat{Date: day}
		if e, ok := byDay[day.Format("2006-01-02")]; ok {
			st.Completed = e.CompletedTasks
			st.Total = e.TotalTasks
			st.Perfect = e.IsPerfectDay
			if e.TotalTasks > 0 {
				st.Rate = e.CompletedTasks * 100 / e.TotalTasks
			}
		}
		out = append(out, st)
	}
	return out, nil
}

type AchievementStats struct {
	Total    int
	Unlocked int
	Rate     int // percent
}

func (s *Service) AchievementStats(ctx context.Context) (AchievementStats, error) {
	all, err := s.achievements.ListAll(ctx)
	if err != nil {
		return AchievementStats{}, err
	}

	st := AchievementStats{Total: len(all)}
	for _, a := range all {
		if a.Unlocked {
			st.Unlocked++
		}
	}
	if st.Total > 0 {
		st.Rate = st.Unlocked * 100 / st.Total
	}
	return st, nil
}

type TaskDistribution struct {
	Daily  int
	Todo   int
	Easy   int
	Medium int
	Hard   int
}

func (s *Service) Distribution(ctx context.Context) (TaskDistribution, error) {
	all, err := s.tasks.ListAll(ctx)
	if err != nil {
		return TaskDistribution{}, err
	}

	var d TaskDistribution
	for _, t := range all {
		switch TaskKind(t.Kind) {
		case KindDaily:
			d.Daily++
		case KindTodo:
			d.Todo++
		}
		switch Difficulty(t.Difficulty) {
		case DifficultyEasy:
			d.Easy++
		case DifficultyMedium:
			d.Medium++
		case DifficultyHard:
			d.Hard++
		}
	}
	return d, nil
}
