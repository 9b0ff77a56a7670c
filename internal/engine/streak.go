package engine

import (
	"math"
	"time"
)

// startOfDay truncates to local midnight; streak continuity is date-only.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayGap returns the number of calendar days between two times.
func dayGap(from, to time.Time) int {
	diff := startOfDay(to).Sub(startOfDay(from))
	return int(math.Round(diff.Hours() / 24))
}

// NextStreak determines the streak value when a daily task transitions from
// incomplete to complete:
//   - first-ever completion: 1
//   - completed yesterday: streak + 1
//   - completed earlier today: unchanged (the reset should have run first)
//   - gap of two or more days: back to 1, today counts as day one
func NextStreak(current int, lastCompleted *time.Time, today time.Time) int {
	if lastCompleted == nil {
		return 1
	}

	switch gap := dayGap(*lastCompleted, today); {
	case gap == 0:
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

// RewindStreak undoes a completion toggle. This is a plain decrement, not a
// recomputation from dates, matching the completion's +1 only when the gap
// was a single day.
func RewindStreak(current int) int {
	if current > 0 {
		return current - 1
	}
	return 0
}

// ShouldReset reports whether the daily sweep is due: the calendar date of
// now is strictly after the date of the last recorded reset.
func ShouldReset(lastReset *time.Time, now time.Time) bool {
	if lastReset == nil {
		return true
	}
	return startOfDay(now).After(startOfDay(*lastReset))
}
