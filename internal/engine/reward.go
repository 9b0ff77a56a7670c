package engine

import (
	"fmt"
	"math"
)

const (
	// PointsToExpRatio converts earned points into experience.
	PointsToExpRatio = 0.5
)

// Streak bonus tiers. The multiplier is a step function of the streak count
// after the completion is applied.
const (
	streakTier2Min = 8
	streakTier3Min = 15
)

// Reward is what a single task completion grants.
type Reward struct {
	Points     int
	Experience int
	// StreakBonusPercent is informational for display (10 means +10%).
	StreakBonusPercent int
}

func basePoints(d Difficulty) (int, error) {
	switch d {
	case DifficultyEasy:
		return 5, nil
	case DifficultyMedium:
		return 10, nil
	case DifficultyHard:
		return 20, nil
	default:
		return 0, fmt.Errorf("invalid difficulty: %q", d)
	}
}

// StreakMultiplier returns the bonus multiplier for a streak count:
// 1-7 days ×1.10, 8-14 days ×1.20, 15+ days ×1.50, no streak ×1.00.
func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= streakTier3Min:
		return 1.5
	case streak >= streakTier2Min:
		return 1.2
	case streak >= 1:
		return 1.1
	default:
		return 1.0
	}
}

// CalculateReward computes the points and experience for completing a task,
// given the streak count after this completion is applied. Todo tasks never
// advance a streak, so they normally land in the ×1.00 tier.
func CalculateReward(d Difficulty, streak int) (Reward, error) {
	base, err := basePoints(d)
	if err != nil {
		return Reward{}, err
	}

	mult := StreakMultiplier(streak)
	points := int(math.Floor(float64(base) * mult))
	exp := int(math.Floor(float64(points) * PointsToExpRatio))

	return Reward{
		Points:             points,
		Experience:         exp,
		StreakBonusPercent: int(math.Round((mult - 1) * 100)),
	}, nil
}
