package engine

const (
	// MaxLevel caps progression; excess experience past the cap is retained.
	MaxLevel      = 20
	StartingLevel = 1

	// NoNextLevel is returned by ExpForNextLevel at the cap.
	NoNextLevel = -1
)

// ExpForNextLevel returns the experience required to advance from the given
// level to the next one. The first five levels use a gentler slope.
func ExpForNextLevel(level int) int {
	if level >= MaxLevel {
		return NoNextLevel
	}

	next := level + 1
	if next <= 5 {
		return 30 + (next-1)*20
	}
	return 50 + (next-1)*30
}

type LevelUpResult struct {
	LevelUp      bool
	NewLevel     int
	RemainingExp int
}

// ApplyExperience adds gained experience and resolves at most one level-up.
// A single completion never cascades through multiple levels even when the
// total would satisfy two thresholds.
func ApplyExperience(currentExp, currentLevel, gained int) LevelUpResult {
	total := currentExp + gained

	if currentLevel >= MaxLevel {
		return LevelUpResult{LevelUp: false, NewLevel: currentLevel, RemainingExp: total}
	}

	threshold := ExpForNextLevel(currentLevel)
	if total >= threshold {
		return LevelUpResult{LevelUp: true, NewLevel: currentLevel + 1, RemainingExp: total - threshold}
	}
	return LevelUpResult{LevelUp: false, NewLevel: currentLevel, RemainingExp: total}
}

// LevelTitle returns the display title for a level.
func LevelTitle(level int) string {
	switch {
	case level >= 20:
		return "👑 Little Genius"
	case level >= 15:
		return "🏆 Self-Starter Hero"
	case level >= 10:
		return "🌳 Habit Star"
	case level >= 5:
		return "🌿 Hard Worker"
	default:
		return "🌱 Little Learner"
	}
}
