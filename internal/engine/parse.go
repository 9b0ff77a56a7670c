package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDifficulty parses user input to a Difficulty.
// If input is empty or unrecognized, returns DefaultDifficulty.
func ParseDifficulty(input string) Difficulty {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "easy", "e":
		return DifficultyEasy
	case "medium", "m":
		return DifficultyMedium
	case "hard", "h":
		return DifficultyHard
	default:
		return DefaultDifficulty
	}
}

func ParseKind(input string) (TaskKind, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	k := TaskKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid task kind: %q", input)
	}
	return k, nil
}

func ParseCategory(input string) RewardCategory {
	s := strings.TrimSpace(strings.ToLower(input))
	c := RewardCategory(s)
	if c.IsValid() {
		return c
	}
	return CategoryActivity
}

// ParseRepeatDays parses a comma-separated list of weekday numbers (0=Sunday)
// or names. An empty string means "every day" and returns nil.
func ParseRepeatDays(input string) ([]int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, nil
	}

	names := map[string]int{
		"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
	}

	seen := map[int]bool{}
	var out []int
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(strings.ToLower(part))
		if p == "" {
			continue
		}
		day, ok := names[p]
		if !ok {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("invalid weekday: %q", part)
			}
			day = n
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		out = append(out, day)
	}
	return out, nil
}
