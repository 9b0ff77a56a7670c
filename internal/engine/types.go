package engine

type TaskKind string

const (
	KindDaily TaskKind = "daily"
	KindTodo  TaskKind = "todo"
)

func (k TaskKind) IsValid() bool {
	switch k {
	case KindDaily, KindTodo:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// DefaultDifficulty is used when user input is missing/invalid.
const DefaultDifficulty Difficulty = DifficultyMedium

type RewardCategory string

const (
	CategoryToy       RewardCategory = "toy"
	CategoryActivity  RewardCategory = "activity"
	CategoryPrivilege RewardCategory = "privilege"
)

func (c RewardCategory) IsValid() bool {
	switch c {
	case CategoryToy, CategoryActivity, CategoryPrivilege:
		return true
	default:
		return false
	}
}
