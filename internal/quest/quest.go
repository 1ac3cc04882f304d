package quest

import (
	"slices"
	"strings"

	"github.com/abhisek/gitquest/internal/questionbank"
)

// State is the lifecycle position of a quest.
type State int

const (
	StateNotStarted State = iota
	StateActive
	StateCompleted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Quest is a difficulty-rated learning unit.
type Quest struct {
	ID              string
	Name            string
	Description     string
	LearningModules []string
	DifficultyLevel int
	Completed       bool

	// BadgeID is the quest-specific badge, empty when there is none.
	BadgeID string
}

// AddLearningModule appends module. Blank input is ignored.
func (q *Quest) AddLearningModule(module string) {
	if strings.TrimSpace(module) == "" {
		return
	}
	q.LearningModules = append(q.LearningModules, module)
}

// RemoveLearningModule removes the first occurrence of module and reports
// whether it was present.
func (q *Quest) RemoveLearningModule(module string) bool {
	i := slices.Index(q.LearningModules, module)
	if i < 0 {
		return false
	}
	q.LearningModules = slices.Delete(q.LearningModules, i, i+1)
	return true
}

// Stars is the display rating of the quest's difficulty.
func (q *Quest) Stars() string { return Stars(q.DifficultyLevel) }

// Level is the question level matching the quest's difficulty.
func (q *Quest) Level() questionbank.Level { return LevelForDifficulty(q.DifficultyLevel) }

func (q *Quest) clone() Quest {
	c := *q
	c.LearningModules = slices.Clone(q.LearningModules)
	return c
}

// Stars maps a difficulty to asterisks: 1, 3 and 5 map to that many,
// anything else to a single one.
func Stars(difficulty int) string {
	switch difficulty {
	case 1, 3, 5:
		return strings.Repeat("*", difficulty)
	default:
		return "*"
	}
}

// CompletionStatus returns "Y" for a completed quest and "N" otherwise.
func CompletionStatus(completed bool) string {
	if completed {
		return "Y"
	}
	return "N"
}

// LevelForDifficulty maps a quest difficulty to a question level.
func LevelForDifficulty(difficulty int) questionbank.Level {
	switch difficulty {
	case 3:
		return questionbank.LevelIntermediate
	case 5:
		return questionbank.LevelAdvanced
	default:
		return questionbank.LevelBeginner
	}
}
