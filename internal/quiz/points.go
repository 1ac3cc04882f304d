package quiz

import "github.com/abhisek/gitquest/internal/questionbank"

// BasePoints is awarded for a correct beginner answer. Intermediate pays
// 1.5x and advanced 2x; the base is even so every tier stays integral.
const BasePoints = 10

// PointsForLevel returns the points for a correct answer at level.
// The match is case-insensitive; an empty or unknown level pays BasePoints.
func PointsForLevel(level string) int {
	l, err := questionbank.ParseLevel(level)
	if err != nil {
		return BasePoints
	}
	switch l {
	case questionbank.LevelIntermediate:
		return BasePoints * 3 / 2
	case questionbank.LevelAdvanced:
		return BasePoints * 2
	default:
		return BasePoints
	}
}
