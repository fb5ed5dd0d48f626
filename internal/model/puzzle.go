package model

import "fmt"

// Difficulty controls how thoroughly a sliding puzzle is shuffled
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns all difficulties in ascending order
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty validates a raw difficulty value
func ParseDifficulty(raw string) (Difficulty, error) {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(raw), nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrBadFilter, raw)
}

// PuzzleSizes returns the supported board sizes
func PuzzleSizes() []int {
	return []int{3, 4, 5}
}

// ValidPuzzleSize reports whether size is a supported board size
func ValidPuzzleSize(size int) bool {
	return size >= 3 && size <= 5
}
