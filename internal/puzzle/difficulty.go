// Package puzzle — обёртка над внешним генератором судоку.
package puzzle

import (
	"strings"

	"serotonyl.ru/sudoku-scoreboard/internal/common"
)

// Difficulty — уровень сложности головоломки. Пустое значение — сложность генератора по умолчанию.
type Difficulty string

const (
	DifficultyDefault Difficulty = ""
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyExpert  Difficulty = "expert"
)

// ParseDifficulty разбирает сложность без учёта регистра.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyDefault, DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return d, nil
	default:
		return DifficultyDefault, common.ErrUnknownDifficulty
	}
}
