package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dash/internal/core"
)

// Difficulty is the rating shown next to a level.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyNormal  Difficulty = "normal"
	DifficultyHard    Difficulty = "hard"
	DifficultyHarder  Difficulty = "harder"
	DifficultyInsane  Difficulty = "insane"
	DifficultyDemon   Difficulty = "demon"
	DifficultyUnknown Difficulty = "unknown"
)

// difficulties lists the known ratings from easiest to hardest.
var difficulties = []Difficulty{
	DifficultyEasy,
	DifficultyNormal,
	DifficultyHard,
	DifficultyHarder,
	DifficultyInsane,
	DifficultyDemon,
}

// ParseDifficulty parses a rating name, ignoring case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == DifficultyUnknown || d == "" {
		return DifficultyUnknown, nil
	}
	for _, known := range difficulties {
		if d == known {
			return d, nil
		}
	}
	return DifficultyUnknown, fmt.Errorf("unknown difficulty %q", s)
}

// UnmarshalYAML accepts ratings in any case ("EASY", "Easy", "easy").
func (d *Difficulty) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDifficulty(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Rank returns the position of the rating, 0 for easy. Unknown ratings
// sort after demon.
func (d Difficulty) Rank() int {
	for i, known := range difficulties {
		if d == known {
			return i
		}
	}
	return len(difficulties)
}

// Label returns the upper-case display name.
func (d Difficulty) Label() string {
	if d == "" {
		return strings.ToUpper(string(DifficultyUnknown))
	}
	return strings.ToUpper(string(d))
}

// Color returns the display color for the rating.
func (d Difficulty) Color() core.Color {
	switch d {
	case DifficultyEasy:
		return core.ColorBrightBlue
	case DifficultyNormal:
		return core.ColorBrightGreen
	case DifficultyHard:
		return core.ColorBrightYellow
	case DifficultyHarder:
		return core.ColorOrange
	case DifficultyInsane:
		return core.Color("129")
	case DifficultyDemon:
		return core.Color("196")
	default:
		return core.ColorBrightWhite
	}
}
