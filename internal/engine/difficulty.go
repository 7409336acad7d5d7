package engine

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Difficulty selects the strategy the engine plays with. The zero value is invalid.
type Difficulty int

const (
	Random Difficulty = iota + 1
	Blended
	Heuristic
	Expert
	Minimax
)

var difficultyNames = map[Difficulty]string{
	Random:    "random",
	Blended:   "blended",
	Heuristic: "heuristic",
	Expert:    "expert",
	Minimax:   "minimax",
}

// Difficulties lists every valid difficulty from the weakest to the strongest.
func Difficulties() []Difficulty {
	return []Difficulty{Random, Blended, Heuristic, Expert, Minimax}
}

// ParseDifficulty accepts the canonical names and the player-facing aliases
// easy, medium, smart, hard and master.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random", "easy":
		return Random, nil
	case "blended", "medium":
		return Blended, nil
	case "heuristic", "smart", "hard":
		return Heuristic, nil
	case "expert":
		return Expert, nil
	case "minimax", "master":
		return Minimax, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, name)
	}
}

func (that Difficulty) IsValid() bool {
	_, ok := difficultyNames[that]
	return ok
}

func (that Difficulty) String() string {
	if name, ok := difficultyNames[that]; ok {
		return name
	}

	return fmt.Sprintf("difficulty(%d)", int(that))
}
