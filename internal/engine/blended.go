package engine

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const DefaultBlendProbability = 0.5

// BlendedStrategy flips a biased coin each move: with probability p it plays
// the heuristic, otherwise a random cell.
type BlendedStrategy struct {
	source      Source
	probability float64
	random      Strategy
	heuristic   Strategy
}

// NewBlendedStrategy - probability is clamped to [0, 1].
func NewBlendedStrategy(source Source, probability float64) *BlendedStrategy {
	return &BlendedStrategy{
		source:      source,
		probability: min(max(probability, 0), 1),
		random:      NewRandomStrategy(source),
		heuristic:   NewHeuristicStrategy(source),
	}
}

func (that *BlendedStrategy) SelectMove(board entity.Board, side entity.Mark) (int, error) {
	if err := checkPlayable(board, side); err != nil {
		return 0, err
	}

	if that.source.Float64() < that.probability {
		return that.heuristic.SelectMove(board, side)
	}

	return that.random.SelectMove(board, side)
}
