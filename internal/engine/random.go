package engine

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// RandomStrategy plays a uniformly random empty cell.
type RandomStrategy struct {
	source Source
}

func NewRandomStrategy(source Source) *RandomStrategy {
	return &RandomStrategy{source: source}
}

func (that *RandomStrategy) SelectMove(board entity.Board, side entity.Mark) (int, error) {
	if err := checkPlayable(board, side); err != nil {
		return 0, err
	}

	return pick(that.source, board.EmptyCells()), nil
}
