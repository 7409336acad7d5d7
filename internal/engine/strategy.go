package engine

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Strategy picks a cell for side on board. The board is a copy, so strategies
// are free to explore it. The returned cell is always empty on the input board.
type Strategy interface {
	SelectMove(board entity.Board, side entity.Mark) (int, error)
}

// checkPlayable - rejects boards that have no legal continuation and marks that are not a side.
func checkPlayable(board entity.Board, side entity.Mark) error {
	if !side.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, side)
	}

	if result := board.Result(); result != entity.EmptyCell {
		return fmt.Errorf("%w: board is decided (%s)", apperror.ErrNoLegalMove, result)
	}

	return nil
}

// firstEmpty - returns the first empty cell from candidates, scanning in order.
func firstEmpty(board entity.Board, candidates ...int) (int, bool) {
	for _, cell := range candidates {
		if board.IsEmpty(cell) {
			return cell, true
		}
	}

	return 0, false
}

// randomEmpty - returns a random empty cell from candidates.
func randomEmpty(source Source, board entity.Board, candidates []int) (int, bool) {
	free := make([]int, 0, len(candidates))
	for _, cell := range candidates {
		if board.IsEmpty(cell) {
			free = append(free, cell)
		}
	}

	if len(free) == 0 {
		return 0, false
	}

	return pick(source, free), true
}
