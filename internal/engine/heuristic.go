package engine

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// HeuristicStrategy plays the first rule that applies:
// win, block, centre, random corner, random side.
type HeuristicStrategy struct {
	source Source
}

func NewHeuristicStrategy(source Source) *HeuristicStrategy {
	return &HeuristicStrategy{source: source}
}

func (that *HeuristicStrategy) SelectMove(board entity.Board, side entity.Mark) (int, error) {
	if err := checkPlayable(board, side); err != nil {
		return 0, err
	}

	if cell, ok := findWinningMove(board, side); ok {
		return cell, nil
	}

	if cell, ok := findWinningMove(board, side.Opponent()); ok {
		return cell, nil
	}

	if board.IsEmpty(entity.CenterCell) {
		return entity.CenterCell, nil
	}

	return fallbackMove(that.source, board), nil
}

// ExpertStrategy extends the heuristic with fork creation, fork blocking and
// the opposite-corner reply.
type ExpertStrategy struct {
	source Source
}

func NewExpertStrategy(source Source) *ExpertStrategy {
	return &ExpertStrategy{source: source}
}

func (that *ExpertStrategy) SelectMove(board entity.Board, side entity.Mark) (int, error) {
	if err := checkPlayable(board, side); err != nil {
		return 0, err
	}

	opponent := side.Opponent()

	if cell, ok := findWinningMove(board, side); ok {
		return cell, nil
	}

	if cell, ok := findWinningMove(board, opponent); ok {
		return cell, nil
	}

	if cell, ok := findForkMove(board, side); ok {
		return cell, nil
	}

	if cell, ok := findForkBlock(board, side); ok {
		return cell, nil
	}

	if board.IsEmpty(entity.CenterCell) {
		return entity.CenterCell, nil
	}

	if cell, ok := findOppositeCorner(board, opponent); ok {
		return cell, nil
	}

	return fallbackMove(that.source, board), nil
}

// fallbackMove - random corner, then random side, then any empty cell.
func fallbackMove(source Source, board entity.Board) int {
	if cell, ok := randomEmpty(source, board, entity.CornerCells[:]); ok {
		return cell
	}

	if cell, ok := randomEmpty(source, board, entity.SideCells[:]); ok {
		return cell
	}

	return pick(source, board.EmptyCells())
}

// findWinningMove - returns the lowest empty cell that completes a line for mark.
func findWinningMove(board entity.Board, mark entity.Mark) (int, bool) {
	for _, cell := range board.EmptyCells() {
		if board.With(cell, mark).HasWon(mark) {
			return cell, true
		}
	}

	return 0, false
}

// openTwos - counts lines holding two marks and one empty cell.
func openTwos(board entity.Board, mark entity.Mark) int {
	count := 0
	for _, combo := range entity.WinCombos {
		marks, empty := 0, 0
		for _, cell := range combo {
			switch board[cell] {
			case mark:
				marks++
			case entity.EmptyCell:
				empty++
			}
		}

		if marks == 2 && empty == 1 {
			count++
		}
	}

	return count
}

// isFork reports whether placing mark on cell leaves at least two open twos.
func isFork(board entity.Board, mark entity.Mark, cell int) bool {
	return board.IsEmpty(cell) && openTwos(board.With(cell, mark), mark) >= 2
}

// findForkMove - returns the lowest cell that creates a fork for mark.
func findForkMove(board entity.Board, mark entity.Mark) (int, bool) {
	for _, cell := range board.EmptyCells() {
		if isFork(board, mark, cell) {
			return cell, true
		}
	}

	return 0, false
}

// findForkBlock - returns the lowest cell where the opponent of mark could fork, so mark can occupy it.
func findForkBlock(board entity.Board, mark entity.Mark) (int, bool) {
	return findForkMove(board, mark.Opponent())
}

// findOppositeCorner - returns an empty corner diagonally across from a corner held by opponent.
func findOppositeCorner(board entity.Board, opponent entity.Mark) (int, bool) {
	for _, corner := range entity.CornerCells {
		if board[corner] != opponent {
			continue
		}

		if opposite := entity.OppositeCorner(corner); board.IsEmpty(opposite) {
			return opposite, true
		}
	}

	return 0, false
}
