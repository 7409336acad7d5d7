package engine

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	winScore = 10
	maxDepth = entity.BoardSize
)

// MinimaxStrategy searches the full game tree. A win scores 10-depth, a loss
// depth-10 and a draw 0, with depth in plies from the current position, so it
// prefers quick wins and slow losses. Equal scores resolve to the lowest cell.
type MinimaxStrategy struct{}

func NewMinimaxStrategy() *MinimaxStrategy {
	return &MinimaxStrategy{}
}

func (that *MinimaxStrategy) SelectMove(board entity.Board, side entity.Mark) (int, error) {
	if err := checkPlayable(board, side); err != nil {
		return 0, err
	}

	search := &minimaxSearch{
		side: side,
		memo: make(map[entity.Board]int),
	}

	bestCell, bestScore := -1, math.MinInt
	for _, cell := range board.EmptyCells() {
		score := search.score(board.With(cell, side), 1)
		if score > bestScore {
			bestCell, bestScore = cell, score
		}
	}

	return bestCell, nil
}

// Score returns the minimax value of playing cell for side, from side's point of view.
func (that *MinimaxStrategy) Score(board entity.Board, side entity.Mark, cell int) int {
	search := &minimaxSearch{
		side: side,
		memo: make(map[entity.Board]int),
	}

	return search.score(board.With(cell, side), 1)
}

// minimaxSearch holds the state of one search. Positions are memoised by board:
// within a search the board fixes both the depth and the side to move.
type minimaxSearch struct {
	side entity.Mark
	memo map[entity.Board]int
}

func (that *minimaxSearch) score(board entity.Board, depth int) int {
	if score, ok := that.memo[board]; ok {
		return score
	}

	score := that.evaluate(board, depth)
	that.memo[board] = score

	return score
}

func (that *minimaxSearch) evaluate(board entity.Board, depth int) int {
	switch board.Result() {
	case that.side:
		return winScore - depth
	case that.side.Opponent():
		return depth - winScore
	case entity.PlayerTie:
		return 0
	}

	if depth >= maxDepth {
		return 0
	}

	// odd depth: the opponent answers the searching side's move
	maximizing := depth%2 == 0
	toMove := that.side
	if !maximizing {
		toMove = that.side.Opponent()
	}

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}

	for _, cell := range board.EmptyCells() {
		score := that.score(board.With(cell, toMove), depth+1)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
