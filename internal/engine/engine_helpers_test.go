package engine

import (
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// fakeSource replays fixed values; Intn wraps its value into range.
type fakeSource struct {
	intValue   int
	floatValue float64
}

func (that *fakeSource) Intn(n int) int {
	return that.intValue % n
}

func (that *fakeSource) Float64() float64 {
	return that.floatValue
}

// sideToMove - X moves whenever both sides have the same number of marks.
func sideToMove(board entity.Board) entity.Mark {
	if board.Count(entity.PlayerX) == board.Count(entity.PlayerO) {
		return entity.PlayerX
	}

	return entity.PlayerO
}

// walkPositions calls fn once for every reachable undecided position.
func walkPositions(fn func(board entity.Board, side entity.Mark)) {
	seen := make(map[entity.Board]bool)

	var walk func(board entity.Board)
	walk = func(board entity.Board) {
		if seen[board] || board.Result() != entity.EmptyCell {
			return
		}
		seen[board] = true

		side := sideToMove(board)
		fn(board, side)

		for _, cell := range board.EmptyCells() {
			walk(board.With(cell, side))
		}
	}

	walk(entity.Board{})
}

func parseBoard(cells string) entity.Board {
	var board entity.Board
	for i, r := range cells {
		switch r {
		case 'X':
			board[i] = entity.PlayerX
		case 'O':
			board[i] = entity.PlayerO
		}
	}

	return board
}
