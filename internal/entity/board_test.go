package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Result(t *testing.T) {
	t.Run("Returns PlayerX when Player X wins", func(t *testing.T) {
		// Given: a board where Player X has a winning combination
		board := Board{
			PlayerX, PlayerX, PlayerX,
			EmptyCell, PlayerO, EmptyCell,
			EmptyCell, PlayerO, EmptyCell,
		}

		// When: determining the game result
		result := board.Result()

		// Then: it should return PlayerX as the winner
		assert.Equal(t, PlayerX, result)
	})

	t.Run("Returns PlayerO when Player O wins a column", func(t *testing.T) {
		// Given: a board where Player O holds the middle column
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerO, PlayerX,
			EmptyCell, PlayerO, PlayerX,
		}

		// When: determining the game result
		result := board.Result()

		// Then: it should return PlayerO as the winner
		assert.Equal(t, PlayerO, result)
	})

	t.Run("Returns PlayerTie when the board is full", func(t *testing.T) {
		// Given: a board that ended in a tie
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// When: determining the game result
		result := board.Result()

		// Then: it should return PlayerTie
		assert.Equal(t, PlayerTie, result)
	})

	t.Run("Returns EmptyCell when the game is ongoing", func(t *testing.T) {
		// Given: a board that is still in play
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerO,
		}

		// When: determining the game result
		result := board.Result()

		// Then: it should return EmptyCell (game continues)
		assert.Equal(t, EmptyCell, result)
	})

	t.Run("Win on the last cell is not a tie", func(t *testing.T) {
		// Given: a full board where X completed the anti-diagonal with the last mark
		board := Board{
			PlayerO, PlayerX, PlayerX,
			PlayerX, PlayerX, PlayerO,
			PlayerX, PlayerO, PlayerO,
		}

		// Then: X is the winner
		assert.Equal(t, PlayerX, board.Result())
	})
}

func TestBoard_WinningLine(t *testing.T) {
	board := Board{
		PlayerO, PlayerX, EmptyCell,
		PlayerX, PlayerO, EmptyCell,
		PlayerX, EmptyCell, PlayerO,
	}

	line, ok := board.WinningLine(PlayerO)
	require.True(t, ok)
	assert.Equal(t, [3]int{0, 4, 8}, line)

	_, ok = board.WinningLine(PlayerX)
	assert.False(t, ok)

	_, ok = board.WinningLine(EmptyCell)
	assert.False(t, ok, "empty cells never form a winning line")
}

func TestBoard_With(t *testing.T) {
	// Given: an empty board
	board := Board{}

	// When: a hypothetical mark is placed
	next := board.With(4, PlayerX)

	// Then: the copy holds the mark and the original is untouched
	assert.Equal(t, PlayerX, next[4])
	assert.True(t, board.IsEmpty(4))
}

func TestBoard_EmptyCellsAndIsFull(t *testing.T) {
	board := Board{
		PlayerX, EmptyCell, PlayerO,
		EmptyCell, PlayerX, EmptyCell,
		PlayerO, PlayerX, EmptyCell,
	}

	assert.Equal(t, []int{1, 3, 5, 8}, board.EmptyCells())
	assert.False(t, board.IsFull())
	assert.Equal(t, 3, board.Count(PlayerX))

	full := Board{
		PlayerX, PlayerO, PlayerX,
		PlayerX, PlayerO, PlayerO,
		PlayerO, PlayerX, PlayerX,
	}
	assert.True(t, full.IsFull())
	assert.Empty(t, full.EmptyCells())
}

func TestBoard_NeverTwoWinners(t *testing.T) {
	// Given: every board reachable by legal alternating play from an empty board
	seen := make(map[Board]struct{})

	var walk func(board Board, turn Mark)
	walk = func(board Board, turn Mark) {
		if _, ok := seen[board]; ok {
			return
		}
		seen[board] = struct{}{}

		// Then: at most one mark owns a winning line
		require.False(t, board.HasWon(PlayerX) && board.HasWon(PlayerO), "board %v has two winners", board)

		if board.Result() != EmptyCell {
			return
		}

		for _, cell := range board.EmptyCells() {
			walk(board.With(cell, turn), turn.Opponent())
		}
	}

	walk(Board{}, PlayerX)

	assert.Len(t, seen, 5478)
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, EmptyCell, PlayerTie.Opponent())
	assert.False(t, EmptyCell.IsPlayer())
}

func TestOppositeCorner(t *testing.T) {
	assert.Equal(t, 8, OppositeCorner(0))
	assert.Equal(t, 6, OppositeCorner(2))
	assert.Equal(t, 2, OppositeCorner(6))
	assert.Equal(t, 0, OppositeCorner(8))
}
