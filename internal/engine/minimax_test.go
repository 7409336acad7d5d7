package engine

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimax_SelfPlayDraws(t *testing.T) {
	// Given: minimax plays both sides from the empty board
	strategy := NewMinimaxStrategy()
	board := entity.Board{}
	side := entity.PlayerX

	// When: the game is played out
	for board.Result() == entity.EmptyCell {
		cell, err := strategy.SelectMove(board, side)
		require.NoError(t, err)
		require.True(t, board.IsEmpty(cell))

		board = board.With(cell, side)
		side = side.Opponent()
	}

	// Then: perfect play ends in a draw
	assert.Equal(t, entity.PlayerTie, board.Result())
}

func TestMinimax_NeverLoses(t *testing.T) {
	strategy := NewMinimaxStrategy()

	for _, side := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
		t.Run(string(side), func(t *testing.T) {
			var play func(board entity.Board, toMove entity.Mark)
			play = func(board entity.Board, toMove entity.Mark) {
				if result := board.Result(); result != entity.EmptyCell {
					require.NotEqual(t, side.Opponent(), result, "lost on board %v", board)
					return
				}

				if toMove == side {
					cell, err := strategy.SelectMove(board, side)
					require.NoError(t, err)
					play(board.With(cell, side), toMove.Opponent())
					return
				}

				// the opponent tries every reply
				for _, cell := range board.EmptyCells() {
					play(board.With(cell, toMove), toMove.Opponent())
				}
			}

			play(entity.Board{}, entity.PlayerX)
		})
	}
}

func TestMinimax_TakesImmediateWin(t *testing.T) {
	// O O _
	// X X _
	// _ _ _
	cell, err := NewMinimaxStrategy().SelectMove(parseBoard("OO_XX____"), entity.PlayerX)

	require.NoError(t, err)
	assert.Equal(t, 5, cell)
}

func TestMinimax_BlocksWhenItCannotWin(t *testing.T) {
	// X X _
	// _ O _
	// _ _ _
	cell, err := NewMinimaxStrategy().SelectMove(parseBoard("XX__O____"), entity.PlayerO)

	require.NoError(t, err)
	assert.Equal(t, 2, cell)
}

func TestMinimax_TieBreakLowestIndex(t *testing.T) {
	strategy := NewMinimaxStrategy()

	// every opening move draws under perfect play
	for cell := range entity.BoardSize {
		assert.Equal(t, 0, strategy.Score(entity.Board{}, entity.PlayerX, cell))
	}

	cell, err := strategy.SelectMove(entity.Board{}, entity.PlayerX)
	require.NoError(t, err)
	assert.Equal(t, 0, cell)
}

func TestMinimax_Scores(t *testing.T) {
	strategy := NewMinimaxStrategy()
	board := parseBoard("OO_XX____")

	// winning at once is one ply deep
	assert.Equal(t, winScore-1, strategy.Score(board, entity.PlayerX, 5))

	// anything else lets O win on the next ply
	assert.Equal(t, 2-winScore, strategy.Score(board, entity.PlayerX, 8))
}
