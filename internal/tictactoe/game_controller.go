package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MakeTurn - places the player's mark, re-checks the terminal state and passes the turn.
// A rejected move leaves the game untouched.
func MakeTurn(gameInstance *entity.Game, player entity.Mark, cell int) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, player, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board[cell] = player
	gameInstance.Moves++
	gameInstance.UpdateGameState()

	return nil
}

// Restart - empties the board and gives the first move back to X.
func Restart(gameInstance *entity.Game) {
	gameInstance.Reset()
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, playerTurn entity.Mark, cell int) error {
	if !playerTurn.IsPlayer() {
		return apperror.ErrInvalidMark
	}

	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if gameInstance.Turn != playerTurn {
		return apperror.ErrNotYourTurn
	}

	if !gameInstance.Board.IsEmpty(cell) {
		return apperror.ErrCellOccupied
	}

	return nil
}
