package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrMovePending  = errors.New("computer move is pending")
	ErrGameNotFound = errors.New("game not found")

	ErrNoLegalMove       = errors.New("no legal move")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidMark       = errors.New("invalid mark")
	ErrInvalidMode       = errors.New("invalid game mode")
)
