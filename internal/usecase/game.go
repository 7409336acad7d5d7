package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// GameUseCase is everything the transports may ask of the game.
type GameUseCase interface {
	NewGame(ctx context.Context, mode, difficulty string, computerMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error)

	History(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	SuggestMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty string, seed *uint64) (int, error)
}

type gamePlayService interface {
	NewGame(ctx context.Context, mode, difficulty string, computerMark entity.Mark) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error)
}

type historyService interface {
	Latest(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
}

type botService interface {
	SuggestMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty string, seed *uint64) (int, error)
}

type gameUseCase struct {
	gamePlayService gamePlayService
	historyService  historyService
	botService      botService
}

func NewGameUseCase(gamePlayService gamePlayService, historyService historyService, botService botService) GameUseCase {
	return &gameUseCase{
		gamePlayService: gamePlayService,
		historyService:  historyService,
		botService:      botService,
	}
}

func (that *gameUseCase) NewGame(ctx context.Context, mode, difficulty string, computerMark entity.Mark) (*entity.Game, error) {
	game, err := that.gamePlayService.NewGame(ctx, mode, difficulty, computerMark)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gamePlayService.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("could not get game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	game, err := that.gamePlayService.MakeTurn(ctx, gameID, cell)
	if err != nil {
		return nil, fmt.Errorf("could not make turn: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) Restart(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gamePlayService.Restart(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("could not restart game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gamePlayService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("could not delete game: %w", err)
	}

	return nil
}

func (that *gameUseCase) GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error) {
	scores, err := that.gamePlayService.GetScores(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("could not get scores: %w", err)
	}

	return scores, nil
}

// History - latest finished games; limit is clamped to [1, MaxHistoryLimit], zero means the default.
func (that *gameUseCase) History(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	matches, err := that.historyService.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not get history: %w", err)
	}

	return matches, nil
}

func (that *gameUseCase) SuggestMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty string, seed *uint64) (int, error) {
	cell, err := that.botService.SuggestMove(ctx, board, side, difficulty, seed)
	if err != nil {
		return 0, fmt.Errorf("could not select move: %w", err)
	}

	return cell, nil
}
