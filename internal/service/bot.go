package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var (
	ErrBotNotFound     = errors.New("bot player not found")
	ErrGameNotFinished = errors.New("game is not finished")
)

type BotService interface {
	// SuggestMove asks the engine for a move without touching any game.
	// A non-nil seed makes the answer reproducible.
	SuggestMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty string, seed *uint64) (int, error)
	// MakeTurn plays the computer's move in game and returns the chosen cell.
	MakeTurn(ctx context.Context, game *entity.Game) (int, error)
}

type moveEngine interface {
	SelectMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty engine.Difficulty) (int, error)
	SelectMoveSeeded(ctx context.Context, board entity.Board, side entity.Mark, difficulty engine.Difficulty, seed uint64) (int, error)
}

type botService struct {
	engine moveEngine
}

func NewBotService(moveEngine moveEngine) BotService {
	return &botService{
		engine: moveEngine,
	}
}

func (that *botService) SuggestMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty string, seed *uint64) (int, error) {
	level, err := engine.ParseDifficulty(difficulty)
	if err != nil {
		return 0, err
	}

	if seed != nil {
		return that.engine.SelectMoveSeeded(ctx, board, side, level, *seed)
	}

	return that.engine.SelectMove(ctx, board, side, level)
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (int, error) {
	if !game.IsWithBot() {
		return 0, fmt.Errorf("%w: game %s is not against the computer", ErrBotNotFound, game.ID)
	}

	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return 0, ErrBotNotFound
	}

	if err := game.ConfirmOngoingState(); err != nil {
		return 0, err
	}

	if game.Turn != botPlayer.Mark {
		return 0, apperror.ErrNotYourTurn
	}

	cell, err := that.SuggestMove(ctx, game.Board, botPlayer.Mark, game.Difficulty, nil)
	if err != nil {
		return 0, fmt.Errorf("bot failed to select move: %w", err)
	}

	if err = tictactoe.MakeTurn(game, botPlayer.Mark, cell); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}
