package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockGamePlayService struct {
	mock.Mock
}

func (that *mockGamePlayService) NewGame(ctx context.Context, mode, difficulty string, computerMark entity.Mark) (*entity.Game, error) {
	args := that.Called(ctx, mode, difficulty, computerMark)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGamePlayService) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	args := that.Called(ctx, gameID, cell)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGamePlayService) Restart(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGamePlayService) DeleteGame(ctx context.Context, gameID string) error {
	return that.Called(ctx, gameID).Error(0)
}

func (that *mockGamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	args := that.Called(ctx, gameID)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGamePlayService) GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error) {
	args := that.Called(ctx, gameID)
	scores, _ := args.Get(0).(*entity.Scoreboard)
	return scores, args.Error(1)
}

type mockHistoryService struct {
	mock.Mock
}

func (that *mockHistoryService) Latest(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	args := that.Called(ctx, limit)
	matches, _ := args.Get(0).([]*entity.MatchRecord)
	return matches, args.Error(1)
}

type mockBotService struct {
	mock.Mock
}

func (that *mockBotService) SuggestMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty string, seed *uint64) (int, error) {
	args := that.Called(ctx, board, side, difficulty, seed)
	return args.Int(0), args.Error(1)
}

func TestGameUseCase_MakeTurn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Given: a game play service accepting the move
		gamePlay := &mockGamePlayService{}
		game := entity.NewGame("123", entity.PlayerVsPlayer, "", entity.EmptyCell)
		gamePlay.On("MakeTurn", mock.Anything, "123", 4).Return(game, nil).Once()

		useCase := NewGameUseCase(gamePlay, &mockHistoryService{}, &mockBotService{})

		// When: the move is made
		result, err := useCase.MakeTurn(context.Background(), "123", 4)

		// Then: the game is returned
		require.NoError(t, err)
		assert.Equal(t, game, result)
		gamePlay.AssertExpectations(t)
	})

	t.Run("Error is wrapped", func(t *testing.T) {
		gamePlay := &mockGamePlayService{}
		gamePlay.On("MakeTurn", mock.Anything, "123", 4).Return(nil, apperror.ErrMovePending).Once()

		useCase := NewGameUseCase(gamePlay, &mockHistoryService{}, &mockBotService{})

		_, err := useCase.MakeTurn(context.Background(), "123", 4)

		require.ErrorIs(t, err, apperror.ErrMovePending)
	})
}

func TestGameUseCase_History(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "default", limit: 0, expected: DefaultHistoryLimit},
		{name: "negative", limit: -5, expected: DefaultHistoryLimit},
		{name: "as asked", limit: 3, expected: 3},
		{name: "clamped", limit: 1000, expected: MaxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &mockHistoryService{}
			history.On("Latest", mock.Anything, tt.expected).Return([]*entity.MatchRecord{}, nil).Once()

			useCase := NewGameUseCase(&mockGamePlayService{}, history, &mockBotService{})

			matches, err := useCase.History(context.Background(), tt.limit)

			require.NoError(t, err)
			assert.Empty(t, matches)
			history.AssertExpectations(t)
		})
	}
}

func TestGameUseCase_SuggestMove(t *testing.T) {
	bot := &mockBotService{}
	board := entity.Board{entity.PlayerX}
	bot.On("SuggestMove", mock.Anything, board, entity.PlayerO, "master", (*uint64)(nil)).Return(4, nil).Once()

	useCase := NewGameUseCase(&mockGamePlayService{}, &mockHistoryService{}, bot)

	cell, err := useCase.SuggestMove(context.Background(), board, entity.PlayerO, "master", nil)

	require.NoError(t, err)
	assert.Equal(t, 4, cell)
	bot.AssertExpectations(t)
}

func TestGameUseCase_DeleteGame(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		gamePlay := &mockGamePlayService{}
		gamePlay.On("DeleteGame", mock.Anything, "123").Return(nil).Once()

		useCase := NewGameUseCase(gamePlay, &mockHistoryService{}, &mockBotService{})

		require.NoError(t, useCase.DeleteGame(context.Background(), "123"))
		gamePlay.AssertExpectations(t)
	})

	t.Run("Unknown game", func(t *testing.T) {
		gamePlay := &mockGamePlayService{}
		gamePlay.On("DeleteGame", mock.Anything, "404").Return(apperror.ErrGameNotFound).Once()

		useCase := NewGameUseCase(gamePlay, &mockHistoryService{}, &mockBotService{})

		err := useCase.DeleteGame(context.Background(), "404")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Contains(t, err.Error(), "could not delete game")
	})
}
