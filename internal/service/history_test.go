package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestHistoryService(t *testing.T) {
	ctx := context.Background()
	matches := &memoryMatchRepo{}
	finishedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	history := &historyService{matchRepo: matches, now: func() time.Time { return finishedAt }}

	t.Run("ongoing games are not archived", func(t *testing.T) {
		game := entity.NewGame("123", entity.PlayerVsPlayer, "", entity.EmptyCell)

		err := history.Archive(ctx, game)

		require.ErrorIs(t, err, ErrGameNotFinished)
		assert.Empty(t, matches.matches)
	})

	t.Run("finished games are archived", func(t *testing.T) {
		game := entity.NewGame("123", entity.PlayerVsComputer, "expert", entity.PlayerO)
		game.Board = entity.Board{
			entity.PlayerX, entity.PlayerX, entity.PlayerX,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}
		game.Moves = 5
		game.UpdateGameState()

		require.NoError(t, history.Archive(ctx, game))

		latest, err := history.Latest(ctx, 10)
		require.NoError(t, err)
		require.Len(t, latest, 1)
		assert.Equal(t, entity.NewMatchRecord(game, finishedAt), latest[0])
	})
}
