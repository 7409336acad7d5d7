package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type HistoryService interface {
	Archive(ctx context.Context, game *entity.Game) error
	Latest(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
}

type matchRepo interface {
	Save(ctx context.Context, match *entity.MatchRecord) error
	Latest(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
}

type historyService struct {
	matchRepo matchRepo
	now       func() time.Time
}

func NewHistoryService(matchRepo matchRepo) HistoryService {
	return &historyService{
		matchRepo: matchRepo,
		now:       time.Now,
	}
}

func (that *historyService) Archive(ctx context.Context, game *entity.Game) error {
	if !game.IsFinished() {
		return fmt.Errorf("archive game %s: %w", game.ID, ErrGameNotFinished)
	}

	if err := that.matchRepo.Save(ctx, entity.NewMatchRecord(game, that.now().UTC())); err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

func (that *historyService) Latest(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	matches, err := that.matchRepo.Latest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get match history: %w", err)
	}

	return matches, nil
}
