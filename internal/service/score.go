package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type ScoreService interface {
	GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error)
	// RecordResult counts a finished game; draws leave the scoreboard as it was.
	RecordResult(ctx context.Context, gameID string, winner entity.Mark) (*entity.Scoreboard, error)
	DeleteScores(ctx context.Context, gameID string) error
}

type scoreRepo interface {
	Set(ctx context.Context, key string, scoreboard *entity.Scoreboard) error
	Get(ctx context.Context, key string) (*entity.Scoreboard, error)
	Delete(ctx context.Context, key string) error
}

type scoreService struct {
	scoreRepo scoreRepo
}

func NewScoreService(scoreRepo scoreRepo) ScoreService {
	return &scoreService{
		scoreRepo: scoreRepo,
	}
}

func (that *scoreService) GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error) {
	scoreboard, err := that.scoreRepo.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	return scoreboard, nil
}

func (that *scoreService) RecordResult(ctx context.Context, gameID string, winner entity.Mark) (*entity.Scoreboard, error) {
	scoreboard, err := that.GetScores(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !winner.IsPlayer() {
		return scoreboard, nil
	}

	scoreboard.Record(winner)

	if err = that.scoreRepo.Set(ctx, gameID, scoreboard); err != nil {
		return nil, fmt.Errorf("failed to save scores: %w", err)
	}

	return scoreboard, nil
}

func (that *scoreService) DeleteScores(ctx context.Context, gameID string) error {
	if err := that.scoreRepo.Delete(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete scores: %w", err)
	}

	return nil
}
