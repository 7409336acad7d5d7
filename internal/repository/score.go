package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// ScoreRepository stores one scoreboard per key, usually a game id.
type ScoreRepository interface {
	Set(ctx context.Context, key string, scoreboard *entity.Scoreboard) error
	// Get returns an empty scoreboard for an unknown key.
	Get(ctx context.Context, key string) (*entity.Scoreboard, error)
	// Delete removes the scoreboard; an unknown key is not an error.
	Delete(ctx context.Context, key string) error
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func (that *dbScore) Set(ctx context.Context, key string, scoreboard *entity.Scoreboard) error {
	ctx, span := tracer.Start(ctx, "ScoreRepository.Set", trace.WithAttributes(attribute.String("score.key", key)))
	defer span.End()

	scoreJSON, err := json.Marshal(scoreboard)
	if err != nil {
		return fmt.Errorf("failed to marshal scoreboard: %w", err)
	}

	err = that.client.Set(ctx, scoreKeyPrefix+key, scoreJSON, 0).Err()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to set scoreboard")
		return fmt.Errorf("failed to set scoreboard: %w", err)
	}

	return nil
}

func (that *dbScore) Get(ctx context.Context, key string) (*entity.Scoreboard, error) {
	ctx, span := tracer.Start(ctx, "ScoreRepository.Get", trace.WithAttributes(attribute.String("score.key", key)))
	defer span.End()

	response, err := that.client.Get(ctx, scoreKeyPrefix+key).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Scoreboard{}, nil
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get scoreboard")
		return nil, fmt.Errorf("failed to get scoreboard: %w", err)
	}

	var scoreboard entity.Scoreboard
	if err = json.Unmarshal([]byte(response), &scoreboard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoreboard: %w", err)
	}

	return &scoreboard, nil
}

func (that *dbScore) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "ScoreRepository.Delete", trace.WithAttributes(attribute.String("score.key", key)))
	defer span.End()

	if err := that.client.Del(ctx, scoreKeyPrefix+key).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete scoreboard")
		return fmt.Errorf("failed to delete scoreboard: %w", err)
	}

	return nil
}
