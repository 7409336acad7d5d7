package engine

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var tracer = otel.Tracer("engine")

type Options struct {
	// BlendProbability is the chance that the blended difficulty plays the heuristic move.
	// Nil means DefaultBlendProbability; an explicit zero makes blended play like random.
	BlendProbability *float64
	// Source feeds every random decision. Nil means system entropy.
	Source Source
}

// Engine dispatches a difficulty to its strategy.
type Engine struct {
	logger *slog.Logger

	blendProbability float64
	strategies       map[Difficulty]Strategy
}

func New(logger *slog.Logger, options Options) *Engine {
	source := options.Source
	if source == nil {
		source = NewRandomSource()
	}

	blendProbability := DefaultBlendProbability
	if options.BlendProbability != nil {
		blendProbability = *options.BlendProbability
	}

	return &Engine{
		logger:           logger.With("component", "engine"),
		blendProbability: blendProbability,
		strategies:       newStrategies(source, blendProbability),
	}
}

func newStrategies(source Source, blendProbability float64) map[Difficulty]Strategy {
	return map[Difficulty]Strategy{
		Random:    NewRandomStrategy(source),
		Blended:   NewBlendedStrategy(source, blendProbability),
		Heuristic: NewHeuristicStrategy(source),
		Expert:    NewExpertStrategy(source),
		Minimax:   NewMinimaxStrategy(),
	}
}

// SelectMove returns the cell side plays on board at the given difficulty.
func (that *Engine) SelectMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty Difficulty) (int, error) {
	return that.selectMove(ctx, that.strategies, board, side, difficulty)
}

// SelectMoveSeeded is SelectMove with a private source built from seed, so the
// same request always yields the same cell.
func (that *Engine) SelectMoveSeeded(ctx context.Context, board entity.Board, side entity.Mark, difficulty Difficulty, seed uint64) (int, error) {
	strategies := newStrategies(NewSource(seed), that.blendProbability)

	return that.selectMove(ctx, strategies, board, side, difficulty)
}

func (that *Engine) selectMove(
	ctx context.Context,
	strategies map[Difficulty]Strategy,
	board entity.Board,
	side entity.Mark,
	difficulty Difficulty,
) (int, error) {
	_, span := tracer.Start(ctx, "engine.SelectMove", trace.WithAttributes(
		attribute.String("difficulty", difficulty.String()),
		attribute.String("side", string(side)),
	))
	defer span.End()

	log := that.logger.With("method", "SelectMove", "difficulty", difficulty.String(), "side", side)

	strategy, ok := strategies[difficulty]
	if !ok {
		span.SetStatus(codes.Error, "unknown difficulty")
		return 0, fmt.Errorf("%w: %s", apperror.ErrInvalidDifficulty, difficulty)
	}

	cell, err := strategy.SelectMove(board, side)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "strategy failed")
		return 0, fmt.Errorf("failed to select move: %w", err)
	}

	span.SetAttributes(attribute.Int("cell", cell))
	log.Debug("move selected", "cell", cell)

	return cell, nil
}
