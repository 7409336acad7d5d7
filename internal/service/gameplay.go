package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var tracer = otel.Tracer("service")

// Notifier receives every game event. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, event entity.Event)
}

type GamePlayService interface {
	NewGame(ctx context.Context, mode, difficulty string, computerMark entity.Mark) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string) (*entity.Game, error)
	// DeleteGame drops the game, its scoreboard and any pending computer reply. History is kept.
	DeleteGame(ctx context.Context, gameID string) error

	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error)

	// Close cancels every pending computer reply.
	Close()
}

type GamePlayOptions struct {
	// DefaultDifficulty is used when a game against the computer names none.
	DefaultDifficulty string
	// ReplyDelay postpones the computer's move; zero or less plays it within the triggering call.
	ReplyDelay time.Duration
}

const (
	// maxReplyAttempts bounds how often a failing computer reply is tried before it waits for the next turn request.
	maxReplyAttempts = 3
	replyRetryDelay  = 200 * time.Millisecond
)

// session serialises everything that happens to one game. It lives in the
// sessions map only while it is locked or a reply is scheduled.
type session struct {
	mu sync.Mutex

	// generation grows on every restart, so a reply scheduled for an older board is dropped.
	generation uint64
	pending    bool
	timer      *time.Timer
	released   bool
}

type gamePlayService struct {
	logger *slog.Logger

	gameService    GameService
	botService     BotService
	scoreService   ScoreService
	historyService HistoryService
	notifier       Notifier

	options    GamePlayOptions
	retryDelay time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

func NewGamePlayService(
	logger *slog.Logger,
	gameService GameService,
	botService BotService,
	scoreService ScoreService,
	historyService HistoryService,
	notifier Notifier,
	options GamePlayOptions,
) GamePlayService {
	return &gamePlayService{
		logger:         logger.With("component", "gameplay"),
		gameService:    gameService,
		botService:     botService,
		scoreService:   scoreService,
		historyService: historyService,
		notifier:       notifier,
		options:        options,
		retryDelay:     replyRetryDelay,
		sessions:       make(map[string]*session),
	}
}

func (that *gamePlayService) NewGame(ctx context.Context, mode, difficulty string, computerMark entity.Mark) (*entity.Game, error) {
	ctx, span := tracer.Start(ctx, "GamePlayService.NewGame", trace.WithAttributes(attribute.String("game.mode", mode)))
	defer span.End()

	if !entity.IsValidMode(mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	if mode == entity.PlayerVsComputer {
		if difficulty == "" {
			difficulty = that.options.DefaultDifficulty
		}

		level, err := engine.ParseDifficulty(difficulty)
		if err != nil {
			return nil, err
		}
		difficulty = level.String()

		if computerMark == entity.EmptyCell {
			computerMark = entity.PlayerO
		}

		if !computerMark.IsPlayer() {
			return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, computerMark)
		}
	}

	game, err := that.gameService.CreateGame(ctx, mode, difficulty, computerMark)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create game")
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	span.SetAttributes(attribute.String("game.id", game.ID))
	that.logger.Info("game created", "method", "NewGame", "game_id", game.ID, "mode", mode, "difficulty", difficulty)

	s := that.lock(game.ID)
	defer that.unlock(game.ID, s)

	that.notifier.Notify(ctx, entity.NewGameEvent(entity.EventState, game))

	// the computer opens when it plays X
	if game.IsBotTurn() {
		that.scheduleReply(ctx, s, game)
	}

	return game.Clone(), nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	ctx, span := tracer.Start(ctx, "GamePlayService.MakeTurn", trace.WithAttributes(
		attribute.String("game.id", gameID),
		attribute.Int("cell", cell),
	))
	defer span.End()

	s := that.lock(gameID)
	defer that.unlock(gameID, s)

	if s.pending {
		return nil, apperror.ErrMovePending
	}

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	// every earlier attempt at the computer's reply failed, so try again
	if game.IsBotTurn() {
		that.logger.Warn("resuming stalled computer reply", "method", "MakeTurn", "game_id", gameID)
		that.scheduleReply(ctx, s, game)

		return nil, apperror.ErrMovePending
	}

	mark := game.Turn
	if err = tictactoe.MakeTurn(game, mark, cell); err != nil {
		span.SetStatus(codes.Error, "illegal move")
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.commitMove(ctx, game, mark, cell); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to commit move")
		return nil, err
	}

	if game.IsBotTurn() {
		that.scheduleReply(ctx, s, game)
	}

	return game.Clone(), nil
}

func (that *gamePlayService) Restart(ctx context.Context, gameID string) (*entity.Game, error) {
	ctx, span := tracer.Start(ctx, "GamePlayService.Restart", trace.WithAttributes(attribute.String("game.id", gameID)))
	defer span.End()

	s := that.lock(gameID)
	defer that.unlock(gameID, s)

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	s.cancelReply()

	tictactoe.Restart(game)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("game restarted", "method", "Restart", "game_id", gameID)
	that.notifier.Notify(ctx, entity.NewGameEvent(entity.EventRestart, game))

	if game.IsBotTurn() {
		that.scheduleReply(ctx, s, game)
	}

	return game.Clone(), nil
}

func (that *gamePlayService) DeleteGame(ctx context.Context, gameID string) error {
	ctx, span := tracer.Start(ctx, "GamePlayService.DeleteGame", trace.WithAttributes(attribute.String("game.id", gameID)))
	defer span.End()

	s := that.lock(gameID)
	defer that.unlock(gameID, s)

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game by id: %w", err)
	}

	s.cancelReply()

	if err = that.gameService.DeleteGame(ctx, gameID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete game")
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if err = that.scoreService.DeleteScores(ctx, gameID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete scores")
		return fmt.Errorf("failed to delete scores: %w", err)
	}

	that.logger.Info("game deleted", "method", "DeleteGame", "game_id", gameID)
	that.notifier.Notify(ctx, entity.NewGameEvent(entity.EventDelete, game))

	return nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) GetScores(ctx context.Context, gameID string) (*entity.Scoreboard, error) {
	if _, err := that.gameService.GetGameByID(ctx, gameID); err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	scoreboard, err := that.scoreService.GetScores(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	return scoreboard, nil
}

func (that *gamePlayService) Close() {
	that.mu.Lock()
	sessions := make(map[string]*session, len(that.sessions))
	for gameID, s := range that.sessions {
		sessions[gameID] = s
	}
	that.mu.Unlock()

	for gameID, s := range sessions {
		s.mu.Lock()
		s.cancelReply()
		that.unlock(gameID, s)
	}
}

// lock - returns the game's session with its mutex held.
func (that *gamePlayService) lock(gameID string) *session {
	for {
		that.mu.Lock()
		s, ok := that.sessions[gameID]
		if !ok {
			s = &session{}
			that.sessions[gameID] = s
		}
		that.mu.Unlock()

		s.mu.Lock()
		if !s.released {
			return s
		}

		// dropped from the map while we waited, take the fresh one
		s.mu.Unlock()
	}
}

// unlock - releases s and forgets it when no reply is scheduled.
func (that *gamePlayService) unlock(gameID string, s *session) {
	if !s.pending {
		that.mu.Lock()
		if that.sessions[gameID] == s {
			delete(that.sessions, gameID)
		}
		that.mu.Unlock()

		s.released = true
	}

	s.mu.Unlock()
}

// commitMove - persists a placed mark and publishes its consequences. A finished
// game is scored and archived before it is stored, so a failure leaves the stored
// game one move earlier instead of finished without a score.
func (that *gamePlayService) commitMove(ctx context.Context, game *entity.Game, mark entity.Mark, cell int) error {
	if game.IsFinished() {
		if _, err := that.scoreService.RecordResult(ctx, game.ID, game.Winner); err != nil {
			return fmt.Errorf("failed to record result: %w", err)
		}

		if err := that.historyService.Archive(ctx, game); err != nil {
			return fmt.Errorf("failed to archive game: %w", err)
		}
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	that.notifier.Notify(ctx, entity.NewMoveEvent(game, mark, cell))

	if game.IsFinished() {
		that.logger.Info("game finished", "game_id", game.ID, "winner", game.Winner, "moves", game.Moves)
		that.notifier.Notify(ctx, entity.NewResultEvent(game))
	}

	return nil
}

// scheduleReply - plays the computer's move now or after the reply delay. A failed
// immediate reply is retried in the background. Caller holds s.mu.
func (that *gamePlayService) scheduleReply(ctx context.Context, s *session, game *entity.Game) {
	if that.options.ReplyDelay > 0 {
		that.deferReply(ctx, s, game.ID, that.options.ReplyDelay, 1)
		return
	}

	err := that.playReply(ctx, game)
	if err == nil {
		return
	}

	that.logger.Warn("computer reply failed, retrying", "method", "scheduleReply", "game_id", game.ID, "attempt", 1, "error", err)
	that.deferReply(ctx, s, game.ID, that.retryDelay, 2)
}

// deferReply - arms the reply timer. Caller holds s.mu.
func (that *gamePlayService) deferReply(ctx context.Context, s *session, gameID string, delay time.Duration, attempt int) {
	replyCtx := context.WithoutCancel(ctx)
	generation := s.generation

	s.pending = true
	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		defer that.unlock(gameID, s)

		if s.generation != generation || !s.pending {
			return
		}

		s.pending = false
		s.timer = nil

		err := that.replyTo(replyCtx, gameID)
		if err == nil {
			return
		}

		log := that.logger.With("method", "deferReply", "game_id", gameID, "attempt", attempt)

		if attempt < maxReplyAttempts {
			log.Warn("computer reply failed, retrying", "error", err)
			that.deferReply(replyCtx, s, gameID, that.retryDelay, attempt+1)
			return
		}

		log.Error("computer reply failed, waiting for the next turn request", "error", err)
	})
}

// replyTo - loads the stored game and plays the computer's move on it.
func (that *gamePlayService) replyTo(ctx context.Context, gameID string) error {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get game by id: %w", err)
	}

	return that.playReply(ctx, game)
}

// playReply - the computer's move applied to game. The move is played on a copy,
// so game only changes once the move is stored. Caller holds the session lock.
func (that *gamePlayService) playReply(ctx context.Context, game *entity.Game) error {
	ctx, span := tracer.Start(ctx, "GamePlayService.playReply", trace.WithAttributes(attribute.String("game.id", game.ID)))
	defer span.End()

	if !game.IsBotTurn() {
		return nil
	}

	reply := game.Clone()
	bot := reply.BotPlayer()

	cell, err := that.botService.MakeTurn(ctx, reply)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bot failed")
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	if err = that.commitMove(ctx, reply, bot.Mark, cell); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to commit bot move")
		return err
	}

	that.logger.Debug("computer moved", "game_id", reply.ID, "cell", cell, "difficulty", reply.Difficulty)
	*game = *reply

	return nil
}

// cancelReply - drops a scheduled reply. Caller holds s.mu.
func (that *session) cancelReply() {
	that.generation++
	that.pending = false

	if that.timer != nil {
		that.timer.Stop()
		that.timer = nil
	}
}
