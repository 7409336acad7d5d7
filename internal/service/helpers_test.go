package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// memoryGameRepo stores games as JSON, like the redis repository does.
type memoryGameRepo struct {
	mu    sync.Mutex
	games map[string][]byte
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: make(map[string][]byte)}
}

func (that *memoryGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()
	that.games[game.ID] = data

	return nil
}

func (that *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, ok := that.games[id]
	if !ok {
		return &entity.Game{}, apperror.ErrGameNotFound
	}

	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *memoryGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(that.games, id)

	return nil
}

type memoryScoreRepo struct {
	mu     sync.Mutex
	scores map[string]entity.Scoreboard
	// setErr, when set, fails every write
	setErr error
}

func newMemoryScoreRepo() *memoryScoreRepo {
	return &memoryScoreRepo{scores: make(map[string]entity.Scoreboard)}
}

func (that *memoryScoreRepo) Set(_ context.Context, key string, scoreboard *entity.Scoreboard) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.setErr != nil {
		return that.setErr
	}
	that.scores[key] = *scoreboard

	return nil
}

func (that *memoryScoreRepo) Get(_ context.Context, key string) (*entity.Scoreboard, error) {
	that.mu.Lock()
	defer that.mu.Unlock()
	scoreboard := that.scores[key]

	return &scoreboard, nil
}

func (that *memoryScoreRepo) Delete(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	delete(that.scores, key)

	return nil
}

func (that *memoryScoreRepo) failWrites(err error) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.setErr = err
}

type memoryMatchRepo struct {
	mu      sync.Mutex
	matches []*entity.MatchRecord
}

func (that *memoryMatchRepo) Save(_ context.Context, match *entity.MatchRecord) error {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.matches = append(that.matches, match)

	return nil
}

func (that *memoryMatchRepo) Latest(_ context.Context, limit int) ([]*entity.MatchRecord, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	matches := append([]*entity.MatchRecord(nil), that.matches...)
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].FinishedAt.After(matches[j].FinishedAt) })

	if len(matches) > limit {
		matches = matches[:limit]
	}

	return matches, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.Event
}

func (that *recordingNotifier) Notify(_ context.Context, event entity.Event) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.events = append(that.events, event)
}

func (that *recordingNotifier) Types() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	types := make([]string, 0, len(that.events))
	for _, event := range that.events {
		types = append(types, event.Type)
	}

	return types
}

type mockEngine struct {
	mock.Mock
}

func (that *mockEngine) SelectMove(ctx context.Context, board entity.Board, side entity.Mark, difficulty engine.Difficulty) (int, error) {
	args := that.Called(ctx, board, side, difficulty)
	return args.Int(0), args.Error(1)
}

func (that *mockEngine) SelectMoveSeeded(ctx context.Context, board entity.Board, side entity.Mark, difficulty engine.Difficulty, seed uint64) (int, error) {
	args := that.Called(ctx, board, side, difficulty, seed)
	return args.Int(0), args.Error(1)
}

// flakyEngine fails its first failures calls, then plays the first empty cell.
type flakyEngine struct {
	mu       sync.Mutex
	failures int
	calls    int
}

func (that *flakyEngine) SelectMove(_ context.Context, board entity.Board, _ entity.Mark, _ engine.Difficulty) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.calls++
	if that.calls <= that.failures {
		return 0, errors.New("engine unavailable")
	}

	return board.EmptyCells()[0], nil
}

func (that *flakyEngine) SelectMoveSeeded(ctx context.Context, board entity.Board, side entity.Mark, difficulty engine.Difficulty, _ uint64) (int, error) {
	return that.SelectMove(ctx, board, side, difficulty)
}

func (that *flakyEngine) Calls() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.calls
}

func (that *gamePlayService) sessionCount() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.sessions)
}
