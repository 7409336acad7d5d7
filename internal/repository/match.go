package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type MatchRepository interface {
	Save(ctx context.Context, match *entity.MatchRecord) error
	// Latest returns up to limit matches, the most recently finished first.
	Latest(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
}

type matchRepository struct {
	conn *sql.DB
}

func NewMatchRepository(conn *sql.DB) MatchRepository {
	return &matchRepository{
		conn: conn,
	}
}

func (that *matchRepository) Save(ctx context.Context, match *entity.MatchRecord) error {
	ctx, span := tracer.Start(ctx, "MatchRepository.Save", trace.WithAttributes(attribute.String("game.id", match.GameID)))
	defer span.End()

	board, err := json.Marshal(match.Board)
	if err != nil {
		return fmt.Errorf("can't marshal board: %w", err)
	}

	query := `INSERT INTO matches (game_id, mode, difficulty, winner, board, moves, finished_at) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query,
		match.GameID, match.Mode, match.Difficulty, string(match.Winner), string(board), match.Moves, match.FinishedAt.UnixNano(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "can't save match")
		return fmt.Errorf("can't save match: %w", err)
	}

	return nil
}

func (that *matchRepository) Latest(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	ctx, span := tracer.Start(ctx, "MatchRepository.Latest", trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	query := `SELECT game_id, mode, difficulty, winner, board, moves, finished_at
		FROM matches ORDER BY finished_at DESC, id DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "can't query matches")
		return nil, fmt.Errorf("can't query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*entity.MatchRecord, 0, limit)
	for rows.Next() {
		var (
			match      entity.MatchRecord
			winner     string
			board      string
			finishedAt int64
		)

		if err = rows.Scan(&match.GameID, &match.Mode, &match.Difficulty, &winner, &board, &match.Moves, &finishedAt); err != nil {
			return nil, fmt.Errorf("can't scan match: %w", err)
		}

		if err = json.Unmarshal([]byte(board), &match.Board); err != nil {
			return nil, fmt.Errorf("can't unmarshal board: %w", err)
		}

		match.Winner = entity.Mark(winner)
		match.FinishedAt = time.Unix(0, finishedAt).UTC()
		matches = append(matches, &match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read matches: %w", err)
	}

	return matches, nil
}
