package entity

import "time"

// MatchRecord is a finished game kept in the history.
type MatchRecord struct {
	GameID     string    `json:"game_id"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty,omitempty"`
	Winner     Mark      `json:"winner"`
	Board      Board     `json:"board"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewMatchRecord(game *Game, finishedAt time.Time) *MatchRecord {
	return &MatchRecord{
		GameID:     game.ID,
		Mode:       game.Mode,
		Difficulty: game.Difficulty,
		Winner:     game.Winner,
		Board:      game.Board,
		Moves:      game.Moves,
		FinishedAt: finishedAt,
	}
}
