package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	PlayerVsPlayer   = "pvp"
	PlayerVsComputer = "pvc"
)

type Game struct {
	ID          string    `json:"id"`
	Board       Board     `json:"board"`
	Winner      Mark      `json:"winner"`
	WinningLine []int     `json:"winning_line,omitempty"`
	Status      string    `json:"status"`
	Turn        Mark      `json:"player_turn"`
	Moves       int       `json:"moves"`
	Players     []*Player `json:"players,omitempty"`
	Mode        string    `json:"mode"`
	Difficulty  string    `json:"difficulty,omitempty"`
}

// NewGame - creates a game in progress with an empty board and X to move.
func NewGame(id, mode, difficulty string, botMark Mark) *Game {
	if mode != PlayerVsComputer {
		botMark = EmptyCell
		difficulty = ""
	}

	return &Game{
		ID:         id,
		Board:      Board{},
		Turn:       PlayerX,
		Status:     StatusOngoing,
		Players:    NewPlayers(botMark),
		Mode:       mode,
		Difficulty: difficulty,
	}
}

// IsValidMode reports whether the mode is one the game supports.
func IsValidMode(mode string) bool {
	return mode == PlayerVsPlayer || mode == PlayerVsComputer
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWithBot() bool {
	return that.Mode == PlayerVsComputer
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == PlayerTie
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("unknown game status: %s", that.Status)
	}
}

// BotPlayer - returns the seat played by the computer, or nil.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

// IsBotTurn reports whether the computer is the side to move in an ongoing game.
func (that *Game) IsBotTurn() bool {
	bot := that.BotPlayer()
	return bot != nil && that.IsOngoing() && that.Turn == bot.Mark
}

// UpdateGameState - re-checks the board after a placed mark and either finishes the game or passes the turn.
func (that *Game) UpdateGameState() {
	switch winner := that.Board.Result(); winner {
	// one player wins
	case PlayerX, PlayerO:
		line, _ := that.Board.WinningLine(winner)
		that.Winner = winner
		that.WinningLine = line[:]
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
		that.Turn = that.Turn.Opponent()
	}
}

// Reset - returns the game to its initial state, keeping id, mode, difficulty and seats.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Winner = EmptyCell
	that.WinningLine = nil
	that.Status = StatusOngoing
	that.Turn = PlayerX
	that.Moves = 0
}

// Clone - deep copy, safe to hand out while the original keeps changing.
func (that *Game) Clone() *Game {
	clone := *that

	if that.WinningLine != nil {
		clone.WinningLine = append([]int(nil), that.WinningLine...)
	}

	if that.Players != nil {
		clone.Players = make([]*Player, len(that.Players))
		for i, player := range that.Players {
			p := *player
			clone.Players[i] = &p
		}
	}

	return &clone
}
