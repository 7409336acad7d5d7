package entity

const (
	Player1 = "player1"
	Player2 = "player2"
)

// Player is a seat at the board. Player1 always plays X and moves first.
type Player struct {
	ID   string `json:"id"`
	Mark Mark   `json:"mark"`
	Bot  bool   `json:"bot,omitempty"`
}

func (that *Player) IsBot() bool {
	return that.Bot
}

// NewPlayers - seats both players; botMark is EmptyCell for a game between two humans.
func NewPlayers(botMark Mark) []*Player {
	return []*Player{
		{ID: Player1, Mark: PlayerX, Bot: botMark == PlayerX},
		{ID: Player2, Mark: PlayerO, Bot: botMark == PlayerO},
	}
}

// SeatOf - returns the seat id playing the given mark.
func SeatOf(mark Mark) string {
	switch mark {
	case PlayerX:
		return Player1
	case PlayerO:
		return Player2
	default:
		return ""
	}
}
