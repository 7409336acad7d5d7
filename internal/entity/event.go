package entity

const (
	EventMove    = "move"
	EventWin     = "win"
	EventDraw    = "draw"
	EventRestart = "restart"
	EventState   = "state"
	EventDelete  = "delete"
)

// Event is what a notification layer (audio, renderer) receives about a game.
type Event struct {
	Type   string `json:"type"`
	GameID string `json:"game_id"`
	Cell   *int   `json:"cell,omitempty"`
	Mark   Mark   `json:"mark,omitempty"`
	Seat   string `json:"seat,omitempty"`
	Game   *Game  `json:"game"`
}

func NewMoveEvent(game *Game, mark Mark, cell int) Event {
	return Event{Type: EventMove, GameID: game.ID, Cell: &cell, Mark: mark, Seat: SeatOf(mark), Game: game.Clone()}
}

// NewResultEvent - win or draw event for a finished game.
func NewResultEvent(game *Game) Event {
	if game.Winner == PlayerTie {
		return Event{Type: EventDraw, GameID: game.ID, Game: game.Clone()}
	}

	return Event{Type: EventWin, GameID: game.ID, Mark: game.Winner, Seat: SeatOf(game.Winner), Game: game.Clone()}
}

func NewGameEvent(eventType string, game *Game) Event {
	return Event{Type: eventType, GameID: game.ID, Game: game.Clone()}
}
