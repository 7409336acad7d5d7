package entity

type Score struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Scoreboard keeps wins and losses per seat. It survives restarts of the same game.
type Scoreboard struct {
	Player1 Score `json:"player1"`
	Player2 Score `json:"player2"`
}

// Record - counts a finished game. A tie or an unfinished result leaves the scoreboard unchanged.
func (that *Scoreboard) Record(winner Mark) {
	switch winner {
	case PlayerX:
		that.Player1.Wins++
		that.Player2.Losses++
	case PlayerO:
		that.Player2.Wins++
		that.Player1.Losses++
	}
}
