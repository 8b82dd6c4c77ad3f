package entity

import "time"

// GameResult is the persisted outcome of one finished game.
type GameResult struct {
	GameID     string    `json:"game_id"`
	FinishedAt time.Time `json:"finished_at"`
	PlayerX    string    `json:"player_x"`
	PlayerO    string    `json:"player_o"`
	Winner     string    `json:"winner"`
}

func NewGameResult(game *Game, playerX, playerO *Player, finishedAt time.Time) *GameResult {
	return &GameResult{
		GameID:     game.ID,
		FinishedAt: finishedAt,
		PlayerX:    playerX.Type,
		PlayerO:    playerO.Type,
		Winner:     game.Winner,
	}
}

func (that *GameResult) IsTie() bool {
	return that.Winner == PlayerTie
}

// GameStats - aggregate tallies over recorded results.
type GameStats struct {
	XWins int
	OWins int
	Ties  int
	Total int
}
