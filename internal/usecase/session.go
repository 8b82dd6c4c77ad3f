package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KajusVal/TicTacToeGame/internal/apperror"
	"github.com/KajusVal/TicTacToeGame/internal/entity"
	"github.com/KajusVal/TicTacToeGame/internal/tictactoe"
)

var ErrUnknownPlayerType = errors.New("unknown player type")

// Mover produces the next cell for a mark. The console human and the bot
// service both satisfy it.
type Mover interface {
	ChooseCell(game *entity.Game, mark string) (int, error)
}

// BoardRenderer displays the game after each applied move.
type BoardRenderer interface {
	Render(game *entity.Game)
}

// ResultRecorder persists a finished game.
type ResultRecorder interface {
	Record(ctx context.Context, result *entity.GameResult) error
}

// GameSession runs a single game from setup to a terminal state.
type GameSession struct {
	logger *slog.Logger

	game    *entity.Game
	playerX *entity.Player
	playerO *entity.Player

	movers    map[string]Mover
	renderer  BoardRenderer
	recorders []ResultRecorder

	now func() time.Time
}

func NewGameSession(
	logger *slog.Logger,
	game *entity.Game,
	playerX, playerO *entity.Player,
	moverX, moverO Mover,
	renderer BoardRenderer,
	recorders ...ResultRecorder,
) *GameSession {
	return &GameSession{
		logger:    logger.With("component", "session"),
		game:      game,
		playerX:   playerX,
		playerO:   playerO,
		movers:    map[string]Mover{entity.PlayerX: moverX, entity.PlayerO: moverO},
		renderer:  renderer,
		recorders: recorders,
		now:       time.Now,
	}
}

// Run - alternates turns until the game finishes, then records the result.
// Rejected moves re-ask the same mover without advancing the turn.
func (that *GameSession) Run(ctx context.Context) (*entity.GameResult, error) {
	that.game.Status = entity.StatusOngoing
	that.renderer.Render(that.game)

	for that.game.IsOngoing() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("game aborted: %w", ctx.Err())
		default:
		}

		mark := that.game.Turn
		cell, err := that.movers[mark].ChooseCell(that.game, mark)
		if err != nil {
			return nil, fmt.Errorf("player %s failed to choose a cell: %w", mark, err)
		}

		if err = tictactoe.MakeTurn(that.game, mark, cell); err != nil {
			if errors.Is(err, apperror.ErrInvalidCell) || errors.Is(err, apperror.ErrCellOccupied) {
				that.logger.Debug("rejected move, asking again", "mark", mark, "cell", cell, "error", err)
				continue
			}

			return nil, fmt.Errorf("failed to make turn: %w", err)
		}

		that.renderer.Render(that.game)
	}

	result := entity.NewGameResult(that.game, that.playerX, that.playerO, that.now())

	// A game that finished on the board is a result even if persistence is down.
	for _, recorder := range that.recorders {
		if err := recorder.Record(ctx, result); err != nil {
			that.logger.Error("failed to record game result", "game_id", result.GameID, "error", err)
		}
	}

	that.logger.Info("game finished", "game_id", result.GameID, "winner", result.Winner)

	return result, nil
}
