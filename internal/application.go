package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/KajusVal/TicTacToeGame/internal/config"
	"github.com/KajusVal/TicTacToeGame/internal/entity"
	"github.com/KajusVal/TicTacToeGame/internal/repository"
	"github.com/KajusVal/TicTacToeGame/internal/repository/storage"
	"github.com/KajusVal/TicTacToeGame/internal/service"
	"github.com/KajusVal/TicTacToeGame/internal/usecase"
	"github.com/KajusVal/TicTacToeGame/transport/console"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	resultRepo := repository.NewResultRepository(conf.Storage.ResultsPath)
	statsRepo := repository.NewStatsRepository(sqliteStorage)

	botService, err := service.NewBotService(conf.Game.BotStrategy)
	if err != nil {
		return fmt.Errorf("could not create bot service: %w", err)
	}

	cons := console.New(os.Stdin, os.Stdout)

	moverX, playerX, err := buildPlayer(conf.Game.PlayerX, entity.PlayerX, cons, botService)
	if err != nil {
		return fmt.Errorf("could not set up player X: %w", err)
	}

	moverO, playerO, err := buildPlayer(conf.Game.PlayerO, entity.PlayerO, cons, botService)
	if err != nil {
		return fmt.Errorf("could not set up player O: %w", err)
	}

	game := entity.NewGame(uuid.NewString())
	session := usecase.NewGameSession(logger, game, playerX, playerO, moverX, moverO, cons, resultRepo, statsRepo)

	log.Info("Starting game", "game_id", game.ID, "player_x", playerX.Type, "player_o", playerO.Type)

	result, err := session.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("Game aborted before finishing")
		return nil
	}
	if err != nil {
		return fmt.Errorf("game session failed: %w", err)
	}

	cons.Announce(result)

	stats, err := statsRepo.Totals(ctx)
	if err != nil {
		log.Error("could not load game stats", "error", err)
		return nil
	}

	cons.ShowStats(stats)

	return nil
}

// buildPlayer - plain constructor selection keyed on the configured type.
func buildPlayer(playerType, mark string, human, bot usecase.Mover) (usecase.Mover, *entity.Player, error) {
	switch playerType {
	case entity.HumanType:
		return human, entity.NewHumanPlayer(mark), nil
	case entity.BotType:
		return bot, entity.NewBotPlayer(mark), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", usecase.ErrUnknownPlayerType, playerType)
	}
}
