package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/KajusVal/TicTacToeGame/internal/entity"
	"github.com/KajusVal/TicTacToeGame/internal/repository/storage"
)

type StatsRepository interface {
	Record(ctx context.Context, result *entity.GameResult) error
	Totals(ctx context.Context) (entity.GameStats, error)
}

type dbStats struct {
	storage *storage.Storage
}

func NewStatsRepository(st *storage.Storage) StatsRepository {
	return &dbStats{
		storage: st,
	}
}

func (that *dbStats) Record(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT OR REPLACE INTO results (game_id, finished_at, player_x, player_o, winner)
		VALUES (?, ?, ?, ?, ?)`

	_, err := that.storage.Connection.ExecContext(ctx, query,
		result.GameID,
		result.FinishedAt.Format(time.RFC3339),
		result.PlayerX,
		result.PlayerO,
		result.Winner,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	return nil
}

func (that *dbStats) Totals(ctx context.Context) (entity.GameStats, error) {
	query := `SELECT winner, COUNT(*) FROM results GROUP BY winner`

	rows, err := that.storage.Connection.QueryContext(ctx, query)
	if err != nil {
		return entity.GameStats{}, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	var stats entity.GameStats
	for rows.Next() {
		var winner string
		var count int

		if err = rows.Scan(&winner, &count); err != nil {
			return entity.GameStats{}, fmt.Errorf("failed to scan totals row: %w", err)
		}

		switch winner {
		case entity.PlayerX:
			stats.XWins = count
		case entity.PlayerO:
			stats.OWins = count
		case entity.PlayerTie:
			stats.Ties = count
		}

		stats.Total += count
	}

	if err = rows.Err(); err != nil {
		return entity.GameStats{}, fmt.Errorf("failed to read totals rows: %w", err)
	}

	return stats, nil
}
