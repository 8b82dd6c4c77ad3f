package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/KajusVal/TicTacToeGame/internal/entity"
)

var ErrMalformedResultRow = errors.New("malformed result row")

var resultHeader = []string{"game_id", "finished_at", "player_x", "player_o", "winner"}

type ResultRepository interface {
	Record(ctx context.Context, result *entity.GameResult) error
	All(ctx context.Context) ([]*entity.GameResult, error)
}

// fileResult appends one CSV row per finished game. The header is written
// when the file is created.
type fileResult struct {
	path string
}

func NewResultRepository(path string) ResultRepository {
	return &fileResult{
		path: path,
	}
}

func (that *fileResult) Record(_ context.Context, result *entity.GameResult) error {
	file, err := os.OpenFile(that.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open results file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("could not stat results file: %w", err)
	}

	writer := csv.NewWriter(file)

	if info.Size() == 0 {
		if err = writer.Write(resultHeader); err != nil {
			return fmt.Errorf("could not write results header: %w", err)
		}
	}

	row := []string{
		result.GameID,
		result.FinishedAt.Format(time.RFC3339),
		result.PlayerX,
		result.PlayerO,
		result.Winner,
	}
	if err = writer.Write(row); err != nil {
		return fmt.Errorf("could not write result row: %w", err)
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return fmt.Errorf("could not flush result row: %w", err)
	}

	return nil
}

func (that *fileResult) All(_ context.Context) ([]*entity.GameResult, error) {
	file, err := os.Open(that.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open results file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read results file: %w", err)
	}

	results := make([]*entity.GameResult, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}

		if len(row) != len(resultHeader) {
			return nil, fmt.Errorf("%w: line %d", ErrMalformedResultRow, i+1)
		}

		finishedAt, err := time.Parse(time.RFC3339, row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedResultRow, i+1, err)
		}

		results = append(results, &entity.GameResult{
			GameID:     row[0],
			FinishedAt: finishedAt,
			PlayerX:    row[2],
			PlayerO:    row[3],
			Winner:     row[4],
		})
	}

	return results, nil
}
