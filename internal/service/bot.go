package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/KajusVal/TicTacToeGame/internal/entity"
)

const (
	StrategyFirstEmpty = "first-empty"
	StrategyRandom     = "random"
	StrategySmart      = "smart"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrUnknownStrategy  = errors.New("unknown bot strategy")
)

// BotService picks a cell for the given mark. Implementations never return
// an occupied or out-of-range cell while moves remain.
type BotService interface {
	ChooseCell(game *entity.Game, mark string) (int, error)
}

type botService struct {
	strategy string
}

func NewBotService(strategy string) (BotService, error) {
	switch strategy {
	case StrategyFirstEmpty, StrategyRandom, StrategySmart:
		return &botService{strategy: strategy}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

func (that *botService) ChooseCell(game *entity.Game, mark string) (int, error) {
	availableCells := game.EmptyCells()
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	switch that.strategy {
	case StrategyRandom:
		return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
	case StrategySmart:
		return chooseSmartCell(game, mark, availableCells), nil
	default:
		return availableCells[0], nil
	}
}

// chooseSmartCell - win if possible, block an imminent opponent win,
// otherwise prefer center, then corners, then sides.
func chooseSmartCell(game *entity.Game, mark string, availableCells []int) int {
	if cell, ok := findWinningCell(game.Board, mark); ok {
		return cell
	}

	if cell, ok := findWinningCell(game.Board, entity.ToggleMark(mark)); ok {
		return cell
	}

	const center = 4
	if game.Board[center] == entity.EmptyCell {
		return center
	}

	for _, cell := range []int{0, 2, 6, 8} {
		if game.Board[cell] == entity.EmptyCell {
			return cell
		}
	}

	for _, cell := range []int{1, 3, 5, 7} {
		if game.Board[cell] == entity.EmptyCell {
			return cell
		}
	}

	return availableCells[0]
}

// findWinningCell - looks for a line with two cells of mark and one empty.
func findWinningCell(board [9]string, mark string) (int, bool) {
	for _, combo := range entity.WinCombos {
		marked := 0
		empty := -1

		for _, cell := range combo {
			switch board[cell] {
			case mark:
				marked++
			case entity.EmptyCell:
				empty = cell
			}
		}

		if marked == 2 && empty >= 0 {
			return empty, true
		}
	}

	return 0, false
}
