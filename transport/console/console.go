package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KajusVal/TicTacToeGame/internal/entity"
)

// Console is the interactive surface of the game: it renders the board,
// prompts humans for cells and announces outcomes.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Render - prints the 3x3 board; empty cells show their 1-9 position hint.
func (that *Console) Render(game *entity.Game) {
	fmt.Fprintln(that.out)

	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			index := row*3 + col
			if game.Board[index] == entity.EmptyCell {
				cells[col] = strconv.Itoa(index + 1)
			} else {
				cells[col] = game.Board[index]
			}
		}

		fmt.Fprintf(that.out, " %s | %s | %s\n", cells[0], cells[1], cells[2])
		if row < 2 {
			fmt.Fprintln(that.out, "---+---+---")
		}
	}

	fmt.Fprintln(that.out)
}

// ChooseCell - asks for a cell 1-9 and converts it to a 0-based index.
// Garbage, out-of-range and occupied positions re-prompt instead of failing.
func (that *Console) ChooseCell(game *entity.Game, mark string) (int, error) {
	for {
		fmt.Fprintf(that.out, "Player %s, choose a cell [1-9]: ", mark)

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return 0, fmt.Errorf("failed to read input: %w", err)
			}
			return 0, fmt.Errorf("input closed: %w", io.EOF)
		}

		input := strings.TrimSpace(that.in.Text())

		position, err := strconv.Atoi(input)
		if err != nil || position < 1 || position > 9 {
			fmt.Fprintf(that.out, "%q is not a cell, enter a number from 1 to 9.\n", input)
			continue
		}

		if game.Board[position-1] != entity.EmptyCell {
			fmt.Fprintf(that.out, "Cell %d is already occupied.\n", position)
			continue
		}

		return position - 1, nil
	}
}

// Announce - prints the end-of-game message.
func (that *Console) Announce(result *entity.GameResult) {
	if result.IsTie() {
		fmt.Fprintln(that.out, "It's a draw!")
		return
	}

	fmt.Fprintf(that.out, "%s wins!\n", result.Winner)
}

// ShowStats - prints aggregate tallies of recorded games.
func (that *Console) ShowStats(stats entity.GameStats) {
	fmt.Fprintf(that.out, "Totals: X wins %d, O wins %d, draws %d (%d games)\n",
		stats.XWins, stats.OWins, stats.Ties, stats.Total)
}
