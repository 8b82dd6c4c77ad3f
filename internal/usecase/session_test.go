package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/KajusVal/TicTacToeGame/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedMover replays a fixed list of cells.
type scriptedMover struct {
	cells []int
	next  int
}

func (that *scriptedMover) ChooseCell(_ *entity.Game, _ string) (int, error) {
	if that.next >= len(that.cells) {
		return 0, errors.New("script exhausted")
	}

	cell := that.cells[that.next]
	that.next++

	return cell, nil
}

type countingRenderer struct {
	renders int
}

func (that *countingRenderer) Render(_ *entity.Game) {
	that.renders++
}

type fakeRecorder struct {
	results []*entity.GameResult
	err     error
}

func (that *fakeRecorder) Record(_ context.Context, result *entity.GameResult) error {
	if that.err != nil {
		return that.err
	}

	that.results = append(that.results, result)

	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSessionFixture(moverX, moverO Mover, recorders ...ResultRecorder) (*GameSession, *entity.Game, *countingRenderer) {
	game := entity.NewGame("123")
	playerX := entity.NewHumanPlayer(entity.PlayerX)
	playerO := entity.NewBotPlayer(entity.PlayerO)
	renderer := &countingRenderer{}

	session := NewGameSession(newTestLogger(), game, playerX, playerO, moverX, moverO, renderer, recorders...)

	return session, game, renderer
}

func TestGameSession_Run(t *testing.T) {
	t.Run("Plays a full game to a win and records the result", func(t *testing.T) {
		// Given: X marches down the diagonal while O wanders
		moverX := &scriptedMover{cells: []int{0, 4, 8}}
		moverO := &scriptedMover{cells: []int{1, 2}}
		recorder := &fakeRecorder{}

		session, game, renderer := newSessionFixture(moverX, moverO, recorder)

		// When: the session runs
		result, err := session.Run(context.Background())

		// Then: X wins and exactly one result is recorded
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, entity.PlayerX, result.Winner)
		assert.Equal(t, "123", result.GameID)
		assert.Equal(t, entity.HumanType, result.PlayerX)
		assert.Equal(t, entity.BotType, result.PlayerO)
		require.Len(t, recorder.results, 1)

		// Then: the board keeps the X-moves-first invariant
		var xCount, oCount int
		for _, cell := range game.Board {
			switch cell {
			case entity.PlayerX:
				xCount++
			case entity.PlayerO:
				oCount++
			}
		}
		assert.Equal(t, oCount+1, xCount)

		// Then: initial render plus one render per applied move
		assert.Equal(t, 6, renderer.renders)
	})

	t.Run("Re-asks the same mover after a rejected move", func(t *testing.T) {
		// Given: O first aims at an occupied cell, then at a free one
		moverX := &scriptedMover{cells: []int{0, 4, 8}}
		moverO := &scriptedMover{cells: []int{0, 1, 2}}
		recorder := &fakeRecorder{}

		session, _, _ := newSessionFixture(moverX, moverO, recorder)

		// When: the session runs
		result, err := session.Run(context.Background())

		// Then: the rejected move did not advance the turn and X still wins
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, result.Winner)
		assert.Equal(t, 3, moverO.next)
	})

	t.Run("Records the result to every recorder", func(t *testing.T) {
		// Given: two recorders behind one session
		moverX := &scriptedMover{cells: []int{0, 4, 8}}
		moverO := &scriptedMover{cells: []int{1, 2}}
		first := &fakeRecorder{}
		second := &fakeRecorder{}

		session, _, _ := newSessionFixture(moverX, moverO, first, second)

		// When: the session runs
		_, err := session.Run(context.Background())

		// Then: both recorders hold the result
		require.NoError(t, err)
		assert.Len(t, first.results, 1)
		assert.Len(t, second.results, 1)
	})

	t.Run("A failing recorder does not fail the session", func(t *testing.T) {
		// Given: a recorder whose storage is broken
		moverX := &scriptedMover{cells: []int{0, 4, 8}}
		moverO := &scriptedMover{cells: []int{1, 2}}
		broken := &fakeRecorder{err: errors.New("disk full")}
		healthy := &fakeRecorder{}

		session, _, _ := newSessionFixture(moverX, moverO, broken, healthy)

		// When: the session runs
		result, err := session.Run(context.Background())

		// Then: the game outcome still comes back and the healthy recorder got it
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, result.Winner)
		assert.Len(t, healthy.results, 1)
	})

	t.Run("Fails when a mover cannot produce a cell", func(t *testing.T) {
		// Given: X runs out of scripted moves immediately
		moverX := &scriptedMover{}
		moverO := &scriptedMover{cells: []int{1}}

		session, _, _ := newSessionFixture(moverX, moverO)

		// When: the session runs
		_, err := session.Run(context.Background())

		// Then: the mover failure surfaces
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to choose a cell")
	})

	t.Run("Stops when the context is canceled", func(t *testing.T) {
		// Given: a canceled context
		moverX := &scriptedMover{cells: []int{0, 4, 8}}
		moverO := &scriptedMover{cells: []int{1, 2}}

		session, _, _ := newSessionFixture(moverX, moverO)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// When: the session runs
		_, err := session.Run(ctx)

		// Then: the cancellation surfaces before any move
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Stamps the result with the session clock", func(t *testing.T) {
		// Given: a session with a frozen clock
		moverX := &scriptedMover{cells: []int{0, 4, 8}}
		moverO := &scriptedMover{cells: []int{1, 2}}
		recorder := &fakeRecorder{}

		session, _, _ := newSessionFixture(moverX, moverO, recorder)

		frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		session.now = func() time.Time { return frozen }

		// When: the session runs
		result, err := session.Run(context.Background())

		// Then: the result carries the frozen timestamp
		require.NoError(t, err)
		assert.Equal(t, frozen, result.FinishedAt)
	})
}
