package gamemaster

import (
	"checkers/game"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func step(fx, fy, tx, ty int) game.Step {
	return game.NewStep(game.Square{X: fx, Y: fy}, game.Square{X: tx, Y: ty})
}

func TestLocalEngineInit(t *testing.T) {
	engine := NewLocalEngine()
	state, getUpdate := engine.Init(game.StartingPosition())

	require.Equal(t, game.StartingPosition(), state)
	require.Equal(t, game.Computer, engine.State().Player())

	_, _, ok := getUpdate()
	require.False(t, ok, "No update should be pending before a move is played")
}

func TestLocalEnginePlay(t *testing.T) {
	t.Run("valid move", func(t *testing.T) {
		engine := NewLocalEngine()
		_, getUpdate := engine.Init(game.StartingPosition())
		move := game.Move{step(2, 2, 3, 3)}

		err := engine.Play(move)

		require.NoError(t, err)
		played, state, ok := getUpdate()
		require.True(t, ok, "Should publish the played move")
		require.Equal(t, move, played)
		require.Equal(t, game.Human, state.Player(), "Turn should pass to the opponent")
		require.Equal(t, state, engine.State())
	})

	t.Run("illegal move", func(t *testing.T) {
		engine := NewLocalEngine()
		_, getUpdate := engine.Init(game.StartingPosition())

		err := engine.Play(game.Move{step(5, 5, 4, 4)})

		require.True(t, errors.Is(err, game.ErrIllegalMove), "HUMAN cannot move on COMPUTER's turn")
		require.Equal(t, game.StartingPosition(), engine.State(), "State should not change")
		_, _, ok := getUpdate()
		require.False(t, ok)
	})

	t.Run("not initialised", func(t *testing.T) {
		err := NewLocalEngine().Play(game.Move{step(2, 2, 3, 3)})
		require.Error(t, err)
	})

	t.Run("game over", func(t *testing.T) {
		b, err := game.NewBoard(
			game.Piece{Owner: game.Computer, Position: game.Square{X: 2, Y: 2}},
			game.Piece{Owner: game.Human, Position: game.Square{X: 3, Y: 3}},
		)
		require.NoError(t, err)
		engine := NewLocalEngine()
		_, getUpdate := engine.Init(game.NewPosition(b, game.Human))

		require.NoError(t, engine.Play(game.Move{step(3, 3, 1, 1)}))

		winner, over := engine.Winner()
		require.True(t, over)
		require.Equal(t, game.Human, winner)
		_, _, ok := getUpdate()
		require.True(t, ok, "Final move should still be published")
		_, _, ok = getUpdate()
		require.False(t, ok, "Updates should be closed after the game ends")

		err = engine.Play(game.Move{step(2, 2, 3, 3)})
		require.True(t, errors.Is(err, ErrGameOver))
	})

	t.Run("terminal start", func(t *testing.T) {
		b, err := game.NewBoard(game.Piece{Owner: game.Computer, Position: game.Square{X: 2, Y: 2}})
		require.NoError(t, err)
		engine := NewLocalEngine()
		engine.Init(game.NewPosition(b, game.Human))

		err = engine.Play(game.Move{step(2, 2, 3, 3)})
		require.True(t, errors.Is(err, ErrGameOver))
	})
}
