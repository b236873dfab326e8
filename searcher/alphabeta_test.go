package searcher

import (
	"checkers/game"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func piece(owner game.Player, rank game.Rank, x, y int) game.Piece {
	return game.Piece{Owner: owner, Rank: rank, Position: game.Square{X: x, Y: y}}
}

func mustBoard(t *testing.T, pieces ...game.Piece) game.Board {
	t.Helper()
	b, err := game.NewBoard(pieces...)
	require.NoError(t, err)
	return b
}

// randomPositions collects positions reached by seeded random play from the opening.
func randomPositions(t *testing.T, games, plies int) []game.Position {
	t.Helper()
	rng := rand.New(rand.NewSource(11))
	var positions []game.Position
	for i := 0; i < games; i++ {
		pos := game.StartingPosition()
		for ply := 0; ply < plies; ply++ {
			moves, err := pos.LegalMoves()
			require.NoError(t, err)
			if len(moves) == 0 {
				break
			}
			pos, err = pos.Play(moves[rng.Intn(len(moves))])
			require.NoError(t, err)
			if ply%5 == 4 {
				positions = append(positions, pos)
			}
		}
	}
	return positions
}

func TestSearch(t *testing.T) {
	t.Run("depth zero returns the evaluation without expanding", func(t *testing.T) {
		b := game.StartingBoard()
		ab := NewAlphaBeta(WithDepth(0), WithMetrics())

		got, metric, err := ab.Search(b, game.Computer)

		require.NoError(t, err)
		require.Nil(t, got.Move, "No move should be chosen at depth 0")
		require.Equal(t, game.EvaluateDefault(b, game.Computer), got.Score)
		require.Equal(t, 0, metric.Nodes, "No node should be expanded")
		require.Equal(t, 1, metric.Leaves)
	})

	t.Run("side without pieces has no legal move", func(t *testing.T) {
		b := mustBoard(t, piece(game.Computer, game.Man, 2, 2))

		for _, depth := range []int{0, 1, 8} {
			_, _, err := NewAlphaBeta(WithDepth(depth)).Search(b, game.Human)
			require.True(t, errors.Is(err, game.ErrNoLegalMove), "Depth %d should report no legal move, got %v", depth, err)
		}
	})

	t.Run("only move is a winning capture", func(t *testing.T) {
		b := mustBoard(t, piece(game.Computer, game.Man, 2, 2), piece(game.Human, game.Man, 3, 3))

		got, _, err := NewAlphaBeta(WithDepth(2)).Search(b, game.Human)

		require.NoError(t, err)
		want := game.Move{{From: game.Square{X: 3, Y: 3}, To: game.Square{X: 1, Y: 1}, Captured: game.Square{X: 2, Y: 2}}}
		require.Equal(t, want, got.Move)
		require.Equal(t, Win-1, got.Score, "Opponent is left without a move after one ply")
		require.Equal(t, []game.Move{want}, got.Line)
	})

	t.Run("finds a forced win deeper in the tree", func(t *testing.T) {
		b := mustBoard(t,
			piece(game.Computer, game.King, 3, 3),
			piece(game.Human, game.Man, 4, 4),
			piece(game.Human, game.Man, 7, 7),
		)

		got, _, err := NewAlphaBeta(WithDepth(4)).Search(b, game.Computer)

		require.NoError(t, err)
		require.Equal(t, game.Square{X: 5, Y: 5}, got.Move.To())
		require.Equal(t, Win-3, got.Score, "HUMAN must step into the second capture and is out of pieces at ply 3")
		require.Len(t, got.Line, 3)
	})

	t.Run("ties go to the first move in generator order", func(t *testing.T) {
		b := game.StartingBoard()
		moves, err := game.Generator{}.MovesFor(b, game.Computer)
		require.NoError(t, err)

		for _, goroutines := range []int{1, 4} {
			got, _, err := NewAlphaBeta(WithDepth(1), WithEvaluationFn(game.EvaluateMaterial), WithGoroutines(goroutines)).Search(b, game.Computer)
			require.NoError(t, err)
			require.Equal(t, moves[0], got.Move, "Every opening move scores 0 with %d goroutines", goroutines)
			require.Equal(t, 0, got.Score)
		}
	})

	t.Run("principal variation starts with the chosen move", func(t *testing.T) {
		got, _, err := NewAlphaBeta(WithDepth(4)).Search(game.StartingBoard(), game.Computer)

		require.NoError(t, err)
		require.NotEmpty(t, got.Line)
		require.Equal(t, got.Move, got.Line[0])
		require.LessOrEqual(t, len(got.Line), 4)
	})
}

func TestPruningEquivalence(t *testing.T) {
	positions := randomPositions(t, 6, 40)
	require.NotEmpty(t, positions)

	totalCutoffs := 0
	for _, pos := range positions {
		if pos.Board.IsTerminalFor(pos.ToMove) {
			continue
		}
		for depth := 1; depth <= 4; depth++ {
			pruned, prunedMetric, err := NewAlphaBeta(WithDepth(depth), WithMetrics()).Search(pos.Board, pos.ToMove)
			require.NoError(t, err)
			full, fullMetric, err := NewAlphaBeta(WithDepth(depth), WithMetrics(), WithoutPruning()).Search(pos.Board, pos.ToMove)
			require.NoError(t, err)

			require.Equal(t, full.Move, pruned.Move, "Depth %d should pick the same move\n%s", depth, pos.Board)
			require.Equal(t, full.Score, pruned.Score, "Depth %d should find the same score\n%s", depth, pos.Board)
			require.LessOrEqual(t, prunedMetric.Nodes, fullMetric.Nodes, "Pruning should never expand more nodes")
			require.Equal(t, 0, fullMetric.Cutoffs)
			totalCutoffs += prunedMetric.Cutoffs
		}
	}
	require.Greater(t, totalCutoffs, 0, "Pruning should cut something")
}

func TestRootSplit(t *testing.T) {
	for _, pos := range randomPositions(t, 4, 30) {
		if pos.Board.IsTerminalFor(pos.ToMove) {
			continue
		}
		sequential, _, err := NewAlphaBeta(WithDepth(3)).Search(pos.Board, pos.ToMove)
		require.NoError(t, err)
		parallel, metric, err := NewAlphaBeta(WithDepth(3), WithGoroutines(4), WithMetrics()).Search(pos.Board, pos.ToMove)
		require.NoError(t, err)

		require.Equal(t, sequential.Move, parallel.Move, "Root split should merge to the same move\n%s", pos.Board)
		require.Equal(t, sequential.Score, parallel.Score)
		require.Equal(t, 4, metric.Goroutines)
	}
}

func TestNewAlphaBeta(t *testing.T) {
	ab := NewAlphaBeta()
	require.Equal(t, DefaultDepth, ab.Depth())

	ab = NewAlphaBeta(WithDepth(-1), WithGoroutines(0), WithEvaluationFn(nil))
	require.Equal(t, DefaultDepth, ab.Depth(), "Invalid options should be ignored")
	require.Equal(t, 1, ab.goroutines)
	require.NotNil(t, ab.evaluate)
}

func TestDefaultEvaluationFollowsGenerator(t *testing.T) {
	// Crowned on 3.7, the king can go on to capture either way from 5.5
	b := mustBoard(t,
		piece(game.Computer, game.Man, 1, 5),
		piece(game.Human, game.Man, 2, 6),
		piece(game.Human, game.Man, 4, 6),
		piece(game.Human, game.Man, 6, 4),
		piece(game.Human, game.Man, 4, 4),
	)
	stop := game.Generator{Promotion: game.PromoteAndStop}

	ab := NewAlphaBeta(WithGenerator(stop))

	want := game.Evaluator{Weights: game.DefaultWeights, Generator: stop}.Score(b, game.Computer)
	require.Equal(t, want, ab.evaluate(b, game.Computer))
	require.NotEqual(t, game.EvaluateDefault(b, game.Computer), ab.evaluate(b, game.Computer), "Mobility should be counted with the search's promotion rule")
}
