package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
)

type Agent interface {
	// FindMove returns the move to play for side and performance metrics (if collected) from the search.
	// It returns game.ErrNoLegalMove when side cannot move.
	FindMove(b game.Board, side game.Player) (game.Move, metrics.SearchMetric, error)
}
