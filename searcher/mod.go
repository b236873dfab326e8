package searcher

import (
	"checkers/experiments/metrics"
	"checkers/game"
)

// Result is the outcome of a root search. Move is nil for a depth-0 search.
type Result struct {
	Move  game.Move
	Score int
	Line  []game.Move // Principal variation starting with Move
}

type Searcher interface {
	// Search returns the best move for side, or game.ErrNoLegalMove if side cannot move
	Search(b game.Board, side game.Player) (Result, metrics.SearchMetric, error)
}
