package engine

import (
	"checkers/experiments/metrics"
	"checkers/meta"
)

const MaxMoves = meta.MAX_TURNS

type Engine interface {
	// Run plays a game till there's a winner or a max number of moves is reached.
	// winner is empty when the game is stopped by the move limit.
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
