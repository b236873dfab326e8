package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu        sync.Mutex
	rng       *rand.Rand
	generator game.Generator
}

// NewRandomAgent returns a baseline agent that plays a uniformly random legal move.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(b game.Board, side game.Player) (game.Move, metrics.SearchMetric, error) {
	start := time.Now()
	moves, err := a.generator.MovesFor(b, side)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}, errors.Wrapf(game.ErrNoLegalMove, "%s has no legal move", side)
	}

	a.mu.Lock()
	move := moves[a.rng.Intn(len(moves))]
	a.mu.Unlock()

	return move, metrics.SearchMetric{Goroutines: 1, Duration: time.Since(start)}, nil
}
