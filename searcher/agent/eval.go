package agent

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type evaluationAgent struct {
	search    searcher.Searcher
	generator game.Generator
}

// NewEvaluationAgent returns an agent that plays the best move found by the search.
func NewEvaluationAgent(search searcher.Searcher) Agent {
	return evaluationAgent{search: search}
}

func (a evaluationAgent) FindMove(b game.Board, side game.Player) (game.Move, metrics.SearchMetric, error) {
	result, metric, err := a.search.Search(b, side)
	if err != nil {
		return nil, metric, err
	}
	if result.Move != nil {
		return result.Move, metric, nil
	}

	// A depth-0 search scores the board without choosing a move
	moves, err := a.generator.MovesFor(b, side)
	if err != nil {
		return nil, metric, err
	}
	if len(moves) == 0 {
		return nil, metric, errors.Wrapf(game.ErrNoLegalMove, "%s has no legal move", side)
	}
	log.Warn().Msgf("search returned no move for %s, playing the first legal move", side)
	return moves[0], metric, nil
}
