package searcher

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Option func(ab *AlphaBeta)

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning.
// Children are visited in generator order, so results are deterministic.
type AlphaBeta struct {
	goroutines int
	depth      int
	pruning    bool
	evaluate   game.Evaluate
	generator  game.Generator
	metrics    metrics.Collector
}

func WithDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth >= 0 {
			ab.depth = depth
		}
	}
}

// WithGoroutines splits the root moves across the given number of workers.
func WithGoroutines(goroutines int) Option {
	return func(ab *AlphaBeta) {
		if goroutines > 0 {
			ab.goroutines = goroutines
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithGenerator(generator game.Generator) Option {
	return func(ab *AlphaBeta) {
		ab.generator = generator
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.metrics = metrics.NewCollector()
	}
}

// WithoutPruning turns the search into a plain minimax over the same tree.
func WithoutPruning() Option {
	return func(ab *AlphaBeta) {
		ab.pruning = false
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		goroutines: 1,
		depth:      DefaultDepth,
		pruning:    true,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(ab)
	}
	if ab.evaluate == nil {
		// Mobility is counted under the search's own promotion rule
		ab.evaluate = game.Evaluator{Weights: game.DefaultWeights, Generator: ab.generator}.Score
	}
	return ab
}

func (ab *AlphaBeta) Depth() int {
	return ab.depth
}

func (ab *AlphaBeta) Search(b game.Board, side game.Player) (Result, metrics.SearchMetric, error) {
	if err := b.Validate(); err != nil {
		return Result{}, metrics.SearchMetric{}, err
	}

	ab.metrics.Start(ab.goroutines, ab.depth, ab.evaluate)
	if b.IsTerminalFor(side) {
		return Result{}, ab.metrics.Complete(), errors.Wrapf(game.ErrNoLegalMove, "%s has no legal move", side)
	}
	if ab.depth == 0 {
		ab.metrics.AddLeaf()
		score := ab.evaluate(b, side)
		ab.metrics.SetScore(score)
		return Result{Score: score}, ab.metrics.Complete(), nil
	}

	moves, err := ab.generator.MovesFor(b, side)
	if err != nil {
		return Result{}, ab.metrics.Complete(), err
	}
	ab.metrics.AddNode()

	var result Result
	if ab.goroutines > 1 && len(moves) > 1 {
		result, err = ab.splitRoot(b, side, moves)
	} else {
		result, err = ab.root(b, side, moves)
	}
	if err != nil {
		return Result{}, ab.metrics.Complete(), err
	}

	ab.metrics.SetScore(result.Score)
	log.Debug().Msgf("%s searched depth %d: best %s with score %d", side, ab.depth, result.Move, result.Score)
	return result, ab.metrics.Complete(), nil
}

func (ab *AlphaBeta) root(b game.Board, side game.Player, moves []game.Move) (Result, error) {
	alpha := -Infinity
	var best Result
	for _, move := range moves {
		child, err := b.Apply(move)
		if err != nil {
			return Result{}, err
		}
		score, line, err := ab.search(child, ab.depth-1, 1, alpha, Infinity, side.Opponent(), side)
		if err != nil {
			return Result{}, err
		}
		// Strict improvement keeps the first of equally scored moves
		if best.Move == nil || score > best.Score {
			best = Result{Move: move, Score: score, Line: append([]game.Move{move}, line...)}
		}
		alpha = max(alpha, score)
	}
	return best, nil
}

// splitRoot searches each root move with a full window on a pool of workers and
// merges by score, resolving ties towards the earlier move in generator order.
func (ab *AlphaBeta) splitRoot(b game.Board, side game.Player, moves []game.Move) (Result, error) {
	type outcome struct {
		result Result
		err    error
	}
	outcomes := make([]outcome, len(moves))

	task := make(chan int, len(moves))
	for i := range moves {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < min(ab.goroutines, len(moves)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range task {
				move := moves[index]
				child, err := b.Apply(move)
				if err != nil {
					outcomes[index] = outcome{err: err}
					continue
				}
				score, line, err := ab.search(child, ab.depth-1, 1, -Infinity, Infinity, side.Opponent(), side)
				outcomes[index] = outcome{
					result: Result{Move: move, Score: score, Line: append([]game.Move{move}, line...)},
					err:    err,
				}
			}
		}()
	}
	wg.Wait()

	var best Result
	for _, o := range outcomes {
		if o.err != nil {
			return Result{}, o.err
		}
		if best.Move == nil || o.result.Score > best.Score {
			best = o.result
		}
	}
	return best, nil
}

// search returns the value of b from root's perspective with toMove to play,
// together with the line that leads to it.
func (ab *AlphaBeta) search(b game.Board, depth, ply, alpha, beta int, toMove, root game.Player) (int, []game.Move, error) {
	if b.IsTerminalFor(toMove) {
		ab.metrics.AddLeaf()
		if toMove == root {
			return -(Win - ply), nil, nil
		}
		return Win - ply, nil, nil
	}
	if depth == 0 {
		ab.metrics.AddLeaf()
		return ab.evaluate(b, root), nil, nil
	}

	moves, err := ab.generator.MovesFor(b, toMove)
	if err != nil {
		return 0, nil, err
	}
	ab.metrics.AddNode()

	maximizing := toMove == root
	best := Infinity
	if maximizing {
		best = -Infinity
	}
	var line []game.Move
	for _, move := range moves {
		child, err := b.Apply(move)
		if err != nil {
			return 0, nil, err
		}
		score, childLine, err := ab.search(child, depth-1, ply+1, alpha, beta, toMove.Opponent(), root)
		if err != nil {
			return 0, nil, err
		}

		if maximizing {
			if score > best {
				best = score
				line = append([]game.Move{move}, childLine...)
			}
			alpha = max(alpha, best)
			if ab.pruning && alpha >= beta {
				ab.metrics.AddCutoff()
				break
			}
		} else {
			if score < best {
				best = score
				line = append([]game.Move{move}, childLine...)
			}
			beta = min(beta, best)
			if ab.pruning && beta <= alpha {
				ab.metrics.AddCutoff()
				break
			}
		}
	}
	return best, line, nil
}
