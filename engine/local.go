package engine

import (
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/gamemaster"
	"checkers/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type localEngine struct {
	start    game.Position
	agents   map[game.Player]agent.Agent
	referee  gamemaster.Engine
	maxMoves int
}

type LocalOption func(e *localEngine)

func WithMaxMoves(maxMoves int) LocalOption {
	return func(e *localEngine) {
		if maxMoves > 0 {
			e.maxMoves = maxMoves
		}
	}
}

func WithStart(start game.Position) LocalOption {
	return func(e *localEngine) {
		e.start = start
	}
}

// NewLocalEngine plays computer against human in process, every move checked by a referee.
func NewLocalEngine(computer, human agent.Agent, options ...LocalOption) Engine {
	e := &localEngine{
		start:    game.StartingPosition(),
		agents:   map[game.Player]agent.Agent{game.Computer: computer, game.Human: human},
		referee:  gamemaster.NewLocalEngine(),
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until a winner is found. A side whose agent fails or picks an
// illegal move forfeits.
func (e *localEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	state, getUpdate := e.referee.Init(e.start)
	gameMetric := metrics.GameMetric{
		StartingPlayer: state.Player().String(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("%s is starting", state.Player())

	var moveMetrics []metrics.MoveMetric
	winner := ""
	for step := 1; step <= e.maxMoves; step++ {
		if w, over := e.referee.Winner(); over {
			winner = w.String()
			break
		}

		side := state.Player()
		move, searchMetric, err := e.agents[side].FindMove(state.Board, side)
		if err == nil {
			err = e.referee.Play(move)
		}
		if err != nil {
			log.Error().Err(err).Msgf("%s forfeits", side)
			winner = side.Opponent().String()
			break
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       side.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})

		played, next, ok := getUpdate()
		if !ok {
			// Update dropped, read the referee directly
			next = e.referee.State()
			played = move
		}
		log.Debug().Msgf("%d: %s played %s", step, side, played)
		state = next
	}
	if winner == "" {
		if w, over := e.referee.Winner(); over {
			winner = w.String()
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = winner
	if winner == "" {
		log.Info().Msgf("Stopped after %d moves (no winner yet)", len(moveMetrics))
	} else {
		log.Info().Msgf("Game ended due to a winner: %s after %d moves", winner, len(moveMetrics))
	}
	return winner, gameMetric, moveMetrics
}
