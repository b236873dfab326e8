package gamemaster

import (
	"checkers/game"
	"checkers/meta"
	"sync"

	"github.com/pkg/errors"
)

var ErrGameOver = errors.New("game is over - no moves allowed")

// UpdateGetter returns the next played move and the position it produced.
// ok is false when no update is pending or the game is over and drained.
type UpdateGetter func() (move game.Move, state game.Position, ok bool)

type Engine interface {
	Init(start game.Position) (game.Position, UpdateGetter)
	Play(game.Move) error
	State() game.Position
	Winner() (game.Player, bool)
}

type update struct {
	move  game.Move
	state game.Position
}

// localEngine referees a game: it accepts only legal moves for the side to move
// and publishes every accepted move.
type localEngine struct {
	mu       sync.Mutex
	state    game.Position
	updateCh chan update
	gameOver bool
}

func NewLocalEngine() *localEngine {
	return &localEngine{}
}

func (e *localEngine) Init(start game.Position) (game.Position, UpdateGetter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = start
	e.updateCh = make(chan update, meta.MAX_TURNS)
	_, e.gameOver = start.Winner()
	if e.gameOver {
		close(e.updateCh)
	}

	updateCh := e.updateCh
	return e.state, func() (game.Move, game.Position, bool) {
		select {
		case u, ok := <-updateCh:
			if !ok { // Game over
				return nil, game.Position{}, false
			}
			return u.move, u.state, true
		default:
			// No updates yet
			return nil, game.Position{}, false
		}
	}
}

func (e *localEngine) Play(move game.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.updateCh == nil {
		return errors.New("game has not been initialised")
	}
	if e.gameOver {
		return ErrGameOver
	}

	next, err := e.state.Play(move)
	if err != nil {
		return errors.WithMessagef(err, "%s rejected", e.state.ToMove)
	}
	e.state = next

	select {
	case e.updateCh <- update{move: move, state: next}:
	default:
		// Buffer full, drop the update
	}
	if _, over := next.Winner(); over {
		e.gameOver = true
		close(e.updateCh)
	}
	return nil
}

func (e *localEngine) State() game.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *localEngine) Winner() (game.Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Winner()
}
