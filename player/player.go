package player

import (
	"checkers/communication"
	"checkers/communication/protocol"
	"checkers/game"
	"checkers/gamemaster"
	"checkers/searcher/agent"
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Controller plays one side of a game driven by protocol messages. It keeps the last known position in a
// referee so opponent moves are checked before the agent answers them.
type Controller struct {
	agent      agent.Agent
	side       game.Player
	generator  game.Generator
	referee    gamemaster.Engine
	dispatcher *communication.Dispatcher
	mu         sync.Mutex
}

func NewController(a agent.Agent, side game.Player, generator game.Generator) *Controller {
	c := &Controller{
		agent:      a,
		side:       side,
		generator:  generator,
		referee:    gamemaster.NewLocalEngine(),
		dispatcher: communication.NewDispatcher(),
	}
	c.dispatcher.Register(protocol.BoardUpdate, c.onBoardUpdate)
	c.dispatcher.Register(protocol.OpponentMove, c.onOpponentMove)
	c.dispatcher.Register(protocol.ValidMoves, c.onValidMoves)
	return c
}

func (c *Controller) Side() game.Player {
	return c.side
}

// State is the position after the last handled message.
func (c *Controller) State() game.Position {
	return c.referee.State()
}

// Handle answers msg. A failure is answered with an error message rather than returned.
func (c *Controller) Handle(msg protocol.Message) []protocol.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	replies, err := c.dispatcher.Dispatch(msg)
	if err != nil {
		log.Warn().Err(err).Msgf("Failed to handle %s", msg.Header)
		return []protocol.Message{msg.Reply(protocol.Error, err.Error())}
	}
	return replies
}

// Run answers every message received on comm until comm is closed or ctx is done.
func (c *Controller) Run(ctx context.Context, comm communication.Communicator) error {
	log.Info().Msgf("Playing as %s", c.side)
	for {
		msg, err := comm.Receive(ctx)
		switch {
		case errors.Is(err, communication.ErrClosed):
			return nil
		case errors.Is(err, protocol.ErrMalformed):
			log.Warn().Err(err).Msg("Dropped message")
			if err := comm.Send(protocol.NewMessage(protocol.Error, err.Error())); err != nil {
				return errors.Wrap(err, "failed to report a malformed message")
			}
			continue
		case err != nil:
			return err
		}

		for _, reply := range c.Handle(msg) {
			if err := comm.Send(reply); err != nil {
				return errors.Wrapf(err, "failed to answer %s", msg.Header)
			}
		}
	}
}

func (c *Controller) onBoardUpdate(msg protocol.Message) ([]protocol.Message, error) {
	b, err := protocol.DecodeBoard(msg.Body)
	if err != nil {
		return nil, err
	}
	c.referee.Init(game.Position{Board: b, ToMove: c.side, Generator: c.generator})
	return c.respond(msg)
}

func (c *Controller) onOpponentMove(msg protocol.Message) ([]protocol.Message, error) {
	move, err := game.ParseMove(msg.Body)
	if err != nil {
		return nil, err
	}
	if err := c.referee.Play(move); err != nil {
		return nil, err
	}
	log.Info().Msgf("%s played %s", c.side.Opponent(), move)
	return c.respond(msg)
}

func (c *Controller) onValidMoves(msg protocol.Message) ([]protocol.Message, error) {
	tiles, player, err := protocol.SplitQuery(msg.Body, c.side)
	if err != nil {
		return nil, err
	}
	b, err := protocol.DecodeBoard(tiles)
	if err != nil {
		return nil, err
	}
	moves, err := c.generator.MovesFor(b, player)
	if err != nil {
		return nil, err
	}
	return []protocol.Message{msg.Reply(protocol.ValidMoves, protocol.EncodeMoves(moves))}, nil
}

// respond searches the referee's position and plays the chosen move on it.
func (c *Controller) respond(msg protocol.Message) ([]protocol.Message, error) {
	state := c.referee.State()
	if state.ToMove != c.side {
		return nil, errors.Wrapf(game.ErrIllegalState, "%s to move, playing as %s", state.ToMove, c.side)
	}

	move, metric, err := c.agent.FindMove(state.Board, c.side)
	if errors.Is(err, game.ErrNoLegalMove) {
		log.Info().Msgf("%s has no legal move", c.side)
		return []protocol.Message{msg.Reply(protocol.NoMove, c.side.String())}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := c.referee.Play(move); err != nil {
		return nil, errors.WithMessagef(err, "agent chose %s", move)
	}

	log.Info().Msgf("%s plays %s (score %d, %d nodes in %v)", c.side, move, metric.Score, metric.Nodes, metric.Duration)
	return []protocol.Message{msg.Reply(protocol.AIMove, move.String())}, nil
}
