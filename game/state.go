package game

import (
	"checkers/utils"
	"encoding/binary"
	"hash/fnv"

	"github.com/pkg/errors"
)

// Position is a board together with the side to move.
// Position is immutable: Play always returns a new Position.
type Position struct {
	Board     Board
	ToMove    Player
	Generator Generator
}

func NewPosition(b Board, toMove Player) Position {
	return Position{Board: b, ToMove: toMove}
}

// StartingPosition is the standard opening with COMPUTER to move.
func StartingPosition() Position {
	return NewPosition(StartingBoard(), Computer)
}

func (p Position) Player() Player {
	return p.ToMove
}

func (p Position) LegalMoves() ([]Move, error) {
	return p.Generator.MovesFor(p.Board, p.ToMove)
}

// Play checks the move against the legal moves, applies it and passes the turn.
func (p Position) Play(m Move) (Position, error) {
	moves, err := p.LegalMoves()
	if err != nil {
		return Position{}, err
	}
	if len(moves) == 0 {
		return Position{}, errors.Wrapf(ErrNoLegalMove, "%s cannot move", p.ToMove)
	}
	if utils.FindIndexFunc(moves, m.Equal) < 0 {
		return Position{}, errors.Wrapf(ErrIllegalMove, "%s is not a legal move for %s", m, p.ToMove)
	}

	next, err := p.Board.Apply(m)
	if err != nil {
		return Position{}, err
	}
	return Position{Board: next, ToMove: p.ToMove.Opponent(), Generator: p.Generator}, nil
}

// Winner returns the opponent of the side to move once that side has no legal move.
func (p Position) Winner() (Player, bool) {
	if p.Board.IsTerminalFor(p.ToMove) {
		return p.ToMove.Opponent(), true
	}
	return 0, false
}

func (p Position) Hash() StateHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, uint64(p.Board.Hash()))
	binary.Write(hasher, binary.LittleEndian, int64(p.ToMove))
	return StateHash(hasher.Sum64())
}
