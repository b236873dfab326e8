package game

import "github.com/pkg/errors"

var (
	// ErrIllegalMove is returned when a move does not fit the board it is applied to.
	ErrIllegalMove = errors.New("illegal move")
	// ErrIllegalState is returned when a board breaks placement rules.
	ErrIllegalState = errors.New("illegal board state")
	// ErrNoLegalMove is returned when the side to move cannot move. It is a normal game outcome.
	ErrNoLegalMove = errors.New("no legal move")
)
