package game

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	Size      = 8
	MaxPieces = 12 // per side
)

// Square is a board coordinate. Only dark squares, where x+y is even, are playable.
type Square struct {
	X, Y int
}

// NoSquare marks the absence of a square, e.g. the captured square of a plain step.
var NoSquare = Square{-1, -1}

func NewSquare(x, y int) (Square, error) {
	sq := Square{x, y}
	if !sq.Playable() {
		return NoSquare, errors.Wrapf(ErrIllegalState, "square %s is not playable", sq)
	}
	return sq, nil
}

func (s Square) OnBoard() bool {
	return s.X >= 0 && s.X < Size && s.Y >= 0 && s.Y < Size
}

func (s Square) Playable() bool {
	return s.OnBoard() && (s.X+s.Y)%2 == 0
}

// Index is the row-major board index y*8+x.
func (s Square) Index() int {
	return s.Y*Size + s.X
}

func (s Square) Add(d Direction) Square {
	dx, dy := d.Delta()
	return Square{s.X + dx, s.Y + dy}
}

func (s Square) String() string {
	return fmt.Sprintf("%d.%d", s.X, s.Y)
}

func squareAt(index int) Square {
	return Square{index % Size, index / Size}
}

// Direction is a diagonal displacement, absolute to the board: forward is towards row 7.
// The declaration order is the order in which moves are generated.
type Direction int

const (
	ForwardLeft Direction = iota
	ForwardRight
	BackwardLeft
	BackwardRight
	ForwardLeftCapture
	ForwardRightCapture
	BackwardLeftCapture
	BackwardRightCapture
)

var deltas = [...][2]int{
	ForwardLeft:          {-1, 1},
	ForwardRight:         {1, 1},
	BackwardLeft:         {-1, -1},
	BackwardRight:        {1, -1},
	ForwardLeftCapture:   {-2, 2},
	ForwardRightCapture:  {2, 2},
	BackwardLeftCapture:  {-2, -2},
	BackwardRightCapture: {2, -2},
}

var directionNames = [...]string{
	"FORWARD_LEFT", "FORWARD_RIGHT", "BACKWARD_LEFT", "BACKWARD_RIGHT",
	"FORWARD_LEFT_CAPTURE", "FORWARD_RIGHT_CAPTURE", "BACKWARD_LEFT_CAPTURE", "BACKWARD_RIGHT_CAPTURE",
}

func (d Direction) Delta() (dx, dy int) {
	return deltas[d][0], deltas[d][1]
}

func (d Direction) IsCapture() bool {
	return d >= ForwardLeftCapture
}

// Single returns the one-square direction along the same diagonal.
func (d Direction) Single() Direction {
	if d.IsCapture() {
		return d - ForwardLeftCapture
	}
	return d
}

// Jump returns the two-square capture direction along the same diagonal.
func (d Direction) Jump() Direction {
	if d.IsCapture() {
		return d
	}
	return d + ForwardLeftCapture
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "UNKNOWN"
	}
	return directionNames[d]
}

// directionBetween returns the direction leading from one square to another,
// if they lie one or two diagonal squares apart.
func directionBetween(from, to Square) (Direction, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	for d, delta := range deltas {
		if delta[0] == dx && delta[1] == dy {
			return Direction(d), true
		}
	}
	return 0, false
}
