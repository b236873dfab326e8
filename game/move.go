package game

import (
	"checkers/utils"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Step moves a piece one square diagonally, or jumps two squares over Captured.
// Captured may be left as the zero Square in literals: a corner can never be jumped,
// so Square{0, 0} is read as "not given" and the jumped square follows from From and To.
type Step struct {
	From     Square
	To       Square
	Captured Square
}

// NewStep builds a step between two squares, filling in the captured square of a jump.
func NewStep(from, to Square) Step {
	step := Step{From: from, To: to}
	step.Captured = step.Over()
	return step
}

// IsCapture reports whether the step is a two-square diagonal jump.
func (s Step) IsCapture() bool {
	return utils.Abs(s.To.X-s.From.X) == 2 && utils.Abs(s.To.Y-s.From.Y) == 2
}

// Over is the jumped square of a capture, NoSquare otherwise.
func (s Step) Over() Square {
	if !s.IsCapture() {
		return NoSquare
	}
	return Square{(s.From.X + s.To.X) / 2, (s.From.Y + s.To.Y) / 2}
}

func (s Step) String() string {
	return s.From.String() + ":" + s.To.String()
}

// Move is a non-empty sequence of steps by one piece. More than one step means a capture chain.
type Move []Step

func (m Move) From() Square {
	return m[0].From
}

func (m Move) To() Square {
	return m[len(m)-1].To
}

func (m Move) IsCapture() bool {
	return len(m) > 0 && m[0].IsCapture()
}

// Captures lists the captured squares in chain order.
func (m Move) Captures() []Square {
	var captured []Square
	for _, step := range m {
		if step.IsCapture() {
			captured = append(captured, step.Over())
		}
	}
	return captured
}

// Equal compares the squares visited. Captured squares follow from them.
func (m Move) Equal(other Move) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i].From != other[i].From || m[i].To != other[i].To {
			return false
		}
	}
	return true
}

// String renders the move as x.y:x.y steps joined by commas, e.g. "2.2:4.4,4.4:6.6".
func (m Move) String() string {
	steps := make([]string, len(m))
	for i, step := range m {
		steps[i] = step.String()
	}
	return strings.Join(steps, ",")
}

// ParseMove reads the notation produced by Move.String. Captured squares are inferred from jumps.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(ErrIllegalMove, "empty move notation")
	}
	var m Move
	for _, part := range strings.Split(s, ",") {
		from, to, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, errors.Wrapf(ErrIllegalMove, "step %q is not of the form x.y:x.y", part)
		}
		fromSq, err := ParseSquare(from)
		if err != nil {
			return nil, err
		}
		toSq, err := ParseSquare(to)
		if err != nil {
			return nil, err
		}
		m = append(m, NewStep(fromSq, toSq))
	}
	return m, nil
}

// ParseSquare reads an "x.y" coordinate.
func ParseSquare(s string) (Square, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return NoSquare, errors.Wrapf(ErrIllegalMove, "square %q is not of the form x.y", s)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return NoSquare, errors.Wrapf(ErrIllegalMove, "square %q has a bad column", s)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return NoSquare, errors.Wrapf(ErrIllegalMove, "square %q has a bad row", s)
	}
	sq := Square{x, y}
	if !sq.OnBoard() {
		return NoSquare, errors.Wrapf(ErrIllegalMove, "square %s is off the board", sq)
	}
	return sq, nil
}

