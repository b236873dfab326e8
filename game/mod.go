package game

import (
	"strings"

	"github.com/pkg/errors"
)

// Player identifies one of the two sides. COMPUTER starts on rows 0-2 and moves
// towards row 7, HUMAN starts on rows 5-7 and moves towards row 0.
type Player int

const (
	Computer Player = iota
	Human
)

func (p Player) Opponent() Player {
	if p == Computer {
		return Human
	}
	return Computer
}

func (p Player) String() string {
	switch p {
	case Computer:
		return "COMPUTER"
	case Human:
		return "HUMAN"
	default:
		return "UNKNOWN"
	}
}

// PromotionRow is the row on which a man of this player is crowned.
func (p Player) PromotionRow() int {
	if p == Computer {
		return Size - 1
	}
	return 0
}

func ParsePlayer(s string) (Player, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COMPUTER":
		return Computer, nil
	case "HUMAN":
		return Human, nil
	}
	return Computer, errors.Errorf("unknown player %q", s)
}

type Rank int

const (
	Man Rank = iota
	King
)

func (r Rank) String() string {
	if r == King {
		return "KING"
	}
	return "MAN"
}

func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MAN", "":
		return Man, nil
	case "KING":
		return King, nil
	}
	return Man, errors.Errorf("unknown piece type %q", s)
}

// Value is the material worth of a piece of this rank.
func (r Rank) Value() int {
	if r == King {
		return 3
	}
	return 1
}

type Piece struct {
	Owner    Player
	Rank     Rank
	Position Square
}

type StateHash uint64

// Evaluate scores a board from the perspective player's point of view.
// Larger is better for perspective.
type Evaluate func(b Board, perspective Player) int
