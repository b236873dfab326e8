package game

import (
	"encoding/binary"
	"hash/fnv"
	"strings"

	"github.com/pkg/errors"
)

type cell uint8

const empty cell = 0

func cellOf(owner Player, rank Rank) cell {
	return cell(1 + int(owner)*2 + int(rank))
}

func (c cell) owner() Player {
	return Player((c - 1) / 2)
}

func (c cell) rank() Rank {
	return Rank((c - 1) % 2)
}

// Board is an 8x8 grid indexed row-major by y*8+x. It is a value type: copying a
// Board copies its contents, and Apply never modifies the receiver.
type Board struct {
	cells [Size * Size]cell
}

// NewBoard places the given pieces on an otherwise empty board.
func NewBoard(pieces ...Piece) (Board, error) {
	var b Board
	for _, p := range pieces {
		if !p.Position.Playable() {
			return Board{}, errors.Wrapf(ErrIllegalState, "%s piece placed on unplayable square %s", p.Owner, p.Position)
		}
		if p.Owner != Computer && p.Owner != Human {
			return Board{}, errors.Wrapf(ErrIllegalState, "piece on %s has unknown owner %d", p.Position, p.Owner)
		}
		if p.Rank != Man && p.Rank != King {
			return Board{}, errors.Wrapf(ErrIllegalState, "piece on %s has unknown rank %d", p.Position, p.Rank)
		}
		index := p.Position.Index()
		if b.cells[index] != empty {
			return Board{}, errors.Wrapf(ErrIllegalState, "two pieces placed on %s", p.Position)
		}
		b.cells[index] = cellOf(p.Owner, p.Rank)
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate checks that only playable squares are occupied and that no side has more than twelve pieces.
func (b Board) Validate() error {
	var counts [2]int
	for index, c := range b.cells {
		if c == empty {
			continue
		}
		if c > cellOf(Human, King) {
			return errors.Wrapf(ErrIllegalState, "corrupt square %s", squareAt(index))
		}
		if !squareAt(index).Playable() {
			return errors.Wrapf(ErrIllegalState, "piece on unplayable square %s", squareAt(index))
		}
		counts[c.owner()]++
	}
	for player, count := range counts {
		if count > MaxPieces {
			return errors.Wrapf(ErrIllegalState, "%s has %d pieces", Player(player), count)
		}
	}
	return nil
}

func (b Board) PieceAt(sq Square) (Piece, bool) {
	if !sq.OnBoard() {
		return Piece{}, false
	}
	c := b.cells[sq.Index()]
	if c == empty {
		return Piece{}, false
	}
	return Piece{Owner: c.owner(), Rank: c.rank(), Position: sq}, true
}

func (b Board) occupied(sq Square) bool {
	return b.cells[sq.Index()] != empty
}

// PiecesOf lists the player's pieces in board index order.
func (b Board) PiecesOf(player Player) []Piece {
	pieces := make([]Piece, 0, MaxPieces)
	for index, c := range b.cells {
		if c != empty && c.owner() == player {
			pieces = append(pieces, Piece{Owner: player, Rank: c.rank(), Position: squareAt(index)})
		}
	}
	return pieces
}

func (b Board) Count(player Player) int {
	count := 0
	for _, c := range b.cells {
		if c != empty && c.owner() == player {
			count++
		}
	}
	return count
}

// IsTerminalFor reports whether the player has no legal move, which includes having no pieces.
func (b Board) IsTerminalFor(player Player) bool {
	return !hasMove(b, player)
}

// Apply returns the board after the move. Captured pieces are removed as each step
// is taken, and a man reaching its promotion row is crowned at once.
func (b Board) Apply(m Move) (Board, error) {
	if len(m) == 0 {
		return Board{}, errors.Wrap(ErrIllegalMove, "empty move")
	}
	piece, ok := b.PieceAt(m[0].From)
	if !ok {
		return Board{}, errors.Wrapf(ErrIllegalMove, "no piece on %s", m[0].From)
	}

	next := b
	owner, rank := piece.Owner, piece.Rank
	at := piece.Position
	for i, step := range m {
		if step.From != at {
			return Board{}, errors.Wrapf(ErrIllegalMove, "step %d starts on %s instead of %s", i+1, step.From, at)
		}
		if !step.To.Playable() {
			return Board{}, errors.Wrapf(ErrIllegalMove, "step %d lands on unplayable square %s", i+1, step.To)
		}
		if next.occupied(step.To) {
			return Board{}, errors.Wrapf(ErrIllegalMove, "step %d lands on occupied square %s", i+1, step.To)
		}
		d, ok := directionBetween(step.From, step.To)
		if !ok {
			return Board{}, errors.Wrapf(ErrIllegalMove, "%s to %s is neither a diagonal step nor a jump", step.From, step.To)
		}
		if !allowed(owner, rank, d) {
			return Board{}, errors.Wrapf(ErrIllegalMove, "%s %s on %s cannot move %s", owner, rank, step.From, d)
		}

		if d.IsCapture() {
			over := step.From.Add(d.Single())
			if step.Captured != over && step.Captured != (Square{}) {
				return Board{}, errors.Wrapf(ErrIllegalMove, "jump from %s to %s must capture %s, not %s", step.From, step.To, over, step.Captured)
			}
			c := next.cells[over.Index()]
			if c == empty || c.owner() == owner {
				return Board{}, errors.Wrapf(ErrIllegalMove, "no opposing piece to capture on %s", over)
			}
			next.cells[over.Index()] = empty
		} else {
			if step.Captured != NoSquare && step.Captured != (Square{}) {
				return Board{}, errors.Wrapf(ErrIllegalMove, "step from %s to %s cannot capture %s", step.From, step.To, step.Captured)
			}
			if len(m) > 1 {
				return Board{}, errors.Wrapf(ErrIllegalMove, "plain step from %s inside a capture chain", step.From)
			}
		}

		next.cells[step.From.Index()] = empty
		if crowns(owner, rank, step.To) {
			rank = King
		}
		next.cells[step.To.Index()] = cellOf(owner, rank)
		at = step.To
	}
	return next, nil
}

func (b Board) Hash() StateHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, b.cells)
	return StateHash(hasher.Sum64())
}

// String draws the board with row 7 on top. c/C are COMPUTER men/kings, h/H are HUMAN men/kings.
func (b Board) String() string {
	var sb strings.Builder
	for y := Size - 1; y >= 0; y-- {
		for x := 0; x < Size; x++ {
			sq := Square{x, y}
			piece, ok := b.PieceAt(sq)
			switch {
			case !sq.Playable():
				sb.WriteByte(' ')
			case !ok:
				sb.WriteByte('.')
			default:
				sb.WriteByte(symbol(piece))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func symbol(p Piece) byte {
	s := byte('c')
	if p.Owner == Human {
		s = 'h'
	}
	if p.Rank == King {
		s -= 'a' - 'A'
	}
	return s
}
