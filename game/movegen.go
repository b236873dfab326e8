package game

// Generator enumerates legal moves. The zero value crowns men mid-chain and lets the chain continue.
type Generator struct {
	Promotion PromotionRule
}

// MovesFor returns every legal move of the player. Captures are mandatory: when any
// capture exists only captures are returned, one move per maximal capture path.
// Moves are ordered by the origin square's board index, then by direction.
// The result is empty only when the player has no legal move.
func (g Generator) MovesFor(b Board, player Player) ([]Move, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return g.generate(b, player), nil
}

func (g Generator) generate(b Board, player Player) []Move {
	pieces := b.PiecesOf(player)

	var captures []Move
	for _, piece := range pieces {
		captures = append(captures, g.chains(b, piece.Position, player, piece.Rank)...)
	}
	if len(captures) > 0 {
		return captures
	}

	var steps []Move
	for _, piece := range pieces {
		for _, d := range directionsFor(player, piece.Rank) {
			to := piece.Position.Add(d)
			if to.Playable() && !b.occupied(to) {
				steps = append(steps, Move{NewStep(piece.Position, to)})
			}
		}
	}
	return steps
}

// chains returns every maximal capture path starting on from. b is a working copy
// on which earlier jumps of the chain have already been applied.
func (g Generator) chains(b Board, from Square, owner Player, rank Rank) []Move {
	var moves []Move
	for _, d := range directionsFor(owner, rank) {
		over, to := from.Add(d), from.Add(d.Jump())
		if !to.Playable() || b.occupied(to) {
			continue
		}
		victim := b.cells[over.Index()]
		if victim == empty || victim.owner() == owner {
			continue
		}

		step := Step{From: from, To: to, Captured: over}
		next := b
		next.cells[over.Index()] = empty
		next.cells[from.Index()] = empty
		nextRank := rank
		promoted := crowns(owner, rank, to)
		if promoted {
			nextRank = King
		}
		next.cells[to.Index()] = cellOf(owner, nextRank)

		var tails []Move
		if !promoted || g.Promotion == PromoteAndContinue {
			tails = g.chains(next, to, owner, nextRank)
		}
		if len(tails) == 0 {
			moves = append(moves, Move{step})
			continue
		}
		for _, tail := range tails {
			moves = append(moves, append(Move{step}, tail...))
		}
	}
	return moves
}

// captureTargets marks the squares holding pieces the player could capture with a single jump.
func captureTargets(b Board, player Player) [Size * Size]bool {
	var targets [Size * Size]bool
	for _, piece := range b.PiecesOf(player) {
		for _, d := range directionsFor(player, piece.Rank) {
			over, to := piece.Position.Add(d), piece.Position.Add(d.Jump())
			if !to.Playable() || b.occupied(to) {
				continue
			}
			victim := b.cells[over.Index()]
			if victim != empty && victim.owner() != player {
				targets[over.Index()] = true
			}
		}
	}
	return targets
}

func hasMove(b Board, player Player) bool {
	for _, piece := range b.PiecesOf(player) {
		for _, d := range directionsFor(player, piece.Rank) {
			to := piece.Position.Add(d)
			if to.Playable() && !b.occupied(to) {
				return true
			}
			jump := piece.Position.Add(d.Jump())
			if !jump.Playable() || b.occupied(jump) {
				continue
			}
			if victim := b.cells[to.Index()]; victim != empty && victim.owner() != player {
				return true
			}
		}
	}
	return false
}
