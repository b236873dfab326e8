package game

// PromotionRule decides what happens to a capture chain when the capturing man is crowned.
type PromotionRule int

const (
	// PromoteAndContinue crowns the man immediately and lets the chain continue with king directions.
	PromoteAndContinue PromotionRule = iota
	// PromoteAndStop ends the move on the crowning square.
	PromoteAndStop
)

func (r PromotionRule) String() string {
	if r == PromoteAndStop {
		return "stop"
	}
	return "continue"
}

var (
	computerManDirections = []Direction{ForwardLeft, ForwardRight}
	humanManDirections    = []Direction{BackwardLeft, BackwardRight}
	kingDirections        = []Direction{ForwardLeft, ForwardRight, BackwardLeft, BackwardRight}
)

// directionsFor returns the single-step directions a piece may use, in generation order.
// Capture directions are the Jump of each.
func directionsFor(owner Player, rank Rank) []Direction {
	if rank == King {
		return kingDirections
	}
	if owner == Computer {
		return computerManDirections
	}
	return humanManDirections
}

func allowed(owner Player, rank Rank, d Direction) bool {
	for _, candidate := range directionsFor(owner, rank) {
		if candidate == d.Single() {
			return true
		}
	}
	return false
}

// crowns reports whether a piece landing on sq is promoted.
func crowns(owner Player, rank Rank, sq Square) bool {
	return rank == Man && sq.Y == owner.PromotionRow()
}
