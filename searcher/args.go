package searcher

import (
	"checkers/meta"
	"math"
)

// Search parameters

const DefaultDepth = meta.DEPTH

// Win is the score of a won position at the root. Wins found deeper score
// Win minus the ply they occur at, so quicker wins are preferred.
const Win = 1_000_000

// Infinity bounds every reachable score.
const Infinity = math.MaxInt32
