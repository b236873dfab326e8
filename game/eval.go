package game

// Weights scale the terms of the heuristic.
type Weights struct {
	Material int `yaml:"material"`
	Exposure int `yaml:"exposure"`
	Mobility int `yaml:"mobility"`
}

var DefaultWeights = Weights{Material: 100, Exposure: 20, Mobility: 5}

// Evaluator is a pure function of board content, which makes it safe to share between goroutines.
type Evaluator struct {
	Weights   Weights
	Generator Generator
}

func NewEvaluator(weights Weights) Evaluator {
	return Evaluator{Weights: weights}
}

// Score combines material balance (man 1, king 3), a penalty for pieces the opponent
// can capture right now, and the difference in the number of legal moves.
func (e Evaluator) Score(b Board, perspective Player) int {
	opponent := perspective.Opponent()
	score := e.Weights.Material * (material(b, perspective) - material(b, opponent))
	if e.Weights.Exposure != 0 {
		score -= e.Weights.Exposure * exposed(b, perspective)
	}
	if e.Weights.Mobility != 0 {
		score += e.Weights.Mobility * (len(e.Generator.generate(b, perspective)) - len(e.Generator.generate(b, opponent)))
	}
	return score
}

// EvaluateDefault scores with DefaultWeights.
func EvaluateDefault(b Board, perspective Player) int {
	return NewEvaluator(DefaultWeights).Score(b, perspective)
}

// EvaluateMaterial only counts material.
func EvaluateMaterial(b Board, perspective Player) int {
	return DefaultWeights.Material * (material(b, perspective) - material(b, perspective.Opponent()))
}

func material(b Board, player Player) int {
	total := 0
	for _, c := range b.cells {
		if c != empty && c.owner() == player {
			total += c.rank().Value()
		}
	}
	return total
}

// exposed counts the player's pieces that the opponent could take with a single jump.
func exposed(b Board, player Player) int {
	count := 0
	for _, targeted := range captureTargets(b, player.Opponent()) {
		if targeted {
			count++
		}
	}
	return count
}
