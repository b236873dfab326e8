package experiments

import (
	"checkers/experiments/metrics"
	"slices"
)

var throughputGoroutines = []int{1, 2, 4, 8}

// RunThroughputExperiment measures nodes and time per move at the deepest configured depth, for each
// root split and for plain minimax. Each matchup uses the same config for both players so the games
// have the same playing strength.
func RunThroughputExperiment(settings Settings) (string, error) {
	depth := 1
	if len(settings.Depths) > 0 {
		depth = slices.Max(settings.Depths)
	}

	configs := []metrics.AgentConfig{}
	for _, goroutines := range throughputGoroutines {
		configs = append(configs, metrics.AgentConfig{
			ID:           len(configs) + 1,
			Goroutines:   goroutines,
			Depth:        depth,
			Evaluate:     settings.evaluator(),
			EvaluateName: "default",
		})
	}
	configs = append(configs, metrics.AgentConfig{
		ID:           len(configs) + 1,
		Goroutines:   1,
		Depth:        depth,
		NoPruning:    true,
		Evaluate:     settings.evaluator(),
		EvaluateName: "default",
	})

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return runExperiment("throughput", settings, configs, matchUps)
}
