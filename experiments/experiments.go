package experiments

import (
	"checkers/engine"
	"checkers/experiments/metrics"
	"checkers/game"
	"checkers/meta"
	"checkers/searcher"
	"checkers/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Settings shared by every experiment.
type Settings struct {
	Games     int // Per match up
	Depths    []int
	Dir       string
	MaxMoves  int
	Weights   game.Weights
	Generator game.Generator
}

func SettingsFrom(config meta.Config) Settings {
	generator, _ := config.Generator()
	return Settings{
		Games:     config.Experiment.Games,
		Depths:    config.Experiment.Depths,
		Dir:       config.Experiment.Dir,
		MaxMoves:  engine.MaxMoves,
		Weights:   config.Weights,
		Generator: generator,
	}
}

func (s Settings) evaluator() game.Evaluate {
	return game.Evaluator{Weights: s.Weights, Generator: s.Generator}.Score
}

// RunDepthExperiment pairs an agent at every configured depth against the random baseline. Sides
// alternate between games.
func RunDepthExperiment(settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Random: true}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, depth := range settings.Depths {
		config := metrics.AgentConfig{
			ID:           i + 1,
			Goroutines:   1,
			Depth:        depth,
			Evaluate:     settings.evaluator(),
			EvaluateName: "default",
		}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline}, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment("depth", settings, configs, matchUps)
}

// RunEvaluationExperiment pairs the full evaluator against material counting at every depth.
func RunEvaluationExperiment(settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for _, depth := range settings.Depths {
		full := metrics.AgentConfig{
			ID:           len(configs) + 1,
			Goroutines:   1,
			Depth:        depth,
			Evaluate:     settings.evaluator(),
			EvaluateName: "default",
		}
		material := metrics.AgentConfig{
			ID:           len(configs) + 2,
			Goroutines:   1,
			Depth:        depth,
			Evaluate:     game.EvaluateMaterial,
			EvaluateName: "material",
		}
		configs = append(configs, full, material)
		matchUps = append(matchUps, []metrics.AgentConfig{full, material}, []metrics.AgentConfig{material, full})
	}

	return runExperiment("evaluation", settings, configs, matchUps)
}

func runExperiment(name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent%d and agent%d...", mi+1, len(matchUps), config1.ID, config2.ID)

		for i := 0; i < settings.Games; i++ {
			count++
			winner, gameMetric, moveMetrics := runGame(config1, config2, settings, uint64(count))
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)
	return store(name, settings.Dir, configs, gameRecords, moveRecords)
}

func store(name, dir string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriterIn(dir, name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", err
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner. config1 plays COMPUTER.
func runGame(config1, config2 metrics.AgentConfig, settings Settings, seed uint64) (string, metrics.GameMetric, []metrics.MoveMetric) {
	e := engine.NewLocalEngine(
		createAgent(config1, settings.Generator, seed),
		createAgent(config2, settings.Generator, seed+1),
		engine.WithStart(game.Position{Board: game.StartingBoard(), ToMove: game.Computer, Generator: settings.Generator}),
		engine.WithMaxMoves(settings.MaxMoves),
	)
	return e.Run()
}

func createAgent(config metrics.AgentConfig, generator game.Generator, seed uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(seed)
	}
	return agent.NewEvaluationAgent(createSearcher(config, generator))
}

func createSearcher(config metrics.AgentConfig, generator game.Generator) *searcher.AlphaBeta {
	options := []searcher.Option{
		searcher.WithDepth(config.Depth),
		searcher.WithGenerator(generator),
	}

	if config.Goroutines > 1 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.NoPruning {
		options = append(options, searcher.WithoutPruning())
	}
	if config.Evaluate != nil {
		options = append(options, searcher.WithEvaluationFn(config.Evaluate))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewAlphaBeta(options...)
}
