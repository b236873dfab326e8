package main

import (
	"checkers/communication/client"
	"checkers/communication/server"
	"checkers/engine"
	"checkers/experiments"
	"checkers/meta"
	"checkers/player"
	"checkers/searcher"
	"checkers/searcher/agent"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "bridge", "bridge, server, selfplay or experiment")
	configPath := flag.String("config", "", "YAML config file")
	side := flag.String("side", "", "Side the agent plays, COMPUTER or HUMAN")
	depth := flag.Int("depth", -1, "Search depth in plies")
	goroutines := flag.Int("goroutines", 0, "Number of goroutines splitting the root of a search")
	remote := flag.String("remote", "", "Agent server URL playing HUMAN in selfplay")
	experiment := flag.String("experiment", "depth", "depth, evaluation or throughput")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	config, err := meta.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *side != "" {
		config.Side = *side
	}
	if *depth >= 0 {
		config.Depth = *depth
	}
	if *goroutines > 0 {
		config.Goroutines = *goroutines
	}
	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}
	level, _ := config.Level()
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "bridge":
		err = runBridge(ctx, config)
	case "server":
		err = runServer(ctx, config)
	case "selfplay":
		runSelfPlay(config, *remote)
	case "experiment":
		err = runExperiment(config, *experiment)
	default:
		err = errors.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msgf("%s stopped", *mode)
	}
}

func newAgentFactory(config meta.Config) server.AgentFactory {
	generator, _ := config.Generator()
	return func(depth int) agent.Agent {
		return agent.NewEvaluationAgent(searcher.NewAlphaBeta(
			searcher.WithDepth(depth),
			searcher.WithGoroutines(config.Goroutines),
			searcher.WithGenerator(generator),
			searcher.WithEvaluationFn(config.Evaluator()),
			searcher.WithMetrics(),
		))
	}
}

func runBridge(ctx context.Context, config meta.Config) error {
	bridge, err := client.NewBridge(config.Bridge)
	if err != nil {
		return err
	}
	defer bridge.Close()

	side, _ := config.Player()
	generator, _ := config.Generator()
	controller := player.NewController(newAgentFactory(config)(config.Depth), side, generator)
	return controller.Run(ctx, bridge)
}

func runServer(ctx context.Context, config meta.Config) error {
	side, _ := config.Player()
	generator, _ := config.Generator()
	s := server.NewServer(newAgentFactory(config), side, config.Depth, generator)

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to shut down")
		}
	}()
	return s.Listen(config.HTTPPort)
}

func runSelfPlay(config meta.Config, remote string) {
	computer := newAgentFactory(config)(config.Depth)
	human := agent.NewRandomAgent(uint64(time.Now().UnixNano()))
	if remote != "" {
		human = engine.NewRemoteAgent(remote, config.Depth)
	}

	winner, gameMetric, _ := engine.NewLocalEngine(computer, human).Run()
	if winner == "" {
		winner = "nobody"
	}
	log.Info().Msgf("Winner: %s after %d moves in %v", winner, gameMetric.TotalMoves, gameMetric.Duration)
}

func runExperiment(config meta.Config, name string) error {
	settings := experiments.SettingsFrom(config)
	var dir string
	var err error
	switch name {
	case "depth":
		dir, err = experiments.RunDepthExperiment(settings)
	case "evaluation":
		dir, err = experiments.RunEvaluationExperiment(settings)
	case "throughput":
		dir, err = experiments.RunThroughputExperiment(settings)
	default:
		return errors.Errorf("unknown experiment %q", name)
	}
	if err != nil {
		return err
	}
	log.Info().Msgf("Results written to %s", dir)
	return nil
}
