package meta

import (
	"checkers/game"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type BridgeConfig struct {
	Host         string `yaml:"host"`
	InboundPort  int    `yaml:"inbound_port"`
	OutboundPort int    `yaml:"outbound_port"`
}

type ExperimentConfig struct {
	Games  int    `yaml:"games"`
	Depths []int  `yaml:"depths"`
	Dir    string `yaml:"dir"`
}

// Config holds the runtime settings. Fields missing from a file keep their defaults.
type Config struct {
	Side       string           `yaml:"side"`
	Depth      int              `yaml:"depth"`
	Goroutines int              `yaml:"goroutines"`
	Promotion  string           `yaml:"promotion"` // continue or stop
	Weights    game.Weights     `yaml:"weights"`
	LogLevel   string           `yaml:"log_level"`
	Bridge     BridgeConfig     `yaml:"bridge"`
	HTTPPort   int              `yaml:"http_port"`
	Experiment ExperimentConfig `yaml:"experiment"`
}

func Default() Config {
	return Config{
		Side:       game.Computer.String(),
		Depth:      DEPTH,
		Goroutines: GO_ROUTINES,
		Promotion:  game.PromoteAndContinue.String(),
		Weights:    game.DefaultWeights,
		LogLevel:   zerolog.LevelInfoValue,
		Bridge: BridgeConfig{
			Host:         "localhost",
			InboundPort:  INBOUND_PORT,
			OutboundPort: OUTBOUND_PORT,
		},
		HTTPPort: HTTP_PORT,
		Experiment: ExperimentConfig{
			Games:  10,
			Depths: []int{2, 4, 6},
			Dir:    "experiments/results",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if _, err := c.Player(); err != nil {
		return err
	}
	if _, err := c.Generator(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Depth < 0 {
		return errors.Errorf("depth must not be negative, got %d", c.Depth)
	}
	if c.Goroutines < 1 {
		return errors.Errorf("goroutines must be positive, got %d", c.Goroutines)
	}
	return nil
}

func (c Config) Player() (game.Player, error) {
	return game.ParsePlayer(c.Side)
}

func (c Config) Generator() (game.Generator, error) {
	switch c.Promotion {
	case game.PromoteAndContinue.String(), "":
		return game.Generator{Promotion: game.PromoteAndContinue}, nil
	case game.PromoteAndStop.String():
		return game.Generator{Promotion: game.PromoteAndStop}, nil
	}
	return game.Generator{}, errors.Errorf("unknown promotion rule %q", c.Promotion)
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, errors.Wrapf(err, "bad log level %q", c.LogLevel)
	}
	return level, nil
}

func (c Config) Evaluator() game.Evaluate {
	generator, _ := c.Generator()
	return game.Evaluator{Weights: c.Weights, Generator: generator}.Score
}
