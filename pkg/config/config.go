package config

import (
	"fmt"
	"time"

	"myGreenField/business/bandit"
	"myGreenField/internal/randutil"

	"github.com/alecthomas/kong"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const appName = "bandit-sim"

type Config struct {
	App    AppConfig
	Bandit BanditConfig
	Server ServerConfig
}

type AppConfig struct {
	Name        string
	Environment string
	LogLevel    string
}

type BanditConfig struct {
	Iterations    int
	Epsilon       float64
	Seed          int64
	ProgressEvery int
	Workers       int
	Deadline      time.Duration
	ScenarioPath  string
}

type ServerConfig struct {
	Addr string
}

// CLI is the flag set of the simulator. Every flag falls back to an
// environment variable, which an optional .env file may provide.
type CLI struct {
	Iterations    int           `default:"1000" env:"BANDIT_ITERATIONS" help:"Number of bandit iterations." validate:"gte=0"`
	Epsilon       float64       `default:"0.1" env:"BANDIT_EPSILON" help:"Exploration probability in [0,1]." validate:"gte=0,lte=1"`
	Seed          int64         `default:"0" env:"BANDIT_SEED" help:"RNG seed (0 for time-derived)."`
	ProgressEvery int           `name:"progress-every" default:"100" env:"BANDIT_PROGRESS_EVERY" help:"Print a progress line every N iterations (0 disables)." validate:"gte=0"`
	Workers       int           `default:"1" env:"BANDIT_WORKERS" help:"Goroutines for the parallel run (1 runs sequentially)." validate:"min=1"`
	Deadline      time.Duration `default:"0s" env:"BANDIT_DEADLINE" help:"Stop the run after this long (0 for none)." validate:"gte=0"`
	Scenario      string        `env:"BANDIT_SCENARIO" help:"HCL scenario file (built-in irrigation field when empty)."`
	HTTPAddr      string        `name:"http-addr" env:"HTTP_ADDR" help:"Serve estimates and metrics on this address after the run."`
	Env           string        `name:"env" default:"development" env:"APP_ENV" help:"Environment: production, development or test." validate:"oneof=production development test"`
	LogLevel      string        `name:"log-level" env:"LOG_LEVEL" help:"Override the environment log level." validate:"omitempty,oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads .env, parses args (without the program name) and validates the result.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(appName),
		kong.Description("Epsilon-greedy irrigation strategy simulator"),
	)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %s", bandit.ErrConfiguration, err)
	}
	if err := validate.Struct(cli); err != nil {
		return nil, fmt.Errorf("%w: %s", bandit.ErrConfiguration, err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        appName,
			Environment: cli.Env,
			LogLevel:    cli.LogLevel,
		},
		Bandit: BanditConfig{
			Iterations:    cli.Iterations,
			Epsilon:       cli.Epsilon,
			Seed:          cli.Seed,
			ProgressEvery: cli.ProgressEvery,
			Workers:       cli.Workers,
			Deadline:      cli.Deadline,
			ScenarioPath:  cli.Scenario,
		},
		Server: ServerConfig{
			Addr: cli.HTTPAddr,
		},
	}

	return cfg, nil
}

// RunConfig sizes a bandit.Config to the scenario. A zero seed is replaced by
// a time-derived one; the returned config carries the seed actually used.
func (c BanditConfig) RunConfig(numContexts, numActions int) bandit.Config {
	return bandit.Config{
		NumContexts: numContexts,
		NumActions:  numActions,
		Epsilon:     c.Epsilon,
		Iterations:  c.Iterations,
		Seed:        randutil.SeedOrNow(c.Seed),
		Workers:     c.Workers,
		Deadline:    c.Deadline,
	}
}
