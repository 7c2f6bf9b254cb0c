package bandit

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	NumContexts int `validate:"min=1"`
	NumActions  int `validate:"min=1"`

	// exploration probability; u < Epsilon explores, u == Epsilon exploits
	Epsilon float64 `validate:"gte=0,lte=1"`

	// exact number of steps per run, no convergence-based stopping
	Iterations int `validate:"gte=0"`

	// fixes context choices, exploration draws and reward noise
	Seed int64

	// >1 fans contexts out over goroutines in RunParallel
	Workers int `validate:"min=1"`

	// optional wall-clock bound on a run; zero means none
	Deadline time.Duration `validate:"gte=0"`
}

const (
	defaultNumContexts = 3
	defaultNumActions  = 3
	defaultEpsilon     = 0.1
	defaultIterations  = 1000
	defaultSeed        = 42
	defaultWorkers     = 1
)

func DefaultConfig() Config {
	return Config{
		NumContexts: defaultNumContexts,
		NumActions:  defaultNumActions,
		Epsilon:     defaultEpsilon,
		Iterations:  defaultIterations,
		Seed:        defaultSeed,
		Workers:     defaultWorkers,
	}
}

var validate = validator.New()

// Validate reports every invalid field wrapped in ErrConfiguration.
func (cfg Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %s", ErrConfiguration, err)
	}
	return nil
}
