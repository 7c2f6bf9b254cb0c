// Package yield simulates crop yield feedback: a fixed base mean per
// (plot, strategy) plus Gaussian weather noise.
package yield

import (
	"fmt"
	"math"

	"myGreenField/business/bandit"
	"myGreenField/domain"
	"myGreenField/internal/randutil"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator holds a validated base-mean table and builds seeded yield sources.
type Generator struct {
	means      [][]float64
	noiseStd   float64
	numActions int
}

var (
	_ bandit.RewardSourceConstructor = &Generator{}
	_ bandit.MeanOracle              = &Generator{}
)

func NewGenerator(s domain.Scenario) (*Generator, error) {
	if len(s.Contexts) == 0 {
		return nil, fmt.Errorf("%w: scenario has no contexts", bandit.ErrConfiguration)
	}
	if len(s.Actions) == 0 {
		return nil, fmt.Errorf("%w: scenario has no actions", bandit.ErrConfiguration)
	}
	if math.IsNaN(s.NoiseStd) || math.IsInf(s.NoiseStd, 0) || s.NoiseStd < 0 {
		return nil, fmt.Errorf("%w: noise_std must be a finite value >= 0, got %v", bandit.ErrConfiguration, s.NoiseStd)
	}

	means := s.BaseMeans()
	for c, row := range means {
		if len(row) != len(s.Actions) {
			return nil, fmt.Errorf("%w: context %q has %d base means for %d actions",
				bandit.ErrConfiguration, s.Contexts[c].Label, len(row), len(s.Actions))
		}
		for a, m := range row {
			if math.IsNaN(m) || math.IsInf(m, 0) {
				return nil, fmt.Errorf("%w: base mean (%d,%d) is not finite", bandit.ErrConfiguration, c, a)
			}
		}
	}

	return &Generator{
		means:      means,
		noiseStd:   s.NoiseStd,
		numActions: len(s.Actions),
	}, nil
}

func (g *Generator) NumContexts() int { return len(g.means) }
func (g *Generator) NumActions() int  { return g.numActions }

func (g *Generator) BaseMean(context, action int) float64 {
	return g.means[context][action]
}

// NewRewardSource returns a yield source whose noise sequence is fixed by seed.
func (g *Generator) NewRewardSource(seed int64) bandit.RewardSource {
	return &GaussianYield{
		means: g.means,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: g.noiseStd,
			Src:   randutil.NewSource(seed),
		},
	}
}

// GaussianYield is not safe for concurrent use; give each goroutine its own.
type GaussianYield struct {
	means [][]float64
	noise distuv.Normal
}

func (y *GaussianYield) Reward(context, action int) float64 {
	return y.means[context][action] + y.noise.Rand()
}
