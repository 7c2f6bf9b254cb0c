package bandit

import (
	"context"
	rand "math/rand/v2"
	"sync"

	"myGreenField/domain"
	"myGreenField/internal/randutil"
)

// scriptedRand replays fixed deviates and counts how often each method is used.
type scriptedRand struct {
	floats     []float64
	ints       []int
	floatCalls int
	intCalls   int
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[r.floatCalls%len(r.floats)]
	r.floatCalls++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	v := 0
	if len(r.ints) > 0 {
		v = r.ints[r.intCalls%len(r.ints)] % n
	}
	r.intCalls++
	return v
}

// meansSource returns a fixed mean per arm plus uniform noise in [-noise, noise].
type meansSource struct {
	means [][]float64
	noise float64
	rng   *rand.Rand
}

func (s *meansSource) Reward(context, action int) float64 {
	return s.means[context][action] + s.noise*(2*s.rng.Float64()-1)
}

type meansConstructor struct {
	means [][]float64
	noise float64
}

func (m meansConstructor) NewRewardSource(seed int64) RewardSource {
	return &meansSource{means: m.means, noise: m.noise, rng: randutil.New(seed)}
}

func (m meansConstructor) BaseMean(context, action int) float64 {
	return m.means[context][action]
}

// collector records every observation it is handed.
type collector struct {
	mu   sync.Mutex
	obs  []domain.Observation
	fail error
}

func (c *collector) SaveEvent(_ context.Context, obs domain.Observation) error {
	if c.fail != nil {
		return c.fail
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.obs = append(c.obs, obs)
	return nil
}

func (c *collector) observations() []domain.Observation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Observation(nil), c.obs...)
}

func (c *collector) perContext(numContexts int) []int {
	counts := make([]int, numContexts)
	for _, o := range c.observations() {
		counts[o.Context]++
	}
	return counts
}

func mustTable(numContexts, numActions int) *EstimateTable {
	table, err := NewEstimateTable(numContexts, numActions)
	if err != nil {
		panic(err)
	}
	return table
}

var fieldMeans = [][]float64{
	{0.5, 0.7, 0.9},
	{0.4, 0.8, 0.6},
	{0.6, 0.9, 0.7},
}
