package bandit

import (
	"context"
	"fmt"
	"sync"

	"myGreenField/domain"
	"myGreenField/pkg/metrics"
)

// MeanOracle exposes the true base mean of an arm. Only simulated reward
// sources have one; the bandit itself never reads it.
type MeanOracle interface {
	BaseMean(context, action int) float64
}

// RegretTracker accumulates expected regret: for every observation, the gap
// between the best base mean of its context and the base mean of the action
// actually chosen. Safe for concurrent use.
type RegretTracker struct {
	mu         sync.Mutex
	oracle     MeanOracle
	numActions int
	best       []float64
	perContext []float64
	total      float64
}

var _ EventRecorder = &RegretTracker{}

func NewRegretTracker(oracle MeanOracle, numContexts, numActions int) (*RegretTracker, error) {
	if oracle == nil {
		return nil, fmt.Errorf("%w: mean oracle is required", ErrConfiguration)
	}
	if numContexts <= 0 || numActions <= 0 {
		return nil, fmt.Errorf("%w: empty context or action set", ErrConfiguration)
	}

	best := make([]float64, numContexts)
	for c := range numContexts {
		best[c] = oracle.BaseMean(c, 0)
		for a := 1; a < numActions; a++ {
			if m := oracle.BaseMean(c, a); m > best[c] {
				best[c] = m
			}
		}
	}

	return &RegretTracker{
		oracle:     oracle,
		numActions: numActions,
		best:       best,
		perContext: make([]float64, numContexts),
	}, nil
}

func (r *RegretTracker) SaveEvent(_ context.Context, obs domain.Observation) error {
	if obs.Context < 0 || obs.Context >= len(r.best) {
		return fmt.Errorf("%w: %d", ErrContextNotFound, obs.Context)
	}
	if obs.Action < 0 || obs.Action >= r.numActions {
		return fmt.Errorf("%w: %d", ErrActionNotFound, obs.Action)
	}

	gap := r.best[obs.Context] - r.oracle.BaseMean(obs.Context, obs.Action)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.perContext[obs.Context] += gap
	r.total += gap
	// set under the lock so the gauge never goes back to an older total
	metrics.BanditCumulativeRegret.Set(r.total)
	return nil
}

func (r *RegretTracker) Total() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

func (r *RegretTracker) PerContext() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.perContext...)
}
