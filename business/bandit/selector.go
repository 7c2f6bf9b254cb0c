package bandit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RandomSource yields uniform deviates. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// ChooseAction picks an action for context with epsilon-greedy: draw u; when
// u < epsilon return a uniformly random action, otherwise the greedy one.
// It never modifies the table.
func ChooseAction(table *EstimateTable, context int, epsilon float64, rng RandomSource) (int, error) {
	action, _, err := chooseAction(table, context, epsilon, rng)
	return action, err
}

// chooseAction also reports whether the exploration branch was taken.
func chooseAction(table *EstimateTable, context int, epsilon float64, rng RandomSource) (int, bool, error) {
	if table == nil || rng == nil {
		return 0, false, fmt.Errorf("%w: table and random source are required", ErrConfiguration)
	}
	if math.IsNaN(epsilon) || epsilon < 0 || epsilon > 1 {
		return 0, false, fmt.Errorf("%w: epsilon %v outside [0,1]", ErrConfiguration, epsilon)
	}
	if err := table.checkContext(context); err != nil {
		return 0, false, err
	}

	// strict: u == epsilon exploits
	if rng.Float64() < epsilon {
		return rng.IntN(table.numActions), true, nil
	}

	action, err := GreedyAction(table, context)
	return action, false, err
}

// GreedyAction returns the action with the highest estimate in context.
// Ties go to the lowest action index.
func GreedyAction(table *EstimateTable, context int) (int, error) {
	if table == nil {
		return 0, fmt.Errorf("%w: table is required", ErrConfiguration)
	}
	values, err := table.Values(context)
	if err != nil {
		return 0, err
	}
	// MaxIdx returns the first index holding the maximum.
	return floats.MaxIdx(values), nil
}
