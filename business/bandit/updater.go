package bandit

import (
	"fmt"
	"math"
)

// Update folds one observed reward into the running mean of (context, action):
//
//	n     = count + 1
//	value = value + (reward - value) / n
//
// After any sequence of calls the value equals the mean of every reward passed
// for that arm. The read-modify-write holds the arm's lock; Update is safe for
// concurrent use. Invalid indices and non-finite rewards leave the table untouched.
func Update(table *EstimateTable, context, action int, reward float64) (Estimate, error) {
	if table == nil {
		return Estimate{}, fmt.Errorf("%w: table is required", ErrConfiguration)
	}
	arm, err := table.arm(context, action)
	if err != nil {
		return Estimate{}, err
	}
	if math.IsNaN(reward) || math.IsInf(reward, 0) {
		return Estimate{}, fmt.Errorf("%w: non-finite reward %v for (%d,%d)", ErrConfiguration, reward, context, action)
	}

	arm.mu.Lock()
	defer arm.mu.Unlock()

	n := arm.est.Count + 1
	arm.est.Value += (reward - arm.est.Value) / float64(n)
	arm.est.Count = n

	return arm.est, nil
}
