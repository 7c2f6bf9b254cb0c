package bandit

import (
	"fmt"
	"sync"
)

// Estimate is the running mean of every reward recorded for one arm.
type Estimate struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

type armState struct {
	mu  sync.Mutex
	est Estimate
}

// EstimateTable holds one Estimate per (context, action) arm, all starting at
// (0, 0). Each arm has its own lock, so Update never loses a write even when
// two goroutines observe the same arm.
type EstimateTable struct {
	numContexts int
	numActions  int
	arms        []armState // row-major: context*numActions + action
}

func NewEstimateTable(numContexts, numActions int) (*EstimateTable, error) {
	if numContexts <= 0 {
		return nil, fmt.Errorf("%w: need at least one context, got %d", ErrConfiguration, numContexts)
	}
	if numActions <= 0 {
		return nil, fmt.Errorf("%w: need at least one action, got %d", ErrConfiguration, numActions)
	}

	return &EstimateTable{
		numContexts: numContexts,
		numActions:  numActions,
		arms:        make([]armState, numContexts*numActions),
	}, nil
}

func (t *EstimateTable) NumContexts() int { return t.numContexts }
func (t *EstimateTable) NumActions() int  { return t.numActions }

func (t *EstimateTable) Get(context, action int) (Estimate, error) {
	arm, err := t.arm(context, action)
	if err != nil {
		return Estimate{}, err
	}
	arm.mu.Lock()
	defer arm.mu.Unlock()
	return arm.est, nil
}

// Row returns a copy of every arm estimate for one context, in action order.
func (t *EstimateTable) Row(context int) ([]Estimate, error) {
	if err := t.checkContext(context); err != nil {
		return nil, err
	}

	row := make([]Estimate, t.numActions)
	for a := range t.numActions {
		arm := &t.arms[context*t.numActions+a]
		arm.mu.Lock()
		row[a] = arm.est
		arm.mu.Unlock()
	}
	return row, nil
}

// Values returns only the estimate values for one context, in action order.
func (t *EstimateTable) Values(context int) ([]float64, error) {
	row, err := t.Row(context)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(row))
	for a, est := range row {
		values[a] = est.Value
	}
	return values, nil
}

// Pulls is the sum of counts over all actions of a context.
func (t *EstimateTable) Pulls(context int) (int, error) {
	row, err := t.Row(context)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, est := range row {
		total += est.Count
	}
	return total, nil
}

// Snapshot copies the whole table, indexed [context][action].
func (t *EstimateTable) Snapshot() [][]Estimate {
	out := make([][]Estimate, t.numContexts)
	for c := range t.numContexts {
		out[c], _ = t.Row(c)
	}
	return out
}

func (t *EstimateTable) checkContext(context int) error {
	if context < 0 || context >= t.numContexts {
		return fmt.Errorf("%w: %d (have %d)", ErrContextNotFound, context, t.numContexts)
	}
	return nil
}

func (t *EstimateTable) arm(context, action int) (*armState, error) {
	if err := t.checkContext(context); err != nil {
		return nil, err
	}
	if action < 0 || action >= t.numActions {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrActionNotFound, action, t.numActions)
	}
	return &t.arms[context*t.numActions+action], nil
}
