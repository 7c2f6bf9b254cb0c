package domain

// Observation is one completed bandit iteration: the arm that was pulled and
// the reward it produced.
type Observation struct {
	Iteration int     `json:"iteration"`
	Context   int     `json:"context"`
	Action    int     `json:"action"`
	Reward    float64 `json:"reward"`
	Explored  bool    `json:"explored"` // true when chosen by the epsilon branch
}

type ArmEstimate struct {
	Action   int     `json:"action"`
	Label    string  `json:"label"`
	Estimate float64 `json:"estimate"`
	Count    int     `json:"count"`
}

type ContextSummary struct {
	Context    int           `json:"context"`
	Label      string        `json:"label"`
	BestAction int           `json:"best_action"` // greedy choice, lowest index on ties
	Pulls      int           `json:"pulls"`
	Arms       []ArmEstimate `json:"arms"`
}
