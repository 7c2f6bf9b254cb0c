package domain

// Scenario describes a simulated field: the action labels shared by every
// context and, per context, the base mean yield of each action.
type Scenario struct {
	NoiseStd float64           `hcl:"noise_std,optional" json:"noise_std"`
	Actions  []string          `hcl:"actions" json:"actions"`
	Contexts []ScenarioContext `hcl:"context,block" json:"contexts"`
}

type ScenarioContext struct {
	Label     string    `hcl:"label,label" json:"label"`
	BaseMeans []float64 `hcl:"base_means" json:"base_means"`
}

func (s Scenario) ContextLabels() []string {
	labels := make([]string, len(s.Contexts))
	for i, c := range s.Contexts {
		labels[i] = c.Label
	}
	return labels
}

// BaseMeans returns the base-mean rows in context order.
func (s Scenario) BaseMeans() [][]float64 {
	rows := make([][]float64, len(s.Contexts))
	for i, c := range s.Contexts {
		rows[i] = append([]float64(nil), c.BaseMeans...)
	}
	return rows
}
