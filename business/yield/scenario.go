package yield

import "myGreenField/domain"

const (
	NumPlots      = 3
	NumStrategies = 3

	DefaultNoiseStd = 0.05
)

var (
	PlotLabels     = [NumPlots]string{"Plot A", "Plot B", "Plot C"}
	StrategyLabels = [NumStrategies]string{"Low irrigation", "Moderate irrigation", "High irrigation"}

	// base yield per plot (row) and irrigation strategy (column)
	defaultBaseMeans = [NumPlots][NumStrategies]float64{
		{0.5, 0.7, 0.9},
		{0.4, 0.8, 0.6},
		{0.6, 0.9, 0.7},
	}
)

// DefaultScenario is the built-in three-plot irrigation field.
func DefaultScenario() domain.Scenario {
	s := domain.Scenario{
		NoiseStd: DefaultNoiseStd,
		Actions:  append([]string(nil), StrategyLabels[:]...),
		Contexts: make([]domain.ScenarioContext, NumPlots),
	}
	for p := range NumPlots {
		s.Contexts[p] = domain.ScenarioContext{
			Label:     PlotLabels[p],
			BaseMeans: append([]float64(nil), defaultBaseMeans[p][:]...),
		}
	}
	return s
}
