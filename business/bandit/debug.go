package bandit

import (
	"fmt"

	"myGreenField/domain"

	"gonum.org/v1/gonum/floats"
)

// Summarize returns one summary per context: labelled arm estimates, total
// pulls and the greedy action. Missing labels fall back to "context N" /
// "action N".
func Summarize(table *EstimateTable, contextLabels, actionLabels []string) []domain.ContextSummary {
	if table == nil {
		return []domain.ContextSummary{}
	}

	out := make([]domain.ContextSummary, 0, table.NumContexts())
	for c := range table.NumContexts() {
		s, err := SummarizeContext(table, c, contextLabels, actionLabels)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

func SummarizeContext(table *EstimateTable, context int, contextLabels, actionLabels []string) (domain.ContextSummary, error) {
	if table == nil {
		return domain.ContextSummary{}, fmt.Errorf("%w: table is required", ErrConfiguration)
	}

	row, err := table.Row(context)
	if err != nil {
		return domain.ContextSummary{}, err
	}
	arms := make([]domain.ArmEstimate, len(row))
	values := make([]float64, len(row))
	pulls := 0
	for a, est := range row {
		values[a] = est.Value
		arms[a] = domain.ArmEstimate{
			Action:   a,
			Label:    labelAt(actionLabels, a, "action"),
			Estimate: est.Value,
			Count:    est.Count,
		}
		pulls += est.Count
	}

	return domain.ContextSummary{
		Context:    context,
		Label:      labelAt(contextLabels, context, "context"),
		BestAction: floats.MaxIdx(values),
		Pulls:      pulls,
		Arms:       arms,
	}, nil
}

func labelAt(labels []string, i int, kind string) string {
	if i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return fmt.Sprintf("%s %d", kind, i)
}
