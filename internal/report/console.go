// Package report writes the human-readable simulation output to stdout.
package report

import (
	"context"
	"fmt"
	"io"
	"sync"

	"myGreenField/domain"
)

// Console prints one progress line for every iteration divisible by Every.
// Safe for concurrent use; with RunParallel lines arrive in completion order.
type Console struct {
	mu            sync.Mutex
	w             io.Writer
	every         int
	contextLabels []string
	actionLabels  []string
}

func NewConsole(w io.Writer, every int, contextLabels, actionLabels []string) *Console {
	return &Console{
		w:             w,
		every:         every,
		contextLabels: contextLabels,
		actionLabels:  actionLabels,
	}
}

func (c *Console) SaveEvent(_ context.Context, obs domain.Observation) error {
	if c.every <= 0 || obs.Iteration%c.every != 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.w, "Iteration %d: strategy '%s' applied to '%s', yield: %.2f\n",
		obs.Iteration,
		label(c.actionLabels, obs.Action, "action"),
		label(c.contextLabels, obs.Context, "context"),
		obs.Reward,
	)
	return err
}

// PrintSummary writes the expected reward of every strategy, per context.
func PrintSummary(w io.Writer, summaries []domain.ContextSummary) error {
	for _, s := range summaries {
		if _, err := fmt.Fprintf(w, "\nExpected rewards for %s:\n", s.Label); err != nil {
			return err
		}
		for _, arm := range s.Arms {
			if _, err := fmt.Fprintf(w, "  Strategy '%s': %.2f\n", arm.Label, arm.Estimate); err != nil {
				return err
			}
		}
	}
	return nil
}

func label(labels []string, i int, kind string) string {
	if i >= 0 && i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return fmt.Sprintf("%s %d", kind, i)
}
