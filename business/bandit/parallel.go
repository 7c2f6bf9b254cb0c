package bandit

import (
	"context"
	"fmt"

	"myGreenField/internal/randutil"
	"myGreenField/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// RunParallel is Run with contexts processed by up to cfg.Workers goroutines.
//
// The master stream draws the whole context schedule first, so the number of
// steps each context receives is fixed by the seed. Every context then runs
// on its own derived random stream and reward source; contexts share no arm,
// so the final table does not depend on goroutine scheduling. The trace
// differs from Run with the same seed because the streams are split differently.
func (d *Driver) RunParallel(ctx context.Context) (*EstimateTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	table, err := NewEstimateTable(d.cfg.NumContexts, d.cfg.NumActions)
	if err != nil {
		return nil, err
	}

	start := d.clock.Now()
	d.logStart(ctx, "parallel")

	// 1) fixed schedule: iteration indices per context
	schedule := d.schedule()
	deadline := d.deadline()

	// 2) one task per context, bounded by Workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)

	for c, iterations := range schedule {
		if len(iterations) == 0 {
			continue
		}
		g.Go(func() error {
			rng := randutil.New(randutil.Derive(d.cfg.Seed, streamContextBase+2*c))
			source := d.sources.NewRewardSource(randutil.Derive(d.cfg.Seed, streamContextBase+2*c+1))

			for _, i := range iterations {
				if err := d.checkStop(gctx, deadline); err != nil {
					return err
				}
				obs, err := d.step(table, rng, source, i, c, true)
				if err != nil {
					return err
				}
				if err := d.record(gctx, obs); err != nil {
					return err
				}
			}

			logger.Debug("bandit_worker_done",
				"trace_id", TraceIDFromContext(ctx),
				"context", c,
				"steps", len(iterations),
			)
			return nil
		})
	}

	err = g.Wait()
	d.logFinish(ctx, start, err)
	return table, err
}

func (d *Driver) schedule() [][]int {
	rng := randutil.New(randutil.Derive(d.cfg.Seed, streamSchedule))
	schedule := make([][]int, d.cfg.NumContexts)
	for i := 0; i < d.cfg.Iterations; i++ {
		c := rng.IntN(d.cfg.NumContexts)
		schedule[c] = append(schedule[c], i)
	}
	return schedule
}
