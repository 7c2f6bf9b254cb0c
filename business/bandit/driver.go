package bandit

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"myGreenField/domain"
	"myGreenField/internal/randutil"
	"myGreenField/pkg/logger"
	"myGreenField/pkg/metrics"

	"github.com/coder/quartz"
)

// ---- Collaborator interfaces ----

// RewardSource returns one noisy reward for a valid (context, action). It is
// total: every valid pair yields a value.
type RewardSource interface {
	Reward(context, action int) float64
}

// RewardSourceConstructor builds an independently seeded RewardSource for
// each run (and each parallel worker).
type RewardSourceConstructor interface {
	NewRewardSource(seed int64) RewardSource
}

// EventRecorder receives every completed step of Run and RunParallel.
// Recorders used with RunParallel must be safe for concurrent use.
type EventRecorder interface {
	SaveEvent(ctx context.Context, obs domain.Observation) error
}

// random streams derived from Config.Seed
const (
	streamPolicy      = 0 // Run: context choice + selector draws
	streamReward      = 1 // Run: reward noise
	streamSchedule    = 2 // RunParallel: context schedule
	streamContextBase = 16
)

var errStopIteration = errors.New("bandit: iteration stopped by consumer")

// ---- Driver ----

type Driver struct {
	cfg       Config
	sources   RewardSourceConstructor
	recorders []EventRecorder
	clock     quartz.Clock
}

type Option func(*Driver)

func WithRecorders(recorders ...EventRecorder) Option {
	return func(d *Driver) {
		d.recorders = append(d.recorders, recorders...)
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(d *Driver) {
		d.clock = clock
	}
}

func NewDriver(cfg Config, sources RewardSourceConstructor, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sources == nil {
		return nil, fmt.Errorf("%w: reward source is required", ErrConfiguration)
	}

	d := &Driver{
		cfg:     cfg,
		sources: sources,
		clock:   quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Driver) Config() Config {
	return d.cfg
}

// Run executes exactly cfg.Iterations steps on a fresh table. Each step picks
// a context uniformly, chooses an action, samples a reward, updates the arm,
// then hands the observation to every recorder.
//
// Cancellation or an elapsed Deadline stop the loop early; the partial table
// is returned together with the error.
func (d *Driver) Run(ctx context.Context) (*EstimateTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	table, err := NewEstimateTable(d.cfg.NumContexts, d.cfg.NumActions)
	if err != nil {
		return nil, err
	}

	start := d.clock.Now()
	d.logStart(ctx, "sequential")

	err = d.run(ctx, table, true, func(obs domain.Observation) error {
		return d.record(ctx, obs)
	})

	d.logFinish(ctx, start, err)
	return table, err
}

// Events returns the step trace of a run as a lazy sequence. Every range over
// it starts again from the seed on a fresh table, so the sequence is
// restartable and identical each time. Recorders are not called and metrics
// are not updated. A failure is yielded once as the final element.
func (d *Driver) Events(ctx context.Context) iter.Seq2[domain.Observation, error] {
	return func(yield func(domain.Observation, error) bool) {
		table, err := NewEstimateTable(d.cfg.NumContexts, d.cfg.NumActions)
		if err != nil {
			yield(domain.Observation{}, err)
			return
		}

		err = d.run(ctx, table, false, func(obs domain.Observation) error {
			if !yield(obs, nil) {
				return errStopIteration
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopIteration) {
			yield(domain.Observation{}, err)
		}
	}
}

// run drives one sequential trace. observe=false keeps replays out of the
// process-wide metrics.
func (d *Driver) run(ctx context.Context, table *EstimateTable, observe bool, emit func(domain.Observation) error) error {
	rng := randutil.New(randutil.Derive(d.cfg.Seed, streamPolicy))
	source := d.sources.NewRewardSource(randutil.Derive(d.cfg.Seed, streamReward))
	deadline := d.deadline()

	for i := 0; i < d.cfg.Iterations; i++ {
		if err := d.checkStop(ctx, deadline); err != nil {
			return err
		}

		c := rng.IntN(d.cfg.NumContexts)

		obs, err := d.step(table, rng, source, i, c, observe)
		if err != nil {
			return err
		}
		if err := emit(obs); err != nil {
			return err
		}
	}
	return nil
}

// step runs select -> observe -> update for one context.
func (d *Driver) step(
	table *EstimateTable,
	rng RandomSource,
	source RewardSource,
	iteration int,
	context int,
	observe bool,
) (domain.Observation, error) {
	action, explored, err := chooseAction(table, context, d.cfg.Epsilon, rng)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("iteration %d: %w", iteration, err)
	}

	reward := source.Reward(context, action)

	est, err := Update(table, context, action, reward)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("iteration %d: %w", iteration, err)
	}

	obs := domain.Observation{
		Iteration: iteration,
		Context:   context,
		Action:    action,
		Reward:    reward,
		Explored:  explored,
	}
	if observe {
		observeMetrics(obs, est)
	}

	logger.Debug("bandit_step",
		"iteration", iteration,
		"context", context,
		"action", action,
		"explored", explored,
		"reward", reward,
		"estimate", est.Value,
		"count", est.Count,
	)

	return obs, nil
}

func (d *Driver) record(ctx context.Context, obs domain.Observation) error {
	for _, r := range d.recorders {
		if err := r.SaveEvent(ctx, obs); err != nil {
			return fmt.Errorf("record observation %d: %w", obs.Iteration, err)
		}
	}
	return nil
}

func (d *Driver) deadline() time.Time {
	if d.cfg.Deadline <= 0 {
		return time.Time{}
	}
	return d.clock.Now().Add(d.cfg.Deadline)
}

func (d *Driver) checkStop(ctx context.Context, deadline time.Time) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if !deadline.IsZero() && !d.clock.Now().Before(deadline) {
		return fmt.Errorf("%w after %s", ErrDeadlineExceeded, d.cfg.Deadline)
	}
	return nil
}

func (d *Driver) logStart(ctx context.Context, mode string) {
	logger.Info("bandit_run_started",
		"trace_id", TraceIDFromContext(ctx),
		"mode", mode,
		"contexts", d.cfg.NumContexts,
		"actions", d.cfg.NumActions,
		"iterations", d.cfg.Iterations,
		"epsilon", d.cfg.Epsilon,
		"seed", d.cfg.Seed,
		"workers", d.cfg.Workers,
	)
}

func (d *Driver) logFinish(ctx context.Context, start time.Time, err error) {
	elapsed := d.clock.Since(start)
	metrics.BanditRunDuration.Observe(elapsed.Seconds())

	if err != nil {
		logger.Warn("bandit_run_stopped",
			"trace_id", TraceIDFromContext(ctx),
			"elapsed", elapsed,
			"error", err,
		)
		return
	}
	logger.Info("bandit_run_finished",
		"trace_id", TraceIDFromContext(ctx),
		"elapsed", elapsed,
	)
}
