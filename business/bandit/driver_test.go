package bandit

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"myGreenField/domain"
	"myGreenField/pkg/logger"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter(logger.EnvTest, io.Discard)
	os.Exit(m.Run())
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Iterations = 1000
	cfg.Seed = 42
	return cfg
}

func newTestDriver(t *testing.T, cfg Config, opts ...Option) *Driver {
	t.Helper()
	d, err := NewDriver(cfg, meansConstructor{means: fieldMeans, noise: 0.05}, opts...)
	require.NoError(t, err)
	return d
}

func totalPulls(t *testing.T, table *EstimateTable) int {
	t.Helper()
	total := 0
	for c := range table.NumContexts() {
		n, err := table.Pulls(c)
		require.NoError(t, err)
		total += n
	}
	return total
}

func TestNewDriver_Validation(t *testing.T) {
	sources := meansConstructor{means: fieldMeans}

	tests := []struct {
		name    string
		mutate  func(*Config)
		sources RewardSourceConstructor
	}{
		{name: "epsilon above one", mutate: func(c *Config) { c.Epsilon = 1.5 }, sources: sources},
		{name: "negative epsilon", mutate: func(c *Config) { c.Epsilon = -0.1 }, sources: sources},
		{name: "no contexts", mutate: func(c *Config) { c.NumContexts = 0 }, sources: sources},
		{name: "no actions", mutate: func(c *Config) { c.NumActions = 0 }, sources: sources},
		{name: "negative iterations", mutate: func(c *Config) { c.Iterations = -1 }, sources: sources},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }, sources: sources},
		{name: "negative deadline", mutate: func(c *Config) { c.Deadline = -time.Second }, sources: sources},
		{name: "missing reward source", mutate: func(c *Config) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			_, err := NewDriver(cfg, tt.sources)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestRun_CountConservation(t *testing.T) {
	rec := &collector{}
	d := newTestDriver(t, testConfig(), WithRecorders(rec))

	table, err := d.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1000, totalPulls(t, table))
	require.Len(t, rec.observations(), 1000)

	perContext := rec.perContext(table.NumContexts())
	for c := range table.NumContexts() {
		pulls, err := table.Pulls(c)
		require.NoError(t, err)
		assert.Equal(t, perContext[c], pulls, "context %d", c)
		assert.Positive(t, pulls, "every context is visited over 1000 uniform draws")
	}

	for i, obs := range rec.observations() {
		assert.Equal(t, i, obs.Iteration)
	}
}

func TestRun_ZeroIterations(t *testing.T) {
	cfg := testConfig()
	cfg.Iterations = 0
	rec := &collector{}
	d := newTestDriver(t, cfg, WithRecorders(rec))

	table, err := d.Run(context.Background())
	require.NoError(t, err)

	for _, row := range table.Snapshot() {
		for _, est := range row {
			assert.Equal(t, Estimate{}, est)
		}
	}
	assert.Empty(t, rec.observations())
}

func TestRun_Deterministic(t *testing.T) {
	run := func(seed int64) ([][]Estimate, []domain.Observation) {
		cfg := testConfig()
		cfg.Seed = seed
		rec := &collector{}
		table, err := newTestDriver(t, cfg, WithRecorders(rec)).Run(context.Background())
		require.NoError(t, err)
		return table.Snapshot(), rec.observations()
	}

	tableA, traceA := run(7)
	tableB, traceB := run(7)
	assert.Equal(t, tableA, tableB)
	assert.Equal(t, traceA, traceB)

	_, traceC := run(8)
	assert.NotEqual(t, traceA, traceC)
}

func TestRun_EpsilonExtremes(t *testing.T) {
	t.Run("never explores at zero", func(t *testing.T) {
		cfg := testConfig()
		cfg.Epsilon = 0
		rec := &collector{}
		_, err := newTestDriver(t, cfg, WithRecorders(rec)).Run(context.Background())
		require.NoError(t, err)

		for _, obs := range rec.observations() {
			require.False(t, obs.Explored)
		}
	})

	t.Run("always explores at one", func(t *testing.T) {
		cfg := testConfig()
		cfg.Epsilon = 1
		rec := &collector{}
		_, err := newTestDriver(t, cfg, WithRecorders(rec)).Run(context.Background())
		require.NoError(t, err)

		for _, obs := range rec.observations() {
			require.True(t, obs.Explored)
		}
	})
}

func TestRun_ConvergesToBestAction(t *testing.T) {
	cfg := Config{
		NumContexts: 1,
		NumActions:  3,
		Epsilon:     0.1,
		Iterations:  5000,
		Seed:        42,
		Workers:     1,
	}
	d, err := NewDriver(cfg, meansConstructor{means: [][]float64{{0.5, 0.7, 0.9}}, noise: 0.05})
	require.NoError(t, err)

	table, err := d.Run(context.Background())
	require.NoError(t, err)

	best, err := GreedyAction(table, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, best)

	est, err := table.Get(0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, est.Value, 0.02)
	assert.Greater(t, est.Count, 4000)
}

func TestRun_RecorderErrorStops(t *testing.T) {
	boom := errors.New("disk full")
	d := newTestDriver(t, testConfig(), WithRecorders(&collector{fail: boom}))

	table, err := d.Run(context.Background())
	require.ErrorIs(t, err, boom)
	require.NotNil(t, table)
	assert.Equal(t, 1, totalPulls(t, table), "the failing step is applied before it is recorded")
}

// cancelAfter cancels the run once it has seen n observations.
type cancelAfter struct {
	n      int
	seen   int
	cancel context.CancelFunc
}

func (c *cancelAfter) SaveEvent(_ context.Context, _ domain.Observation) error {
	c.seen++
	if c.seen == c.n {
		c.cancel()
	}
	return nil
}

func TestRun_Cancellation(t *testing.T) {
	t.Run("already cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		table, err := newTestDriver(t, testConfig()).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, table)
	})

	t.Run("cancelled mid run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		d := newTestDriver(t, testConfig(), WithRecorders(&cancelAfter{n: 10, cancel: cancel}))
		table, err := d.Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, table)
		assert.Equal(t, 10, totalPulls(t, table))
	})
}

// tickingSource advances a mock clock by one second per reward.
type tickingSource struct {
	clock *quartz.Mock
}

func (s tickingSource) NewRewardSource(int64) RewardSource { return s }

func (s tickingSource) Reward(int, int) float64 {
	s.clock.Advance(time.Second)
	return 1
}

func TestRun_Deadline(t *testing.T) {
	clock := quartz.NewMock(t)
	cfg := testConfig()
	cfg.Deadline = 5 * time.Second

	d, err := NewDriver(cfg, tickingSource{clock: clock}, WithClock(clock))
	require.NoError(t, err)

	table, err := d.Run(context.Background())
	require.ErrorIs(t, err, ErrDeadlineExceeded)
	require.NotNil(t, table)
	assert.Equal(t, 5, totalPulls(t, table))
}

func TestEvents_MatchesRecordedRun(t *testing.T) {
	rec := &collector{}
	d := newTestDriver(t, testConfig(), WithRecorders(rec))
	_, err := d.Run(context.Background())
	require.NoError(t, err)

	collect := func() []domain.Observation {
		var out []domain.Observation
		for obs, err := range d.Events(context.Background()) {
			require.NoError(t, err)
			out = append(out, obs)
		}
		return out
	}

	first := collect()
	assert.Equal(t, rec.observations(), first)
	assert.Equal(t, first, collect(), "ranging again restarts from the seed")
	assert.Len(t, rec.observations(), 1000, "Events does not call recorders")
}

func TestEvents_EarlyBreak(t *testing.T) {
	d := newTestDriver(t, testConfig())

	var seen []domain.Observation
	for obs, err := range d.Events(context.Background()) {
		require.NoError(t, err)
		seen = append(seen, obs)
		if len(seen) == 10 {
			break
		}
	}

	require.Len(t, seen, 10)
	assert.Equal(t, 9, seen[9].Iteration)
}

func TestEvents_YieldsStopError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var errs []error
	count := 0
	for _, err := range newTestDriver(t, testConfig()).Events(ctx) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		count++
	}

	assert.Zero(t, count)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	id := NewTraceID()
	require.Len(t, id, 36)
	assert.Equal(t, id, TraceIDFromContext(WithTraceID(context.Background(), id)))
	assert.NotEqual(t, id, NewTraceID())
}
