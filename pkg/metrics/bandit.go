package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Iterations completed across all runs
	BanditIterationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bandit_iterations_total",
		Help: "Total number of bandit iterations (select, observe, update).",
	})

	// Selections by context, action and mode (explore|exploit)
	BanditSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_selections_total",
			Help: "Count of bandit action selections by context, action and mode.",
		},
		[]string{"context", "action", "mode"},
	)

	// Observed rewards per context
	BanditRewardObserved = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bandit_reward_observed",
		Help:    "Distribution of observed rewards by context.",
		Buckets: prometheus.LinearBuckets(0, 0.1, 12),
	}, []string{"context"})

	// Latest running-mean estimate per arm
	BanditEstimate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bandit_estimate",
		Help: "Current estimated mean reward per (context, action).",
	}, []string{"context", "action"})

	// Cumulative regret against the reward oracle, when one is available
	BanditCumulativeRegret = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bandit_cumulative_regret",
		Help: "Cumulative regret of the last run against the best base mean.",
	})

	// Wall-clock duration of a full run
	BanditRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bandit_run_duration_seconds",
		Help:    "Duration of complete bandit runs.",
		Buckets: prometheus.DefBuckets,
	})

	// Inspection server latency by route
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bandit_http_request_duration_seconds",
		Help:    "Latency of inspection server requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

const (
	ModeExplore = "explore"
	ModeExploit = "exploit"
)

func Init() {
	prometheus.MustRegister(
		BanditIterationsTotal,
		BanditSelectionsTotal,
		BanditRewardObserved,
		BanditEstimate,
		BanditCumulativeRegret,
		BanditRunDuration,
		HTTPRequestDuration,
	)
}
