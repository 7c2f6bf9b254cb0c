package bandit

import (
	"strconv"

	"myGreenField/domain"
	"myGreenField/pkg/metrics"
)

// observeMetrics records one completed step. Metrics are registered by
// metrics.Init in the binary; unregistered collectors still accept updates.
func observeMetrics(obs domain.Observation, est Estimate) {
	ctxLabel := strconv.Itoa(obs.Context)
	actLabel := strconv.Itoa(obs.Action)

	mode := metrics.ModeExploit
	if obs.Explored {
		mode = metrics.ModeExplore
	}

	metrics.BanditIterationsTotal.Inc()
	metrics.BanditSelectionsTotal.WithLabelValues(ctxLabel, actLabel, mode).Inc()
	metrics.BanditRewardObserved.WithLabelValues(ctxLabel).Observe(obs.Reward)
	metrics.BanditEstimate.WithLabelValues(ctxLabel, actLabel).Set(est.Value)
}
