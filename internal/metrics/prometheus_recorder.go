package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration  prom.Histogram
	buildOutcome   *prom.CounterVec
	itemsRendered  prom.Counter
	itemsSkipped   prom.Counter
	cacheDecisions *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics against reg.
// A nil registry gets a fresh private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "mdpress",
			Name:      "build_duration_seconds",
			Help:      "Total build pass duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdpress",
			Name:      "build_outcome_total",
			Help:      "Build pass counts by outcome",
		}, []string{"outcome"}),
		itemsRendered: prom.NewCounter(prom.CounterOpts{
			Namespace: "mdpress",
			Name:      "items_rendered_total",
			Help:      "Content items rendered across all build passes",
		}),
		itemsSkipped: prom.NewCounter(prom.CounterOpts{
			Namespace: "mdpress",
			Name:      "items_skipped_total",
			Help:      "Content items skipped as up to date across all build passes",
		}),
		cacheDecisions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdpress",
			Name:      "cache_decisions_total",
			Help:      "Cache gate decisions by effective state",
		}, []string{"enabled"}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.itemsRendered, pr.itemsSkipped, pr.cacheDecisions)
	return pr
}

func (pr *PrometheusRecorder) RecordBuild(outcome BuildOutcome, duration time.Duration) {
	pr.buildDuration.Observe(duration.Seconds())
	pr.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (pr *PrometheusRecorder) RecordItems(rendered, skipped int) {
	pr.itemsRendered.Add(float64(rendered))
	pr.itemsSkipped.Add(float64(skipped))
}

func (pr *PrometheusRecorder) RecordCacheDecision(enabled bool) {
	label := "false"
	if enabled {
		label = "true"
	}
	pr.cacheDecisions.WithLabelValues(label).Inc()
}
