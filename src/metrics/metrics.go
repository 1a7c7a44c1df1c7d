// Package metrics records Prometheus metrics for analyses served by the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lost-woods/rngaudit/src/report"
)

type Metrics struct {
	Analyses      *prometheus.CounterVec
	Verdicts      *prometheus.CounterVec
	WhitenedBytes prometheus.Counter
	SampleCount   prometheus.Histogram
}

// New registers the metrics with reg. Pass prometheus.NewRegistry() in tests
// to keep them isolated.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Analyses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rngaudit",
			Name:      "analyses_total",
			Help:      "Analyses performed, by mode.",
		}, []string{"mode"}),
		Verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rngaudit",
			Name:      "verdicts_total",
			Help:      "Graded test outcomes, by test and status.",
		}, []string{"test", "status"}),
		WhitenedBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "rngaudit",
			Name:      "whitened_bytes_total",
			Help:      "Bytes produced by the whitening transform.",
		}),
		SampleCount: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rngaudit",
			Name:      "analysis_samples",
			Help:      "Samples per analyzed set.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}),
	}
}

// ObserveCard records one report card.
func (m *Metrics) ObserveCard(mode string, c report.Card) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(mode).Inc()
	m.SampleCount.Observe(float64(c.Samples))
	for _, o := range c.Outcomes {
		m.Verdicts.WithLabelValues(o.Name, string(o.Status)).Inc()
	}
}

// ObserveComparison records a raw versus whitened run.
func (m *Metrics) ObserveComparison(c report.Comparison) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues("compare").Inc()
	m.SampleCount.Observe(float64(c.Raw.SampleCount))
	m.WhitenedBytes.Add(float64(c.Processed.SampleCount))
}

// ObserveWhiten records a bare whitening request.
func (m *Metrics) ObserveWhiten(n int) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues("whiten").Inc()
	m.WhitenedBytes.Add(float64(n))
}
