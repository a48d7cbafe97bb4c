package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusCollector struct {
	Collector
	attempts       *prometheus.CounterVec
	automatedMoves prometheus.Counter
	drills         prometheus.Counter
	drillDuration  prometheus.Histogram
}

// NewPrometheusCollector records drill statistics like NewCollector and also
// exports them as counters on reg.
func NewPrometheusCollector(reg prometheus.Registerer) Collector {
	factory := promauto.With(reg)
	return &prometheusCollector{
		Collector: NewCollector(),
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drill_learner_attempts_total",
				Help: "Learner move submissions, partitioned by outcome.",
			},
			[]string{"outcome"},
		),
		automatedMoves: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "drill_automated_moves_total",
				Help: "Replies played by the automated side.",
			},
		),
		drills: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "drill_completed_total",
				Help: "Drills played through to the end of a line.",
			},
		),
		drillDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "drill_duration_seconds",
				Help:    "Time from drill start to completion.",
				Buckets: prometheus.ExponentialBuckets(5, 2, 8),
			},
		),
	}
}

func (m *prometheusCollector) AddAttempt(accepted bool) {
	m.Collector.AddAttempt(accepted)
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	m.attempts.WithLabelValues(outcome).Inc()
}

func (m *prometheusCollector) AddAutomatedMove() {
	m.Collector.AddAutomatedMove()
	m.automatedMoves.Inc()
}

func (m *prometheusCollector) Complete(line []string) DrillMetric {
	metric := m.Collector.Complete(line)
	m.drills.Inc()
	m.drillDuration.Observe(metric.Duration.Seconds())
	return metric
}
