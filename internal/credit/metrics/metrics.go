package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the credit decision pipeline.
type Metrics struct {
	// Stage latencies: identity, fraud, scoring, policy
	StageLatency *prometheus.HistogramVec

	// Decision outcomes by status and reason code
	DecisionOutcome *prometheus.CounterVec

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lendgate_credit_stage_duration_seconds",
			Help:    "Duration of pipeline stages by name",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"stage"}), // stage: "identity", "fraud", "scoring", "policy"

		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lendgate_credit_decisions_total",
			Help: "Total decision outcomes by status and reason code",
		}, []string{"status", "reason"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lendgate_credit_evaluate_duration_seconds",
			Help:    "Duration of full eligibility evaluation including provider round trips",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObserveStageLatency records the duration of one pipeline stage.
func (m *Metrics) ObserveStageLatency(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(status, reason string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(status, reason).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
