package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "productsync"

// Metrics holds the reconciliation collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	reconciliations *prometheus.CounterVec
	steps           *prometheus.CounterVec
	duration        *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconciliations_total",
				Help:      "Finished actions by action and outcome status.",
			},
			[]string{"action", "status"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Remote catalog steps by kind and result.",
			},
			[]string{"kind", "success"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reconcile_duration_seconds",
				Help:      "Action duration in seconds, validation included.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
	}
	reg.MustRegister(m.reconciliations, m.steps, m.duration)
	return m
}

// ObserveStep counts one pipeline step.
func (m *Metrics) ObserveStep(kind string, success bool) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(kind, strconv.FormatBool(success)).Inc()
}

// ObserveRun counts one finished action and records its duration.
func (m *Metrics) ObserveRun(action, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.reconciliations.WithLabelValues(action, status).Inc()
	m.duration.WithLabelValues(action).Observe(d.Seconds())
}
