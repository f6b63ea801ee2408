package observability

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/canvasdoc/internal/runtime"
)

// Metrics holds the collectors updated by Hooks.
type Metrics struct {
	Invocations *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Conflicts   *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors under namespace and registers them with
// reg. A nil reg skips registration.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_invocations_total",
			Help:      "Handler invocations by handler and phase.",
		}, []string{"handler", "phase"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_failures_total",
			Help:      "Handler invocations that returned an error or panicked.",
		}, []string{"handler", "phase", "panic"}),
		Conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_conflicts_total",
			Help:      "Merge conflicts by rejected handler and top-level record field.",
		}, []string{"handler", "field"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "handler_duration_seconds",
			Help:      "Time spent inside handlers.",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		}, []string{"handler", "phase"}),
	}
	if reg != nil {
		reg.MustRegister(m.Invocations, m.Failures, m.Conflicts, m.Duration)
	}
	return m
}

// Hooks returns runtime hooks that record into m.
func (m *Metrics) Hooks() runtime.Hooks {
	return runtime.Hooks{
		OnHandlerDone: func(e *runtime.HandlerEvent) {
			phase := string(e.Phase)
			m.Invocations.WithLabelValues(e.Handler, phase).Inc()
			m.Duration.WithLabelValues(e.Handler, phase).Observe(e.Duration.Seconds())
			if e.Err != nil {
				panicked := "false"
				var exec *runtime.HandlerExecutionError
				if errors.As(e.Err, &exec) && exec.Panic {
					panicked = "true"
				}
				m.Failures.WithLabelValues(e.Handler, phase, panicked).Inc()
			}
		},
		OnConflict: func(e *runtime.HandlerConflictError) {
			m.Conflicts.WithLabelValues(e.Handler, fieldFamily(e.Field)).Inc()
		},
	}
}

// fieldFamily trims a conflict field path to its top-level record field, so
// Inputs[A].Access and State.Extensions[key] count as Inputs and State.
func fieldFamily(field string) string {
	if i := strings.IndexAny(field, "[."); i > 0 {
		return field[:i]
	}
	return field
}
