// Package metrics exposes dispatch activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"fuelwatch/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DispatchMetrics implements service.DispatchMetrics on a Prometheus registry
type DispatchMetrics struct {
	// RunsTotal counts finished runs by result: completed/aborted/failed
	RunsTotal *prometheus.CounterVec

	RunDuration prometheus.Histogram

	RemindersAlerted prometheus.Counter

	// PushSends counts push attempts by outcome: delivered/gone/transient
	PushSends *prometheus.CounterVec

	SubscriptionsPruned prometheus.Counter
}

// NewRegistry creates a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// NewDispatchMetrics creates the dispatch collectors and registers them on reg
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	m := &DispatchMetrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelwatch_dispatch_runs_total",
				Help: "Total number of reminder dispatch runs by result.",
			},
			[]string{"result"},
		),
		RunDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fuelwatch_dispatch_duration_seconds",
				Help:    "Duration of reminder dispatch runs.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
		),
		RemindersAlerted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "fuelwatch_reminders_alerted_total",
				Help: "Total number of service reminders whose alert was broadcast.",
			},
		),
		PushSends: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fuelwatch_push_sends_total",
				Help: "Total number of push notification attempts by outcome.",
			},
			[]string{"outcome"},
		),
		SubscriptionsPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "fuelwatch_subscriptions_pruned_total",
				Help: "Total number of gone push subscriptions removed.",
			},
		),
	}

	reg.MustRegister(m.RunsTotal, m.RunDuration, m.RemindersAlerted, m.PushSends, m.SubscriptionsPruned)

	return m
}

func (m *DispatchMetrics) ObserveRun(result string, duration time.Duration) {
	m.RunsTotal.WithLabelValues(result).Inc()
	m.RunDuration.Observe(duration.Seconds())
}

func (m *DispatchMetrics) AddAlerted(n int) {
	if n > 0 {
		m.RemindersAlerted.Add(float64(n))
	}
}

func (m *DispatchMetrics) IncSend(outcome service.SendOutcome) {
	m.PushSends.WithLabelValues(outcome.String()).Inc()
}

func (m *DispatchMetrics) AddPruned(n int) {
	if n > 0 {
		m.SubscriptionsPruned.Add(float64(n))
	}
}

// Handler serves the registry in the Prometheus exposition format
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
