package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SignalsReceived   prometheus.Counter
	RoutingsSucceeded prometheus.Counter
	RoutingsSkipped   prometheus.Counter
	RoutingFailures   *prometheus.CounterVec
	BlackoutsStarted  prometheus.Counter
	EncryptDuration   prometheus.Histogram
	RouteDuration     prometheus.Histogram
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

// NewForTesting creates metrics on a private registry so parallel test
// suites do not collide on duplicate registration.
func NewForTesting() *Metrics {
	return newWithRegisterer(prometheus.NewRegistry())
}

func newWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignalsReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "haven_signals_received_total",
			Help: "Total number of safety signals accepted at the trigger boundary",
		}),
		RoutingsSucceeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "haven_routings_succeeded_total",
			Help: "Total number of signals fully routed to the partner queue",
		}),
		RoutingsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "haven_routings_skipped_total",
			Help: "Total number of routing attempts skipped by the idempotency gate",
		}),
		RoutingFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "haven_routing_failures_total",
			Help: "Total number of failed routing attempts by pipeline stage",
		}, []string{"stage"}),
		BlackoutsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "haven_blackouts_started_total",
			Help: "Total number of family blackout windows started",
		}),
		EncryptDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "haven_envelope_encrypt_duration_seconds",
			Help:    "Latency of envelope encryption",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		RouteDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "haven_routing_duration_seconds",
			Help:    "End to end latency of one routing invocation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}
