// Package metrics exposes Prometheus collectors for function invocations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the function collectors on a private registry, so tests can
// build as many as they like.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datapad",
			Name:      "function_invocations_total",
			Help:      "Function invocations by function name and response status.",
		}, []string{"function", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "datapad",
			Name:      "function_duration_seconds",
			Help:      "Function handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function"}),
	}
	m.registry.MustRegister(
		m.invocations,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe records one invocation.
func (m *Metrics) Observe(function string, status int, elapsed time.Duration) {
	m.invocations.WithLabelValues(function, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(function).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
