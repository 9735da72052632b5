// Package metric exposes Prometheus metrics for lookups and streams.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "footprintx"

// Metrics contains the service metrics and the registry they live in.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	LookupsTotal        *prometheus.CounterVec
	ProviderEventsTotal *prometheus.CounterVec
	PolicyBlocksTotal   *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
	StreamDuration      *prometheus.HistogramVec
	HistoryPruned       prometheus.Counter
}

// NewMetrics creates a Metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "lookups",
				Name:      "total",
				Help:      "Total number of orchestrated lookups by query type",
			},
			[]string{"query_type"},
		),

		ProviderEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "events_total",
				Help:      "Total number of branch events by source and outcome",
			},
			[]string{"source", "success"},
		),

		PolicyBlocksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "policy",
				Name:      "blocks_total",
				Help:      "Total number of lookups blocked by policy",
			},
			[]string{"query_type"},
		),

		ActiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sessions",
				Name:      "active",
				Help:      "Number of sessions awaiting or serving a stream",
			},
		),

		StreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "stream",
				Name:      "duration_seconds",
				Help:      "Stream duration in seconds by outcome",
				Buckets:   []float64{0.5, 1, 2, 3, 5, 8, 13, 30, 60},
			},
			[]string{"outcome"},
		),

		HistoryPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "history",
				Name:      "pruned_total",
				Help:      "Total number of lookup records removed by retention",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.LookupsTotal,
		m.ProviderEventsTotal,
		m.PolicyBlocksTotal,
		m.ActiveSessions,
		m.StreamDuration,
		m.HistoryPruned,
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// RecordLookup increments the lookup counter.
func (m *Metrics) RecordLookup(queryType string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(queryType).Inc()
}

// RecordProviderEvent counts one branch event.
func (m *Metrics) RecordProviderEvent(source string, success bool) {
	if m == nil {
		return
	}
	m.ProviderEventsTotal.WithLabelValues(source, strconv.FormatBool(success)).Inc()
}

// RecordPolicyBlock counts a blocked lookup.
func (m *Metrics) RecordPolicyBlock(queryType string) {
	if m == nil {
		return
	}
	m.PolicyBlocksTotal.WithLabelValues(queryType).Inc()
}

// SetActiveSessions updates the active session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

// RecordStream records how long a stream was open.
func (m *Metrics) RecordStream(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.StreamDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordHistoryPruned adds n removed lookup records.
func (m *Metrics) RecordHistoryPruned(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.HistoryPruned.Add(float64(n))
}
