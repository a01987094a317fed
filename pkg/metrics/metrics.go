// Package metrics provides Prometheus metrics for the pitmstr API.
// A nil *Manager is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service metrics and their registry.
type Manager struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry
	runtime   bool

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	leaderboardDuration prometheus.Histogram
	leaderboardSkipped  prometheus.Counter

	lookupLoads    *prometheus.CounterVec
	datastoreCalls *prometheus.CounterVec
	webhookEvents  *prometheus.CounterVec
}

// NewManager creates a metrics manager on its own registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "pitmstr",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.init()
	return m
}

func (m *Manager) init() {
	auto := promauto.With(m.registry)

	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   m.buckets,
	}, []string{"method", "route"})

	m.leaderboardDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "leaderboard",
		Name:      "compute_duration_seconds",
		Help:      "Time to compute an event leaderboard.",
		Buckets:   m.buckets,
	})

	m.leaderboardSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "leaderboard",
		Name:      "skipped_teams_total",
		Help:      "Teams omitted from a leaderboard because they could not be resolved.",
	})

	m.lookupLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "lookup",
		Name:      "loads_total",
		Help:      "Reference table loads by kind and result.",
	}, []string{"kind", "result"})

	m.datastoreCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "datastore",
		Name:      "calls_total",
		Help:      "Data service calls by operation, table and result.",
	}, []string{"op", "table", "result"})

	m.webhookEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "webhook",
		Name:      "events_total",
		Help:      "Identity provider webhook events by type and result.",
	}, []string{"type", "result"})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records one served request.
func (m *Manager) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLeaderboard records one leaderboard computation.
func (m *Manager) ObserveLeaderboard(elapsed time.Duration, skipped int) {
	if m == nil {
		return
	}
	m.leaderboardDuration.Observe(elapsed.Seconds())
	if skipped > 0 {
		m.leaderboardSkipped.Add(float64(skipped))
	}
}

// RecordLookupLoad records a reference table load.
func (m *Manager) RecordLookupLoad(kind string, err error) {
	if m == nil {
		return
	}
	m.lookupLoads.WithLabelValues(kind, result(err)).Inc()
}

// RecordDatastoreCall records a data service call.
func (m *Manager) RecordDatastoreCall(op, table string, err error) {
	if m == nil {
		return
	}
	m.datastoreCalls.WithLabelValues(op, table, result(err)).Inc()
}

// RecordWebhookEvent records a handled webhook event.
func (m *Manager) RecordWebhookEvent(eventType string, err error) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType, result(err)).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
