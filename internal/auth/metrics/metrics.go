// Package metrics exposes Prometheus counters for logins, refreshes and HTTP
// traffic behind a small Recorder interface.
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

// Outcome labels.
const (
	OutcomeSuccess            = "success"
	OutcomeMalformed          = "malformed_request"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeInvalidRefresh     = "invalid_refresh"
	OutcomeError              = "error"
)

// Recorder is what the service and transport layers report to.
type Recorder interface {
	RecordLogin(outcome string)
	RecordRefresh(outcome string)
	RecordLogout()
	RecordSessionsSwept()
	RecordHTTPRequest(method, route string, status int, elapsed time.Duration)
}

var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	registry *prometheus.Registry

	LoginsTotal         *prometheus.CounterVec
	RefreshesTotal      *prometheus.CounterVec
	LogoutsTotal        prometheus.Counter
	HousekeepingRuns    prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every metric on a fresh registry, plus the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LoginsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		RefreshesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_refreshes_total",
				Help: "Refresh attempts by outcome",
			},
			[]string{"outcome"},
		),
		LogoutsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_logouts_total",
				Help: "Completed logouts",
			},
		),
		HousekeepingRuns: f.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_housekeeping_runs_total",
				Help: "Successful expired session sweeps",
			},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordLogin(outcome string)   { m.LoginsTotal.WithLabelValues(outcome).Inc() }
func (m *Metrics) RecordRefresh(outcome string) { m.RefreshesTotal.WithLabelValues(outcome).Inc() }
func (m *Metrics) RecordLogout()                { m.LogoutsTotal.Inc() }
func (m *Metrics) RecordSessionsSwept()         { m.HousekeepingRuns.Inc() }

func (m *Metrics) RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
