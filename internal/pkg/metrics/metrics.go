package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Metrics holds the collectors exported on /metrics
type Metrics struct {
	registry *prometheus.Registry

	gatewayRequests *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
	registrations   *prometheus.CounterVec
	activeDrafts    prometheus.Gauge
	feedClients     prometheus.Gauge
}

// New creates a Metrics instance backed by its own registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamreg",
			Name:      "gateway_requests_total",
			Help:      "Calls to the spreadsheet endpoint by operation and outcome.",
		}, []string{"op", "outcome"}),
		gatewayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "teamreg",
			Name:      "gateway_request_duration_seconds",
			Help:      "Latency of calls to the spreadsheet endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamreg",
			Name:      "registrations_total",
			Help:      "Team registration attempts by outcome.",
		}, []string{"outcome"}),
		activeDrafts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "teamreg",
			Name:      "active_drafts",
			Help:      "Registration drafts currently held in memory.",
		}),
		feedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "teamreg",
			Name:      "team_feed_clients",
			Help:      "Open websocket connections on the team feed.",
		}),
	}

	reg.MustRegister(
		m.gatewayRequests,
		m.gatewayDuration,
		m.registrations,
		m.activeDrafts,
		m.feedClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveGateway records one call to the spreadsheet endpoint
func (m *Metrics) ObserveGateway(op string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.gatewayRequests.WithLabelValues(op, outcome).Inc()
	m.gatewayDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// Registration records the outcome of a submit attempt
func (m *Metrics) Registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

// SetActiveDrafts updates the draft gauge
func (m *Metrics) SetActiveDrafts(n int) {
	if m == nil {
		return
	}
	m.activeDrafts.Set(float64(n))
}

// SetFeedClients updates the websocket client gauge
func (m *Metrics) SetFeedClients(n int) {
	if m == nil {
		return
	}
	m.feedClients.Set(float64(n))
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler serving the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
