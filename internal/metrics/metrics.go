package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics interface consumed by services and middleware
type Recorder interface {
	RecordLogin(result string)
	RecordLogout()
	RecordRegistration(success bool)
	RecordSessionDowngrade()
	RecordHTTPRequest(method, path, status string, durationSeconds float64)
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Authentication metrics
	LoginTotal         *prometheus.CounterVec
	LogoutTotal        prometheus.Counter
	RegistrationsTotal *prometheus.CounterVec

	// Session metrics
	SessionDowngradesTotal prometheus.Counter

	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	return &Metrics{
		LoginTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessiongate_logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"}, // success, rejected, error
		),
		LogoutTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessiongate_logouts_total",
				Help: "Total number of logouts",
			},
		),
		RegistrationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessiongate_registrations_total",
				Help: "Total number of registration attempts",
			},
			[]string{"result"}, // success, error
		),
		SessionDowngradesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessiongate_session_downgrades_total",
				Help: "Sessions cleared because the bound user no longer exists",
			},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessiongate_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sessiongate_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (m *Metrics) RecordLogin(result string) {
	m.LoginTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordLogout() {
	m.LogoutTotal.Inc()
}

func (m *Metrics) RecordRegistration(success bool) {
	result := resultError
	if success {
		result = resultSuccess
	}
	m.RegistrationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordSessionDowngrade() {
	m.SessionDowngradesTotal.Inc()
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}
