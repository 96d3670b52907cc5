// Package monitoring provides Prometheus metrics for the HTTP surface,
// the vendor proxies, and the session store.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Vendor proxy metrics
	VendorCalls    *prometheus.CounterVec
	VendorDuration *prometheus.HistogramVec
	VendorErrors   *prometheus.CounterVec

	// Session store metrics
	SessionsActive  *prometheus.GaugeVec
	SessionsCreated *prometheus.CounterVec
	SessionsDeleted *prometheus.CounterVec
	EntriesAppended *prometheus.CounterVec
	StoreWrites     prometheus.Counter
	StoreLoads      prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sync_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		VendorCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_vendor_calls_total",
				Help: "Total number of outbound vendor calls",
			},
			[]string{"vendor", "status"},
		),
		VendorDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sync_vendor_duration_seconds",
				Help:    "Vendor call duration in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"vendor"},
		),
		VendorErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_vendor_errors_total",
				Help: "Total number of vendor call errors",
			},
			[]string{"vendor", "error_type"},
		),

		SessionsActive: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sync_sessions_active",
				Help: "Number of stored sessions per domain",
			},
			[]string{"domain"},
		),
		SessionsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_sessions_created_total",
				Help: "Total number of sessions created",
			},
			[]string{"domain"},
		),
		SessionsDeleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_sessions_deleted_total",
				Help: "Total number of sessions deleted",
			},
			[]string{"domain"},
		),
		EntriesAppended: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_entries_appended_total",
				Help: "Total number of entries appended to sessions",
			},
			[]string{"domain"},
		),
		StoreWrites: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sync_store_writes_total",
				Help: "Total number of key-value store writes",
			},
		),
		StoreLoads: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sync_store_loads_total",
				Help: "Total number of key-value store loads",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sync_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordVendorCall records an outbound vendor call
func (m *Metrics) RecordVendorCall(vendor, status string, duration time.Duration) {
	m.VendorCalls.WithLabelValues(vendor, status).Inc()
	m.VendorDuration.WithLabelValues(vendor).Observe(duration.Seconds())
}

// RecordVendorError records a vendor call error
func (m *Metrics) RecordVendorError(vendor, errorType string) {
	m.VendorErrors.WithLabelValues(vendor, errorType).Inc()
}

// SetSessionsActive sets the stored session count for a domain
func (m *Metrics) SetSessionsActive(domain string, count int) {
	m.SessionsActive.WithLabelValues(domain).Set(float64(count))
}

// IncSessionsCreated increments the created counter for a domain
func (m *Metrics) IncSessionsCreated(domain string) {
	m.SessionsCreated.WithLabelValues(domain).Inc()
}

// IncSessionsDeleted increments the deleted counter for a domain
func (m *Metrics) IncSessionsDeleted(domain string) {
	m.SessionsDeleted.WithLabelValues(domain).Inc()
}

// IncEntriesAppended increments the appended-entry counter for a domain
func (m *Metrics) IncEntriesAppended(domain string) {
	m.EntriesAppended.WithLabelValues(domain).Inc()
}
