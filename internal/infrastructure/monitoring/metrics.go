package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the shell backend.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Window metrics
	WindowsActive    prometheus.Gauge
	WindowsMinimized prometheus.Gauge
	WindowsCreated   prometheus.Counter
	WindowsClosed    prometheus.Counter
	DragClamps       prometheus.Counter

	// App registry metrics
	AppLaunches    *prometheus.CounterVec
	RegisteredApps prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSEvents      prometheus.Counter

	// Cloud store metrics
	CloudUploads *prometheus.CounterVec

	startTime time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webtop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		WindowsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "webtop_windows_active",
				Help: "Number of live windows",
			},
		),
		WindowsMinimized: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "webtop_windows_minimized",
				Help: "Number of minimized windows",
			},
		),
		WindowsCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webtop_windows_created_total",
				Help: "Total number of windows created",
			},
		),
		WindowsClosed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webtop_windows_closed_total",
				Help: "Total number of windows closed",
			},
		),
		DragClamps: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webtop_drag_clamps_total",
				Help: "Drag operations adjusted to keep windows on-screen",
			},
		),

		AppLaunches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtop_app_launches_total",
				Help: "App open requests by outcome (created, refocused, failed)",
			},
			[]string{"app", "outcome"},
		),
		RegisteredApps: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "webtop_registered_apps",
				Help: "Number of registered applications",
			},
		),

		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "webtop_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSEvents: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "webtop_ws_events_total",
				Help: "Total number of events broadcast to shells",
			},
		),

		CloudUploads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webtop_cloud_uploads_total",
				Help: "Cloud store upload attempts by status",
			},
			[]string{"status"},
		),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAppLaunch records an app open outcome.
func (m *Metrics) RecordAppLaunch(app, outcome string) {
	m.AppLaunches.WithLabelValues(app, outcome).Inc()
}

// Uptime returns time since the collector was created.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
