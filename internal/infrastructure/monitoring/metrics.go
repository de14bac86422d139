package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Window metrics
	WindowsOpen   prometheus.Gauge
	WindowsOpened prometheus.Counter

	// File system metrics
	ItemOps       *prometheus.CounterVec
	GatedOutcomes *prometheus.CounterVec

	// App registry metrics
	AppChanges *prometheus.CounterVec

	// Persistence metrics
	PersistWrites   *prometheus.CounterVec
	PersistDropped  *prometheus.CounterVec
	PersistDuration *prometheus.HistogramVec
	BreakerState    *prometheus.GaugeVec

	// Session metrics
	SessionsActive prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for the health endpoint
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON health API
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveSessions    int64   `json:"active_sessions"`
	ActiveConnections int64   `json:"active_connections"`
	DroppedWrites     int64   `json:"dropped_writes"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector registered with the default registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector registered with reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Window metrics
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_windows_open",
				Help: "Number of open windows across all desktops",
			},
		),
		WindowsOpened: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "webdesk_windows_opened_total",
				Help: "Total number of windows opened",
			},
		),

		// File system metrics
		ItemOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_vfs_operations_total",
				Help: "Total number of file system mutations",
			},
			[]string{"op"},
		),
		GatedOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_gated_operations_total",
				Help: "Outcomes of confirmation-gated operations",
			},
			[]string{"op", "outcome"},
		),

		// App registry metrics
		AppChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_app_changes_total",
				Help: "Total number of app installs and uninstalls",
			},
			[]string{"op"},
		),

		// Persistence metrics
		PersistWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_persist_writes_total",
				Help: "Total number of key-value writes",
			},
			[]string{"key", "status"},
		),
		PersistDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_persist_dropped_total",
				Help: "Writes dropped because the storage quota was exceeded",
			},
			[]string{"key"},
		),
		PersistDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_persist_duration_seconds",
				Help:    "Key-value write duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"key"},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "webdesk_breaker_state",
				Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
			[]string{"name"},
		),

		// Session metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_sessions_active",
				Help: "Number of open desktop sessions",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webdesk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// WindowOpened records a newly opened window
func (m *Metrics) WindowOpened() {
	m.WindowsOpened.Inc()
	m.WindowsOpen.Inc()
	m.mu.Lock()
	m.snapshot.OpenWindows++
	m.mu.Unlock()
}

// WindowsClosed records n closed windows
func (m *Metrics) WindowsClosed(n int) {
	if n <= 0 {
		return
	}
	m.WindowsOpen.Sub(float64(n))
	m.mu.Lock()
	m.snapshot.OpenWindows -= int64(n)
	m.mu.Unlock()
}

// RecordItemOp records a file system mutation
func (m *Metrics) RecordItemOp(op string) {
	m.ItemOps.WithLabelValues(op).Inc()
}

// RecordOutcome records the outcome of a gated operation
func (m *Metrics) RecordOutcome(op, outcome string) {
	m.GatedOutcomes.WithLabelValues(op, outcome).Inc()
}

// RecordAppChange records an install or uninstall
func (m *Metrics) RecordAppChange(op string) {
	m.AppChanges.WithLabelValues(op).Inc()
}

// RecordPersist records a key-value write
func (m *Metrics) RecordPersist(key, status string, duration time.Duration) {
	m.PersistWrites.WithLabelValues(key, status).Inc()
	m.PersistDuration.WithLabelValues(key).Observe(duration.Seconds())
}

// RecordDropped records a write lost to the storage quota
func (m *Metrics) RecordDropped(key string) {
	m.PersistDropped.WithLabelValues(key).Inc()
	m.mu.Lock()
	m.snapshot.DroppedWrites++
	m.mu.Unlock()
}

// SetBreakerState records the state of a named circuit breaker
func (m *Metrics) SetBreakerState(name string, state int) {
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}

// SetSessionsActive sets the number of open sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveSessions = int64(count)
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current values for the health endpoint
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
