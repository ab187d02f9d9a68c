// Package metrics provides Prometheus metrics for the readiness service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the readiness service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Dataset shape
	datasetRecords     prometheus.Gauge
	teamsTransferred   prometheus.Gauge
	teamsPending       prometheus.Gauge
	datasetLoadLatency prometheus.Histogram
	configErrors       *prometheus.CounterVec

	// Readiness values
	pairProgress  *prometheus.GaugeVec
	taskPending   *prometheus.GaugeVec
	meanProgress  prometheus.Gauge
	recomputes    *prometheus.CounterVec
	recomputeTime *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ktready",
		subsystem:        "readiness",
		histogramBuckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.datasetRecords = m.gauge("dataset_records", "Number of team/country pairs in the configured dataset")
	m.teamsTransferred = m.gauge("teams_transferred", "Teams with at least one country entry")
	m.teamsPending = m.gauge("teams_pending", "Teams awaiting transfer (no country entries)")
	m.datasetLoadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_load_duration_milliseconds",
		Help:        "Time spent reading and validating the dataset",
		ConstLabels: m.constLabels,
		Buckets:     m.histogramBuckets,
	})
	m.configErrors = m.counterVec("configuration_errors_total", "Malformed dataset entries detected at load time", "source")

	m.pairProgress = m.gaugeVec("progress_percent", "Readiness percentage per team and country", "team", "country")
	m.taskPending = m.gaugeVec("task_pending_records", "Records with the task still pending", "task")
	m.meanProgress = m.gauge("mean_progress_percent", "Mean readiness across every record in the dataset")
	m.recomputes = m.counterVec("recomputes_total", "Derived view recomputations by view", "view")
	m.recomputeTime = m.histogramVec("recompute_duration_milliseconds", "Derived view recomputation latency", "view")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		"endpoint", "method", "status_code")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by HTTP endpoint",
		"endpoint", "method", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Allocated heap bytes")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Current number of goroutines")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		ConstLabels: m.constLabels,
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
	})
}

// UpdateDatasetShape records the number of records and the team split.
func UpdateDatasetShape(records, transferred, pending int) {
	globalManager.datasetRecords.Set(float64(records))
	globalManager.teamsTransferred.Set(float64(transferred))
	globalManager.teamsPending.Set(float64(pending))
}

// RecordDatasetLoadDuration observes a dataset load in milliseconds.
func RecordDatasetLoadDuration(ms float64) {
	globalManager.datasetLoadLatency.Observe(ms)
}

// RecordConfigurationError counts a configuration error from source.
func RecordConfigurationError(source string) {
	globalManager.configErrors.WithLabelValues(source).Inc()
}

// UpdatePairProgress sets the readiness gauge for one team/country pair.
func UpdatePairProgress(team, country string, progress int) {
	globalManager.pairProgress.WithLabelValues(team, country).Set(float64(progress))
}

// UpdateTaskPending sets the pending-record gauge for a task.
func UpdateTaskPending(task string, count int) {
	globalManager.taskPending.WithLabelValues(task).Set(float64(count))
}

// UpdateMeanProgress sets the dataset-wide mean readiness.
func UpdateMeanProgress(mean float64) {
	globalManager.meanProgress.Set(mean)
}

// ResetReadiness clears the per-pair and per-task gauges before a reload.
func ResetReadiness() {
	globalManager.pairProgress.Reset()
	globalManager.taskPending.Reset()
}

// RecordRecompute counts one recomputation of view and its latency.
func RecordRecompute(view string, ms float64) {
	globalManager.recomputes.WithLabelValues(view).Inc()
	globalManager.recomputeTime.WithLabelValues(view).Observe(ms)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint counts an error response on endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
