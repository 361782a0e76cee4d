// Package metrics provides Prometheus metrics for the daily attendance snapshot job.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Manager manages all Prometheus metrics for the snapshot job.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Fetch Metrics - one observation per external source per run
	fetchLatency *prometheus.HistogramVec
	fetchErrors  *prometheus.CounterVec

	// Snapshot Metrics - what was published
	staffCount     *prometheus.GaugeVec
	publishedBytes prometheus.Gauge
	calendarFlags  *prometheus.GaugeVec

	// Run Metrics - batch job health
	runDuration    prometheus.Gauge
	runs           *prometheus.CounterVec
	lastSuccessUTC prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "asistencia",
		subsystem:        "snapshot",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "fetch_latency_milliseconds",
			Help:        "Latency of each external data fetch in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.customLabels,
		},
		[]string{"source"},
	)

	m.fetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "fetch_errors_total",
			Help:        "Total number of failed external data fetches by source",
			ConstLabels: m.customLabels,
		},
		[]string{"source"},
	)

	m.staffCount = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "staff_count",
			Help:        "Number of people per staff category in the last built snapshot",
			ConstLabels: m.customLabels,
		},
		[]string{"category"},
	)

	m.publishedBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "published_bytes",
		Help:        "Size of the last published snapshot in bytes",
		ConstLabels: m.customLabels,
	})

	m.calendarFlags = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "calendar_flag",
			Help:        "Calendar classification of the last snapshot (1 = set)",
			ConstLabels: m.customLabels,
		},
		[]string{"flag"},
	)

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_seconds",
		Help:        "Wall time of the last run in seconds",
		ConstLabels: m.customLabels,
	})

	m.runs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "runs_total",
			Help:        "Total number of runs by result",
			ConstLabels: m.customLabels,
		},
		[]string{"result"},
	)

	m.lastSuccessUTC = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_success_timestamp_seconds",
		Help:        "Unix time of the last successful run",
		ConstLabels: m.customLabels,
	})
}

// RecordFetchLatency records how long a fetch from source took.
func RecordFetchLatency(source string, latencyMs float64) {
	globalManager.fetchLatency.WithLabelValues(source).Observe(latencyMs)
}

// RecordFetchError increments the error counter for source.
func RecordFetchError(source string) {
	globalManager.fetchErrors.WithLabelValues(source).Inc()
}

// UpdateStaffCount sets the number of people in a category.
func UpdateStaffCount(category string, count int) {
	globalManager.staffCount.WithLabelValues(category).Set(float64(count))
}

// UpdatePublishedBytes sets the size of the last published snapshot.
func UpdatePublishedBytes(size int) {
	globalManager.publishedBytes.Set(float64(size))
}

// UpdateCalendarFlag records a calendar classification flag.
func UpdateCalendarFlag(flag string, set bool) {
	v := 0.0
	if set {
		v = 1
	}
	globalManager.calendarFlags.WithLabelValues(flag).Set(v)
}

// RecordRun records the outcome and duration of a run. A successful run
// also moves the last-success timestamp.
func RecordRun(result string, durationSeconds float64, finishedUnix int64) {
	globalManager.runs.WithLabelValues(result).Inc()
	globalManager.runDuration.Set(durationSeconds)
	if result == ResultSuccess {
		globalManager.lastSuccessUTC.Set(float64(finishedUnix))
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
