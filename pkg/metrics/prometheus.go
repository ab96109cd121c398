package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for selection runs.
const (
	OutcomeMatched = "matched"
	OutcomeNone    = "none"
)

// Manager owns the Prometheus collectors for one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Source
	fetchLatency     prometheus.Histogram
	fetchErrors      prometheus.Counter
	contestsReceived prometheus.Counter
	recordsRejected  *prometheus.CounterVec

	// Selection
	selections       *prometheus.CounterVec
	matchingContests prometheus.Gauge

	// Schedule
	schedulesGenerated *prometheus.CounterVec
	scheduleErrors     *prometheus.CounterVec

	lastRun prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record* helpers

// Custom registry to avoid default Go metrics in exported files.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "dkcron",
		subsystem: "contests",
		// fetches are slow; buckets in milliseconds
		histogramBuckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Latency of contest list retrieval in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.fetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Total number of failed contest list retrievals",
	})

	m.contestsReceived = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "received_total",
		Help:      "Total number of raw contest records received",
	})

	m.recordsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "records_rejected_total",
			Help:      "Total number of raw contest records that failed to decode",
		},
		[]string{"reason"},
	)

	m.selections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "selections_total",
			Help:      "Total number of selection runs by sport and outcome",
		},
		[]string{"sport", "outcome"},
	)

	m.matchingContests = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matching",
		Help:      "Number of contests that met the criteria in the last run",
	})

	m.schedulesGenerated = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "schedules_generated_total",
			Help:      "Total number of cron schedule pairs generated by sport",
		},
		[]string{"sport"},
	)

	m.scheduleErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "schedule_errors_total",
			Help:      "Total number of failed schedule syntheses by reason",
		},
		[]string{"reason"},
	)

	m.lastRun = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last completed run",
	})
}

// Registry returns the registry this manager registers on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the manager's metrics in the node_exporter textfile
// format. The file is written atomically.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// RecordFetchLatency records contest list retrieval latency.
func RecordFetchLatency(d time.Duration) {
	globalManager.fetchLatency.Observe(float64(d) / float64(time.Millisecond))
}

// RecordFetchError increments the fetch error counter.
func RecordFetchError() {
	globalManager.fetchErrors.Inc()
}

// RecordContestsReceived adds n raw records to the received counter.
func RecordContestsReceived(n int) {
	globalManager.contestsReceived.Add(float64(n))
}

// RecordRecordRejected increments the rejected record counter for reason.
func RecordRecordRejected(reason string) {
	globalManager.recordsRejected.WithLabelValues(reason).Inc()
}

// RecordSelection records a selection run outcome for sport.
func RecordSelection(sport, outcome string) {
	globalManager.selections.WithLabelValues(sport, outcome).Inc()
}

// UpdateMatchingContests sets the number of contests that met the criteria.
func UpdateMatchingContests(n int) {
	globalManager.matchingContests.Set(float64(n))
}

// RecordScheduleGenerated increments the generated schedules counter for sport.
func RecordScheduleGenerated(sport string) {
	globalManager.schedulesGenerated.WithLabelValues(sport).Inc()
}

// RecordScheduleError increments the schedule error counter for reason.
func RecordScheduleError(reason string) {
	globalManager.scheduleErrors.WithLabelValues(reason).Inc()
}

// MarkRun sets the last run timestamp.
func MarkRun(t time.Time) {
	globalManager.lastRun.Set(float64(t.Unix()))
}

// WriteTextfile exports the global registry to path.
func WriteTextfile(path string) error {
	return globalManager.WriteTextfile(path)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
