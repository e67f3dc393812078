// Package metrics provides Prometheus metrics for the Hall of Fame service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Import row outcomes.
const (
	OutcomeAdded     = "added"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Manager owns the Prometheus collectors of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Roster
	studentsTotal     prometheus.Gauge
	teamsTotal        prometheus.Gauge
	studentsAdded     prometheus.Counter
	studentsUpdated   prometheus.Counter
	studentsDeleted   prometheus.Counter
	duplicateRejected prometheus.Counter
	importRows        *prometheus.CounterVec
	rosterShown       prometheus.Histogram

	// Auth
	authFailures *prometheus.CounterVec

	// Storage
	storeLatency *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "halloffame",
		subsystem:        "roster",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.studentsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "students",
		Help:        "Number of students on the roster",
		ConstLabels: m.constLabels,
	})
	m.teamsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "teams",
		Help:        "Number of distinct teams on the roster",
		ConstLabels: m.constLabels,
	})
	m.studentsAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "students_added_total",
		Help:        "Students added, individually or by import",
		ConstLabels: m.constLabels,
	})
	m.studentsUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "students_updated_total",
		Help:        "Student updates applied",
		ConstLabels: m.constLabels,
	})
	m.studentsDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "students_deleted_total",
		Help:        "Students deleted",
		ConstLabels: m.constLabels,
	})
	m.duplicateRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicates_rejected_total",
		Help:        "Inserts rejected because the name and team already exist",
		ConstLabels: m.constLabels,
	})
	m.importRows = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "import_rows_total",
		Help:        "CSV import rows by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})
	m.rosterShown = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "roster_shown_ratio",
		Help:        "Share of the roster returned by a filtered view",
		Buckets:     []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1},
		ConstLabels: m.constLabels,
	})

	m.authFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "auth_failures_total",
		Help:        "Rejected requests by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_latency_milliseconds",
		Help:        "Store operation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"op"})
	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_errors_total",
		Help:        "Store operation failures",
		ConstLabels: m.constLabels,
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
}

// SetRosterSize records the current student and team counts.
func (m *Manager) SetRosterSize(students, teams int) {
	m.studentsTotal.Set(float64(students))
	m.teamsTotal.Set(float64(teams))
}

// RecordStudentsAdded adds n to the added counter.
func (m *Manager) RecordStudentsAdded(n int) { m.studentsAdded.Add(float64(n)) }

// RecordStudentUpdated increments the update counter.
func (m *Manager) RecordStudentUpdated() { m.studentsUpdated.Inc() }

// RecordStudentsDeleted adds n to the delete counter.
func (m *Manager) RecordStudentsDeleted(n int) { m.studentsDeleted.Add(float64(n)) }

// RecordDuplicateRejected increments the duplicate counter.
func (m *Manager) RecordDuplicateRejected() { m.duplicateRejected.Inc() }

// RecordImportRows adds n rows with the given outcome.
func (m *Manager) RecordImportRows(outcome string, n int) error {
	switch outcome {
	case OutcomeAdded, OutcomeDuplicate, OutcomeSkipped, OutcomeFailed:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutcome, outcome)
	}
	if n > 0 {
		m.importRows.WithLabelValues(outcome).Add(float64(n))
	}
	return nil
}

// RecordRosterView observes the shown/total ratio of a filtered view.
func (m *Manager) RecordRosterView(shown, total int) {
	if total == 0 {
		return
	}
	m.rosterShown.Observe(float64(shown) / float64(total))
}

// RecordAuthFailure increments the auth failure counter for reason.
func (m *Manager) RecordAuthFailure(reason string) { m.authFailures.WithLabelValues(reason).Inc() }

// RecordStoreOp observes one store call.
func (m *Manager) RecordStoreOp(op string, latencyMs float64, err error) {
	m.storeLatency.WithLabelValues(op).Observe(latencyMs)
	if err != nil {
		m.storeErrors.WithLabelValues(op).Inc()
	}
}

// RecordHTTPRequest records the request counter and duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// SetRosterSize records the roster size on the global manager.
func SetRosterSize(students, teams int) {
	globalManager.SetRosterSize(students, teams)
}

// RecordStudentsAdded records added students on the global manager.
func RecordStudentsAdded(n int) {
	globalManager.RecordStudentsAdded(n)
}

// RecordStudentUpdated records an update on the global manager.
func RecordStudentUpdated() {
	globalManager.RecordStudentUpdated()
}

// RecordStudentsDeleted records deletions on the global manager.
func RecordStudentsDeleted(n int) {
	globalManager.RecordStudentsDeleted(n)
}

// RecordDuplicateRejected records a rejected duplicate on the global manager.
func RecordDuplicateRejected() {
	globalManager.RecordDuplicateRejected()
}

// RecordImportRows records import rows on the global manager.
func RecordImportRows(outcome string, n int) error {
	return globalManager.RecordImportRows(outcome, n)
}

// RecordRosterView records a filtered view on the global manager.
func RecordRosterView(shown, total int) {
	globalManager.RecordRosterView(shown, total)
}

// RecordAuthFailure records an auth failure on the global manager.
func RecordAuthFailure(reason string) {
	globalManager.RecordAuthFailure(reason)
}

// RecordStoreOp records a store call on the global manager.
func RecordStoreOp(op string, latencyMs float64, err error) {
	globalManager.RecordStoreOp(op, latencyMs, err)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// GetRegistry returns the registry holding the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
