// Package metrics provides Prometheus metrics for the groundwork service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Fetch lifecycle metrics, labelled by fetch kind
	// (assessment, history, overrides).
	fetchesTotal  *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	staleDropped  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec

	// Write path metrics.
	savesTotal   prometheus.Counter
	saveErrors   prometheus.Counter
	exportsTotal *prometheus.CounterVec
	exportErrors prometheus.Counter

	// Domain rule metrics.
	signalEvaluations *prometheus.CounterVec
	checklistUpdates  prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager backed by a custom registry so default Go collectors do not
// pollute the scrape output.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton metrics manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "groundwork",
		subsystem:        "assessment",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	factory := promauto.With(m.registry)

	m.fetchesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetches_total",
		Help:      "Total fetches issued, by fetch kind.",
	}, []string{"kind"})

	m.fetchErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Fetches that failed, by fetch kind.",
	}, []string{"kind"})

	m.staleDropped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stale_responses_dropped_total",
		Help:      "Responses discarded because a newer request superseded them.",
	}, []string{"kind"})

	m.fetchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_duration_seconds",
		Help:      "Fetch latency, by fetch kind.",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	m.savesTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "saves_total",
		Help:      "Successful assessment saves.",
	})

	m.saveErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_errors_total",
		Help:      "Assessment saves that failed or were rejected.",
	})

	m.exportsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Condition report exports, by format.",
	}, []string{"format"})

	m.exportErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_errors_total",
		Help:      "Condition report exports that failed.",
	})

	m.signalEvaluations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "signal_evaluations_total",
		Help:      "Feasibility signal evaluations, by scenario.",
	}, []string{"scenario"})

	m.checklistUpdates = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "checklist_updates_total",
		Help:      "Checklist item status updates.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests, by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by endpoint and method.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// Package-level helpers operating on the global manager.

// RecordFetch counts an issued fetch of the given kind.
func RecordFetch(kind string) {
	if globalManager.enabled {
		globalManager.fetchesTotal.WithLabelValues(kind).Inc()
	}
}

// RecordFetchError counts a failed fetch of the given kind.
func RecordFetchError(kind string) {
	if globalManager.enabled {
		globalManager.fetchErrors.WithLabelValues(kind).Inc()
	}
}

// RecordStaleDrop counts a superseded response that was discarded.
func RecordStaleDrop(kind string) {
	if globalManager.enabled {
		globalManager.staleDropped.WithLabelValues(kind).Inc()
	}
}

// RecordFetchDuration observes fetch latency in seconds.
func RecordFetchDuration(kind string, seconds float64) {
	if globalManager.enabled {
		globalManager.fetchDuration.WithLabelValues(kind).Observe(seconds)
	}
}

// RecordSave counts a successful assessment save.
func RecordSave() {
	if globalManager.enabled {
		globalManager.savesTotal.Inc()
	}
}

// RecordSaveError counts a failed or rejected save.
func RecordSaveError() {
	if globalManager.enabled {
		globalManager.saveErrors.Inc()
	}
}

// RecordExport counts a report export in the given format.
func RecordExport(format string) {
	if globalManager.enabled {
		globalManager.exportsTotal.WithLabelValues(format).Inc()
	}
}

// RecordExportError counts a failed export.
func RecordExportError() {
	if globalManager.enabled {
		globalManager.exportErrors.Inc()
	}
}

// RecordSignalEvaluation counts a feasibility signal evaluation.
func RecordSignalEvaluation(scenario string) {
	if globalManager.enabled {
		globalManager.signalEvaluations.WithLabelValues(scenario).Inc()
	}
}

// RecordChecklistUpdate counts a checklist status mutation.
func RecordChecklistUpdate() {
	if globalManager.enabled {
		globalManager.checklistUpdates.Inc()
	}
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes HTTP latency in seconds.
func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
	}
}

// GetRegistry exposes the custom registry for the scrape handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
