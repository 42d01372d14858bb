// Package metrics exposes Prometheus collectors for analyses and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const namespace = "resume_analyzer"

// Analysis outcomes
const (
	OutcomeOK          = "ok"
	OutcomeUnknownRole = "unknown_role"
	OutcomeExtraction  = "extraction_failed"
)

// unknownLabel replaces caller-supplied values that are not catalog roles or
// supported formats, keeping label cardinality bounded.
const unknownLabel = "unknown"

// Metrics holds every collector on its own registry so tests and multiple
// servers never collide on the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	analyses          *prometheus.CounterVec
	atsScore          prometheus.Histogram
	degraded          *prometheus.CounterVec
	extractionFailure *prometheus.CounterVec
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// New creates and registers all collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total résumé analyses by selected role and outcome",
		}, []string{"role", "outcome"}),
		atsScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ats_score",
			Help:      "Distribution of overall ATS scores",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_subscores_total",
			Help:      "ATS sub-scores that fell back to the neutral value",
		}, []string{"metric"}),
		extractionFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "Documents whose text could not be extracted, by format",
		}, []string{"format"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.analyses,
		m.atsScore,
		m.degraded,
		m.extractionFailure,
		m.requests,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAnalysis records a completed analysis
func (m *Metrics) ObserveAnalysis(result *types.AnalysisResult) {
	if m == nil || result == nil {
		return
	}
	m.analyses.WithLabelValues(result.Role, OutcomeOK).Inc()
	m.atsScore.Observe(result.ATSScore)
	for _, metric := range result.ATS.Degraded {
		m.degraded.WithLabelValues(metric).Inc()
	}
}

// AnalysisFailed records an analysis that did not produce a result. Roles
// rejected as unknown are all counted under a single "unknown" label.
func (m *Metrics) AnalysisFailed(role, outcome string) {
	if m == nil {
		return
	}
	if outcome == OutcomeUnknownRole || role == "" {
		role = unknownLabel
	}
	m.analyses.WithLabelValues(role, outcome).Inc()
}

// ExtractionFailed records a document that could not be converted to text.
// Callers pass only supported formats or an empty string.
func (m *Metrics) ExtractionFailed(format string) {
	if m == nil {
		return
	}
	if format == "" {
		format = unknownLabel
	}
	m.extractionFailure.WithLabelValues(format).Inc()
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry for tests and custom gatherers
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
