package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment service.
type Metrics struct {
	Assessments    *prometheus.CounterVec // labels: risk_level
	EmergencyFlags prometheus.Counter
	InvalidInputs  prometheus.Counter

	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	// Elevation resolution metrics.
	ResolveRequests    *prometheus.CounterVec   // labels: outcome={success,not_found,error}
	ResolveCache       *prometheus.CounterVec   // labels: result={hit,miss}
	ResolveAPIDuration *prometheus.HistogramVec // labels: call={geocode,elevation}
	GeoEnabled         prometheus.Gauge

	// Audit publishing metrics.
	AuditPublishes *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "altitude_risk",
			Name:      "assessments_total",
			Help:      "Completed assessments by overall risk level.",
		}, []string{"risk_level"}),
		EmergencyFlags: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "altitude_risk",
			Name:      "emergency_flags_total",
			Help:      "Assessments whose symptom set flagged an emergency.",
		}),
		InvalidInputs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "altitude_risk",
			Name:      "invalid_inputs_total",
			Help:      "Requests rejected for invalid input.",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "altitude_risk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"route"}),
		ResolveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "altitude_risk",
			Name:      "resolve_requests_total",
			Help:      "Place resolution attempts by outcome.",
		}, []string{"outcome"}),
		ResolveCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "altitude_risk",
			Name:      "resolve_cache_total",
			Help:      "Resolver cache lookups by result.",
		}, []string{"result"}),
		ResolveAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "altitude_risk",
			Name:      "resolve_api_duration_seconds",
			Help:      "Upstream geo API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"call"}),
		GeoEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "altitude_risk",
			Name:      "geo_enabled",
			Help:      "1 when place resolution is enabled, 0 otherwise.",
		}),
		AuditPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "altitude_risk",
			Name:      "audit_publishes_total",
			Help:      "Assessment audit messages by publish outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.Assessments,
		m.EmergencyFlags,
		m.InvalidInputs,
		m.HTTPRequestDuration,
		m.ResolveRequests,
		m.ResolveCache,
		m.ResolveAPIDuration,
		m.GeoEnabled,
		m.AuditPublishes,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Assessments:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "altitude_risk", Name: "assessments_total"}, []string{"risk_level"}),
		EmergencyFlags:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "altitude_risk", Name: "emergency_flags_total"}),
		InvalidInputs:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "altitude_risk", Name: "invalid_inputs_total"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "altitude_risk", Name: "http_request_duration_seconds"}, []string{"route"}),
		ResolveRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "altitude_risk", Name: "resolve_requests_total"}, []string{"outcome"}),
		ResolveCache:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "altitude_risk", Name: "resolve_cache_total"}, []string{"result"}),
		ResolveAPIDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "altitude_risk", Name: "resolve_api_duration_seconds"}, []string{"call"}),
		GeoEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "altitude_risk", Name: "geo_enabled"}),
		AuditPublishes:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "altitude_risk", Name: "audit_publishes_total"}, []string{"outcome"}),
	}
}
