package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the lookup gateway.
type Metrics struct {
	// Gateway-level lookups.
	LookupRequests *prometheus.CounterVec // labels: outcome={success,invalid,misconfigured,not_found,unauthorized,upstream_error}
	LookupDuration prometheus.Histogram

	// Upstream provider calls.
	UpstreamRequests *prometheus.CounterVec // labels: status={200,401,404,...,error}
	UpstreamDuration prometheus.Histogram
	UpstreamEnabled  prometheus.Gauge

	// Lookup event stream.
	EventsPublished *prometheus.CounterVec // labels: result={ok,error}
}

// NewMetrics creates and registers all gateway metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.LookupRequests,
		m.LookupDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.UpstreamEnabled,
		m.EventsPublished,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		LookupRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_gateway",
			Name:      "lookup_requests_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_gateway",
			Name:      "lookup_duration_seconds",
			Help:      "End-to-end duration of a weather lookup.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_gateway",
			Name:      "upstream_requests_total",
			Help:      "OpenWeatherMap requests by response status.",
		}, []string{"status"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_gateway",
			Name:      "upstream_duration_seconds",
			Help:      "OpenWeatherMap request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		UpstreamEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_gateway",
			Name:      "upstream_enabled",
			Help:      "1 when an upstream API key is configured, 0 otherwise.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_gateway",
			Name:      "lookup_events_total",
			Help:      "Lookup events handed to the event stream by result.",
		}, []string{"result"}),
	}
}
