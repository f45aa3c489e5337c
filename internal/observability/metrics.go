package observability

import "github.com/prometheus/client_golang/prometheus"

// UpstreamBuckets covers upstream latencies from 100ms up to the 120s call ceiling.
//
//nolint:gochecknoglobals // metric definitions
var UpstreamBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

//nolint:gochecknoglobals // metric definitions
var (
	// RequestsTotal counts inbound HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_requests_total",
			Help: "Total inbound requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records inbound request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ember_request_duration_seconds",
			Help:    "Inbound request duration",
			Buckets: UpstreamBuckets,
		},
		[]string{"method"},
	)

	// StreamingConnections tracks in-flight event streams.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ember_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// UpstreamRequestsTotal counts upstream calls by provider, adapter kind and outcome.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_upstream_requests_total",
			Help: "Upstream requests",
		},
		[]string{"provider", "kind", "outcome"},
	)

	// UpstreamLatency records how long upstream streams stay open.
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ember_upstream_latency_seconds",
			Help:    "Upstream latency",
			Buckets: UpstreamBuckets,
		},
		[]string{"provider", "kind"},
	)

	// FilterSuppressedTotal counts streams truncated by the content filter.
	FilterSuppressedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_filter_suppressed_total",
			Help: "Streams truncated by the content filter",
		},
		[]string{"provider"},
	)

	// CacheLookupsTotal counts buffered response cache lookups by result.
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ember_cache_lookups_total",
			Help: "Response cache lookups",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StreamingConnections,
		UpstreamRequestsTotal,
		UpstreamLatency,
		FilterSuppressedTotal,
		CacheLookupsTotal,
	)
}
