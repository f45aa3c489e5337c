package observability_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/observability"
)

func TestMetricsRegistered(t *testing.T) {
	observability.RequestsTotal.WithLabelValues("POST", "2xx").Inc()
	observability.RequestDuration.WithLabelValues("POST").Observe(0.1)
	observability.UpstreamRequestsTotal.WithLabelValues("pollinations", "passthrough", "ok").Inc()
	observability.UpstreamLatency.WithLabelValues("pollinations", "passthrough").Observe(0.1)
	observability.FilterSuppressedTotal.WithLabelValues("pollinations").Inc()
	observability.CacheLookupsTotal.WithLabelValues("hit").Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	expected := map[string]bool{
		"ember_requests_total":               false,
		"ember_request_duration_seconds":     false,
		"ember_streaming_connections_active": false,
		"ember_upstream_requests_total":      false,
		"ember_upstream_latency_seconds":     false,
		"ember_filter_suppressed_total":      false,
		"ember_cache_lookups_total":          false,
	}

	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}

	for name, found := range expected {
		require.True(t, found, "metric %s not registered", name)
	}
}

func TestStreamingConnectionsGauge(t *testing.T) {
	gauge := func() float64 {
		var m dto.Metric
		require.NoError(t, observability.StreamingConnections.Write(&m))
		return m.GetGauge().GetValue()
	}
	before := gauge()

	observability.StreamingConnections.Inc()
	require.InDelta(t, before+1, gauge(), 0.0001)

	observability.StreamingConnections.Dec()
	require.InDelta(t, before, gauge(), 0.0001)
}
