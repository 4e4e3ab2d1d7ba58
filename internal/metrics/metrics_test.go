package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistry(reg)

	m.SearchesTotal.WithLabelValues("single", "ok").Inc()
	m.SearchesTotal.WithLabelValues("single", "ok").Inc()
	m.RangeDaysSkipped.Inc()
	m.VendorRequestDuration.WithLabelValues("offers", "200").Observe(0.3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchesTotal.WithLabelValues("single", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RangeDaysSkipped))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "flightmcp_searches_total")
	assert.Contains(t, names, "flightmcp_vendor_request_duration_seconds")
}

func TestNop_Isolated(t *testing.T) {
	// two Nop registries must not collide on registration
	a, b := Nop(), Nop()
	a.ToolCallsTotal.WithLabelValues("search_flights", "ok").Inc()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.ToolCallsTotal.WithLabelValues("search_flights", "ok")))
}
