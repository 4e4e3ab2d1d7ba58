package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the Prometheus collectors for the flight server.
type Registry struct {
	// Vendor API
	VendorRequestDuration *prometheus.HistogramVec

	// Reference cache
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Search
	SearchesTotal     *prometheus.CounterVec
	RangeDaysSkipped  prometheus.Counter
	ToolCallsTotal    *prometheus.CounterVec
	HTTPRequestsTotal *prometheus.CounterVec
}

// NewRegistry registers every collector on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func NewRegistry(reg prometheus.Registerer) *Registry {
	f := promauto.With(reg)
	return &Registry{
		VendorRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightmcp_vendor_request_duration_seconds",
				Help:    "Amadeus API latency by operation and outcome",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation", "status"},
		),
		CacheHitsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightmcp_reference_cache_hits_total",
				Help: "Reference cache hits by kind",
			},
			[]string{"kind"},
		),
		CacheMissesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightmcp_reference_cache_misses_total",
				Help: "Reference cache misses by kind",
			},
			[]string{"kind"},
		),
		SearchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightmcp_searches_total",
				Help: "Flight searches by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		RangeDaysSkipped: f.NewCounter(
			prometheus.CounterOpts{
				Name: "flightmcp_range_days_skipped_total",
				Help: "Days dropped from range searches because the search failed",
			},
		),
		ToolCallsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightmcp_tool_calls_total",
				Help: "MCP tool invocations by tool and status",
			},
			[]string{"tool", "status"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightmcp_http_requests_total",
				Help: "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status_code"},
		),
	}
}

// Nop returns collectors registered on a throwaway registry.
func Nop() *Registry {
	return NewRegistry(prometheus.NewRegistry())
}
