// Package audit consumes search events and keeps per-route tallies for the
// worker's periodic report.
package audit

import (
	"context"
	"sort"
	"sync"

	"github.com/mukundrex/flight-mcp-server/internal/kafka"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
)

type RouteStats struct {
	Route     string `json:"route"`
	Searches  int    `json:"searches"`
	Failures  int    `json:"failures"`
	Direct    int    `json:"direct"`
	Connected int    `json:"connecting"`
}

type Recorder struct {
	mu     sync.Mutex
	routes map[string]*RouteStats
}

func NewRecorder() *Recorder {
	return &Recorder{routes: make(map[string]*RouteStats)}
}

// Record logs one search event and folds it into the route tally.
func (r *Recorder) Record(ctx context.Context, event kafka.SearchEvent) error {
	route := event.Origin + "-" + event.Destination

	logging.Info("search audited",
		"event_id", event.ID,
		"type", event.Type,
		"route", route,
		"outcome", event.Outcome,
		"direct", event.DirectCount,
		"connecting", event.ConnectingCount,
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.routes[route]
	if !ok {
		stats = &RouteStats{Route: route}
		r.routes[route] = stats
	}
	stats.Searches++
	if event.Outcome != kafka.OutcomeOK {
		stats.Failures++
	}
	stats.Direct += event.DirectCount
	stats.Connected += event.ConnectingCount
	return nil
}

// Top returns up to n routes by search count, ties broken by route name.
func (r *Recorder) Top(n int) []RouteStats {
	r.mu.Lock()
	out := make([]RouteStats, 0, len(r.routes))
	for _, s := range r.routes {
		out = append(out, *s)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Searches != out[j].Searches {
			return out[i].Searches > out[j].Searches
		}
		return out[i].Route < out[j].Route
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
