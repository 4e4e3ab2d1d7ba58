package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundrex/flight-mcp-server/internal/kafka"
)

func event(origin, destination, outcome string, direct int) kafka.SearchEvent {
	e := kafka.NewSearchEvent(kafka.EventSearch, origin, destination, 1)
	e.Outcome = outcome
	e.DirectCount = direct
	return e
}

func TestRecorder_Top(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()

	require.NoError(t, r.Record(ctx, event("JFK", "LAX", kafka.OutcomeOK, 3)))
	require.NoError(t, r.Record(ctx, event("JFK", "LAX", kafka.OutcomeUpstream, 0)))
	require.NoError(t, r.Record(ctx, event("DEL", "BOM", kafka.OutcomeOK, 5)))
	require.NoError(t, r.Record(ctx, event("CDG", "LHR", kafka.OutcomeOK, 1)))

	top := r.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, RouteStats{Route: "JFK-LAX", Searches: 2, Failures: 1, Direct: 3}, top[0])
	assert.Equal(t, "CDG-LHR", top[1].Route, "ties sort by route")

	assert.Len(t, r.Top(-1), 3)
	assert.Empty(t, NewRecorder().Top(5))
}
