package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundrex/flight-mcp-server/internal/domain"
	"github.com/mukundrex/flight-mcp-server/internal/metrics"
)

type countingLoader struct {
	calls int
	value domain.Airport
	found bool
	err   error
}

func (l *countingLoader) load(_ context.Context, _ string) (domain.Airport, bool, error) {
	l.calls++
	return l.value, l.found, l.err
}

func TestReference_Resolve_MissThenHit(t *testing.T) {
	m := metrics.NewRegistry(prometheus.NewRegistry())
	ref := NewReference[domain.Airport]("airport", m)
	loader := &countingLoader{value: domain.Airport{Code: "JFK", Name: "JOHN F KENNEDY INTL"}, found: true}
	ctx := context.Background()

	first, ok, err := ref.Resolve(ctx, "JFK", loader.load)
	require.NoError(t, err)
	require.True(t, ok)

	second, ok, err := ref.Resolve(ctx, "JFK", loader.load)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, 1, ref.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal.WithLabelValues("airport")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("airport")))
}

func TestReference_Resolve_StoresUnderInputCode(t *testing.T) {
	ref := NewReference[domain.Airport]("airport", nil)
	loader := &countingLoader{value: domain.Airport{Code: "JFK"}, found: true}

	_, ok, err := ref.Resolve(context.Background(), "jfk", loader.load)
	require.NoError(t, err)
	require.True(t, ok)

	_, cachedLower := ref.Get("jfk")
	_, cachedUpper := ref.Get("JFK")
	assert.True(t, cachedLower)
	assert.False(t, cachedUpper)
}

func TestReference_Resolve_EmptyResultNotCached(t *testing.T) {
	ref := NewReference[domain.Airport]("airport", nil)
	loader := &countingLoader{found: false}

	for i := 0; i < 2; i++ {
		_, ok, err := ref.Resolve(context.Background(), "ZZZ", loader.load)
		assert.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Equal(t, 2, loader.calls)
	assert.Equal(t, 0, ref.Len())
}

func TestReference_Resolve_ErrorNotCached(t *testing.T) {
	ref := NewReference[domain.Airport]("airport", nil)
	loader := &countingLoader{err: errors.New("boom")}

	_, ok, err := ref.Resolve(context.Background(), "LAX", loader.load)
	assert.Error(t, err)
	assert.False(t, ok)

	loader.err = nil
	loader.found = true
	loader.value = domain.Airport{Code: "LAX"}

	got, ok, err := ref.Resolve(context.Background(), "LAX", loader.load)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "LAX", got.Code)
	assert.Equal(t, 2, loader.calls)
}

func TestReference_SetOverwrites(t *testing.T) {
	ref := NewReference[domain.Airline]("airline", nil)

	ref.Set("AA", domain.Airline{Code: "AA", Name: "old"})
	ref.Set("AA", domain.Airline{Code: "AA", Name: "new"})

	got, ok := ref.Get("AA")
	assert.True(t, ok)
	assert.Equal(t, "new", got.Name)
}
