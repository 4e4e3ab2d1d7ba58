package cache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mukundrex/flight-mcp-server/internal/metrics"
)

// Loader fetches one entity from the upstream source. found is false when the
// source answered but had nothing for code.
type Loader[T any] func(ctx context.Context, code string) (value T, found bool, err error)

// Reference memoizes reference data by code for the life of the process.
// Entries never expire and there is no size bound. Concurrent misses for the
// same code each call the loader; the last write wins.
type Reference[T any] struct {
	kind    string
	store   *gocache.Cache
	metrics *metrics.Registry
}

func NewReference[T any](kind string, m *metrics.Registry) *Reference[T] {
	if m == nil {
		m = metrics.Nop()
	}
	return &Reference[T]{
		kind:    kind,
		store:   gocache.New(gocache.NoExpiration, 0),
		metrics: m,
	}
}

func (r *Reference[T]) Get(code string) (T, bool) {
	var zero T
	v, ok := r.store.Get(key(code))
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

func (r *Reference[T]) Set(code string, value T) {
	r.store.Set(key(code), value, gocache.NoExpiration)
}

func (r *Reference[T]) Len() int {
	return r.store.ItemCount()
}

// Resolve returns the cached entity or loads it. Only successful loads are
// stored, so a failed or empty lookup is retried on the next call.
func (r *Reference[T]) Resolve(ctx context.Context, code string, load Loader[T]) (T, bool, error) {
	if v, ok := r.Get(code); ok {
		r.metrics.CacheHitsTotal.WithLabelValues(r.kind).Inc()
		return v, true, nil
	}
	r.metrics.CacheMissesTotal.WithLabelValues(r.kind).Inc()

	v, found, err := load(ctx, code)
	if err != nil || !found {
		var zero T
		return zero, false, err
	}

	r.Set(code, v)
	return v, true, nil
}

func key(code string) string {
	return "ref:" + code
}
