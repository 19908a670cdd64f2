package fallback

import (
	"log/slog"

	"github.com/angeloszaimis/booking-client/internal/cache"
	"github.com/angeloszaimis/booking-client/internal/endpoint"
)

// Source identifies which rung of the fallback chain produced a value.
type Source string

const (
	SourceCache         Source = "cache"
	SourceStaticDefault Source = "static_default"
	SourceEmptyShape    Source = "empty_shape"
)

// Resolver produces a best-effort, shape-correct response when a live
// call cannot succeed. Resolution order: cached value, the endpoint's
// static default, then a generic empty value for the endpoint's shape.
// A collection endpoint always yields a list, never nil.
//
// With allowStale set, the cache lookup ignores TTL and serves any
// entry still present, trading freshness for availability.
type Resolver struct {
	cache      *cache.Cache
	allowStale bool
	logger     *slog.Logger
}

func NewResolver(c *cache.Cache, allowStale bool, logger *slog.Logger) *Resolver {
	return &Resolver{cache: c, allowStale: allowStale, logger: logger}
}

// Resolve returns the degraded value for ep under the same key the
// success path uses to store responses.
func (r *Resolver) Resolve(ep endpoint.Endpoint, key string) (any, Source) {
	if value, ok := r.lookup(key); ok {
		r.logger.Warn("serving cached data",
			slog.String("endpoint", ep.Name),
			slog.String("key", key))
		return value, SourceCache
	}

	if ep.Default != nil {
		r.logger.Warn("serving static default",
			slog.String("endpoint", ep.Name))
		return ep.Default(), SourceStaticDefault
	}

	r.logger.Warn("serving empty value",
		slog.String("endpoint", ep.Name),
		slog.String("shape", ep.Shape.String()))

	return endpoint.EmptyValue(ep.Shape), SourceEmptyShape
}

func (r *Resolver) lookup(key string) (any, bool) {
	if r.allowStale {
		return r.cache.GetStale(key)
	}

	return r.cache.Get(key)
}
