package client

import (
	"net/url"
	"time"
)

// Request describes one logical call against a registered endpoint.
// Path is the concrete request path with identifiers filled in.
type Request struct {
	Endpoint string
	Path     string
	Query    url.Values
	Body     any
	Timeout  time.Duration

	// RetryMutation opts a mutating call in to automatic retries.
	// Mutations are not assumed idempotent, so this is off by default.
	RetryMutation bool
}

// Source reports where a response's data came from.
type Source string

const (
	SourceLive          Source = "live"
	SourceCache         Source = "cache"
	SourceStaticDefault Source = "static_default"
	SourceEmptyShape    Source = "empty_shape"
)

// Response is the outcome of one logical call. Degraded responses were
// served by the fallback chain instead of a live call; their data may
// be stale or a default, and the dashboard flags them as such.
type Response struct {
	Data     any
	Degraded bool
	Source   Source
}

// cacheKey derives the cache key for a request. url.Values.Encode
// sorts by key, so equivalent requests share an entry.
func cacheKey(endpointName, path string, query url.Values) string {
	key := endpointName + "|" + path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	return key
}
