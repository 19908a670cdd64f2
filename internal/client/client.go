package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/angeloszaimis/booking-client/internal/cache"
	"github.com/angeloszaimis/booking-client/internal/circuitbreaker"
	"github.com/angeloszaimis/booking-client/internal/endpoint"
	"github.com/angeloszaimis/booking-client/internal/fallback"
	"github.com/angeloszaimis/booking-client/internal/metrics"
	"github.com/angeloszaimis/booking-client/internal/retry"
)

const (
	DefaultTimeout          = 10 * time.Second
	DefaultFailureThreshold = 5
	DefaultRecoveryTimeout  = 60 * time.Second
	DefaultCacheTTL         = 30 * time.Second
	DefaultCacheSize        = 256
	DefaultMaxRetries       = 3
	DefaultBaseDelay        = 500 * time.Millisecond
	DefaultMaxDelay         = 8 * time.Second
)

// Options configures a Client. Zero values fall back to the package
// defaults above.
type Options struct {
	BaseURL          string
	Timeout          time.Duration
	FailureThreshold int
	RecoveryTimeout  time.Duration
	CacheTTL         time.Duration
	CacheSize        int
	MaxRetries       int
	BaseDelay        time.Duration
	MaxDelay         time.Duration
	Logger           *slog.Logger
	Collector        *metrics.Collector

	// AllowStaleFallback lets the fallback chain serve cache entries
	// past their TTL instead of dropping to static defaults.
	AllowStaleFallback bool
}

// Client orchestrates logical calls against the booking API: it
// derives cache keys, separates mutating from read semantics, drives
// the retry policy through the shared circuit breaker, and consults
// the fallback chain when a read cannot be served live. One Client is
// meant to be constructed at startup and shared by all call sites.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	registry   *endpoint.Registry
	breaker    *circuitbreaker.CircuitBreaker
	cache      *cache.Cache
	reads      *retry.Policy
	mutations  *retry.Policy
	resolver   *fallback.Resolver
	collector  *metrics.Collector
	logger     *slog.Logger
	timeout    time.Duration
}

func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	baseURL, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", opts.BaseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = DefaultFailureThreshold
	}
	if opts.RecoveryTimeout <= 0 {
		opts.RecoveryTimeout = DefaultRecoveryTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = DefaultMaxDelay
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	responseCache, err := cache.New(opts.CacheSize, opts.CacheTTL)
	if err != nil {
		return nil, err
	}

	breaker := circuitbreaker.NewCircuitBreaker(opts.FailureThreshold, opts.RecoveryTimeout)

	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		registry:   endpoint.BookingRegistry(),
		breaker:    breaker,
		cache:      responseCache,
		reads:      retry.NewPolicy(breaker, opts.MaxRetries, opts.BaseDelay, opts.MaxDelay, opts.Logger),
		mutations:  retry.NewPolicy(breaker, 0, opts.BaseDelay, opts.MaxDelay, opts.Logger),
		resolver:   fallback.NewResolver(responseCache, opts.AllowStaleFallback, opts.Logger),
		collector:  opts.Collector,
		logger:     opts.Logger,
		timeout:    opts.Timeout,
	}, nil
}

// Do executes one logical request. Reads degrade gracefully through
// the fallback chain; mutations never do, every write failure is
// surfaced so no write is silently assumed to have succeeded.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	ep, ok := c.registry.Lookup(req.Endpoint)
	if !ok {
		return Response{}, fmt.Errorf("unknown endpoint %q", req.Endpoint)
	}

	key := cacheKey(ep.Name, req.Path, req.Query)
	start := time.Now()

	var payload any
	var statusCode int
	call := func(ctx context.Context) error {
		value, status, err := c.roundTrip(ctx, ep.Method, req)
		statusCode = status
		if err != nil {
			return err
		}
		payload = value
		return nil
	}

	policy := c.reads
	if ep.Mutating && !req.RetryMutation {
		policy = c.mutations
	}

	err := policy.Execute(ctx, call)
	if err == nil {
		if !ep.Mutating {
			c.cache.Set(key, payload)
		}
		c.emit(metrics.Event{
			Type:       metrics.EventRequestCompleted,
			Timestamp:  time.Now(),
			Endpoint:   ep.Name,
			Duration:   time.Since(start),
			StatusCode: statusCode,
		})
		return Response{Data: payload, Source: SourceLive}, nil
	}

	if ep.Mutating {
		c.logger.Error("mutation failed",
			slog.String("endpoint", ep.Name),
			slog.String("error", err.Error()))
		return Response{}, err
	}

	// Client errors and undecodable payloads are the caller's problem,
	// not an availability problem. Same for a cancelled caller.
	if IsClientError(err) || errors.Is(err, ErrDecode) || errors.Is(err, context.Canceled) {
		return Response{}, err
	}

	value, source := c.resolver.Resolve(ep, key)
	c.emit(metrics.Event{
		Type:      metrics.EventRequestDegraded,
		Timestamp: time.Now(),
		Endpoint:  ep.Name,
		Duration:  time.Since(start),
	})

	return Response{Data: value, Degraded: true, Source: Source(source)}, nil
}

// BreakerState exposes the shared breaker's state for monitoring.
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

// ClearCache drops every cached response, stale entries included.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) roundTrip(ctx context.Context, method string, req Request) (any, int, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.baseURL.ResolveReference(&url.URL{Path: req.Path})
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, 0, retry.Permanent(fmt.Errorf("encoding request body: %w", err))
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, 0, retry.Permanent(err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Connection failures and per-call timeouts are retryable.
		return nil, 0, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, err
	}

	if res.StatusCode >= http.StatusInternalServerError {
		return nil, res.StatusCode, &APIError{StatusCode: res.StatusCode, Detail: errorDetail(res.StatusCode, data)}
	}
	if res.StatusCode >= http.StatusBadRequest {
		return nil, res.StatusCode, retry.Permanent(&APIError{StatusCode: res.StatusCode, Detail: errorDetail(res.StatusCode, data)})
	}

	if len(data) == 0 {
		return nil, res.StatusCode, nil
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, res.StatusCode, retry.Permanent(fmt.Errorf("%w: %v", ErrDecode, err))
	}

	return payload, res.StatusCode, nil
}

func (c *Client) emit(event metrics.Event) {
	if c.collector == nil {
		return
	}

	select {
	case c.collector.EventChannel() <- event:
	default:
	}
}
