// Package client implements the resilient booking API client used by
// the dashboard. It composes the circuit breaker, the retry policy,
// the TTL response cache, and the fallback chain into one executor:
// reads degrade gracefully to cached or default data when the backend
// is down, mutations always surface their real outcome.
package client
