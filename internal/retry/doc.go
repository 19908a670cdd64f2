// Package retry drives calls through the circuit breaker with bounded
// retries, exponential backoff, and uniform jitter to avoid
// synchronized retry storms.
package retry
