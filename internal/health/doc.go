// Package health probes the booking API for liveness and per-endpoint
// status with short timeouts, independently of the client's breaker,
// cache, and retry machinery.
package health
