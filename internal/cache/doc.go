// Package cache provides the TTL-bounded response cache used to serve
// last-known-good data when the booking API cannot be reached.
package cache
