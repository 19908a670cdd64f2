// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the application configuration structure
// including the backend base URL, circuit breaker thresholds, cache TTL, retry
// policy, and monitor settings.
package config
