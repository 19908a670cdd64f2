// Package metrics provides real-time metrics collection for the
// booking API client.
//
// It uses a channel-based event pipeline to asynchronously collect:
//   - Request counts per endpoint
//   - Degraded (fallback-served) response counts
//   - Response times with percentile calculations (P50, P95, P99)
//   - HTTP status code distribution
//   - Per-endpoint health status from the health probe
//
// The collector runs in a dedicated goroutine and processes events
// without blocking the request path. Events are sent via buffered
// channels with non-blocking semantics.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.EventChannel() <- metrics.Event{
//		Type:       metrics.EventRequestCompleted,
//		Endpoint:   "venues.list",
//		Duration:   150 * time.Millisecond,
//		StatusCode: 200,
//	}
//
//	snapshot := collector.Snapshot("CLOSED")
package metrics
