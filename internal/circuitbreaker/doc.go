// Package circuitbreaker implements the circuit breaker pattern for the
// booking API client.
//
// A circuit breaker prevents hammering a failing backend by rejecting
// calls once a failure threshold is reached. It has three states:
//
//   - CLOSED: Normal operation, calls pass through
//   - OPEN: Backend failing, calls rejected immediately
//   - HALF-OPEN: Testing recovery with a single trial call
//
// Usage:
//
//	cb := circuitbreaker.NewCircuitBreaker(5, 60*time.Second)
//	if err := cb.Attempt(); err == nil {
//	    // Make request...
//	    if err != nil {
//	        cb.RecordFailure()
//	    } else {
//	        cb.RecordSuccess()
//	    }
//	}
package circuitbreaker
