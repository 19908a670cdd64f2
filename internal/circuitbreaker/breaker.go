package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Attempt when the breaker refuses a call.
// It reflects failures that were already recorded, so callers must
// not feed it back in through RecordFailure.
var ErrOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Rejecting calls
	StateHalfOpen              // Testing with one trial call
)

// CircuitBreaker gates live calls for the whole client. It is shared
// by every request going through one client and cycles between states
// for the life of the client.
type CircuitBreaker struct {
	mutex            sync.Mutex
	state            State
	failures         int
	lastFailure      time.Time
	trialInFlight    bool
	failureThreshold int
	recoveryTimeout  time.Duration
}

func NewCircuitBreaker(threshold int, recoveryTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: threshold,
		recoveryTimeout:  recoveryTimeout,
	}
}

// Attempt reports whether a live call may proceed. In the open state
// it fails fast with ErrOpen until the recovery timeout has elapsed,
// then admits exactly one trial call in the half-open state.
func (cb *CircuitBreaker) Attempt() error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	switch cb.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(cb.lastFailure) > cb.recoveryTimeout {
			cb.state = StateHalfOpen
			cb.trialInFlight = true
			return nil
		}

		return ErrOpen
	case StateHalfOpen:
		if cb.trialInFlight {
			return ErrOpen
		}
		cb.trialInFlight = true
		return nil
	default:
		return nil
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failures = 0
	cb.trialInFlight = false
	cb.state = StateClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failures++
	cb.lastFailure = time.Now()

	if cb.state == StateHalfOpen {
		cb.trialInFlight = false
		cb.state = StateOpen
		return
	}

	if cb.failures >= cb.failureThreshold {
		cb.state = StateOpen
	}
}

func (cb *CircuitBreaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// Failures returns the current consecutive failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.failures
}

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF-OPEN"
	default:
		return "UNKNOWN"
	}
}
