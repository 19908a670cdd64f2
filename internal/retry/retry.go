package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/angeloszaimis/booking-client/internal/circuitbreaker"
)

const maxShift = 62

// Policy executes calls through the circuit breaker with bounded
// retries and exponential backoff plus jitter.
type Policy struct {
	breaker    *circuitbreaker.CircuitBreaker
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
	logger     *slog.Logger
}

func NewPolicy(
	breaker *circuitbreaker.CircuitBreaker,
	maxRetries int,
	baseDelay time.Duration,
	maxDelay time.Duration,
	logger *slog.Logger,
) *Policy {
	return &Policy{
		breaker:    breaker,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		maxDelay:   maxDelay,
		logger:     logger,
	}
}

// Execute runs call up to maxRetries+1 times, each attempt gated by
// the circuit breaker. A circuit-open rejection is propagated as-is
// and is not recorded as a new failure against the breaker. Permanent
// errors stop the loop immediately. On exhaustion the last call error
// is returned wrapped, so errors.Is still reaches it.
func (p *Policy) Execute(ctx context.Context, call func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if err := p.breaker.Attempt(); err != nil {
			return err
		}

		err := call(ctx)
		if err == nil {
			p.breaker.RecordSuccess()
			return nil
		}

		var pe *permanentError
		if errors.As(err, &pe) {
			// The service answered; it is the request that is bad.
			p.breaker.RecordSuccess()
			return pe.err
		}

		p.breaker.RecordFailure()
		lastErr = err

		if attempt == p.maxRetries {
			break
		}

		delay := p.Delay(attempt)
		p.logger.Warn("call failed, backing off",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("retries exhausted after %d attempts: %w", p.maxRetries+1, lastErr)
}

// Delay returns the pause before the attempt+1-th retry:
// min(baseDelay * 2^attempt, maxDelay) plus jitter drawn uniformly
// from [0.1, 0.3] of that value.
func (p *Policy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	} else if attempt > maxShift {
		attempt = maxShift
	}

	delay := p.baseDelay << attempt
	if delay > p.maxDelay || delay <= 0 {
		delay = p.maxDelay
	}

	jitter := time.Duration(float64(delay) * (0.1 + 0.2*rand.Float64()))

	return delay + jitter
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as non-retryable: client errors, undecodable
// payloads, anything where retrying cannot help.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}
