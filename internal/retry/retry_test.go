package retry_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/booking-client/internal/circuitbreaker"
	"github.com/angeloszaimis/booking-client/internal/retry"
)

var _ = Describe("Policy", func() {
	var (
		cb     *circuitbreaker.CircuitBreaker
		policy *retry.Policy
		logger *slog.Logger
	)

	BeforeEach(func() {
		cb = circuitbreaker.NewCircuitBreaker(10, time.Minute)
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		policy = retry.NewPolicy(cb, 3, time.Millisecond, 4*time.Millisecond, logger)
	})

	Describe("Execute", func() {
		It("should return nil on first-attempt success", func() {
			attempts := 0
			err := policy.Execute(context.Background(), func(context.Context) error {
				attempts++
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(attempts).To(Equal(1))
		})

		It("should perform at most maxRetries+1 attempts", func() {
			boom := errors.New("connection refused")
			attempts := 0
			err := policy.Execute(context.Background(), func(context.Context) error {
				attempts++
				return boom
			})
			Expect(attempts).To(Equal(4))
			Expect(errors.Is(err, boom)).To(BeTrue())
		})

		It("should record a success against the breaker", func() {
			cb.RecordFailure()
			cb.RecordFailure()
			Expect(policy.Execute(context.Background(), func(context.Context) error {
				return nil
			})).To(Succeed())
			Expect(cb.Failures()).To(Equal(0))
		})

		It("should record every retryable failure against the breaker", func() {
			_ = policy.Execute(context.Background(), func(context.Context) error {
				return errors.New("timeout")
			})
			Expect(cb.Failures()).To(Equal(4))
		})

		It("should stop on permanent errors without retrying", func() {
			notFound := errors.New("booking not found")
			attempts := 0
			err := policy.Execute(context.Background(), func(context.Context) error {
				attempts++
				return retry.Permanent(notFound)
			})
			Expect(attempts).To(Equal(1))
			Expect(err).To(MatchError(notFound))
			Expect(cb.Failures()).To(Equal(0))
		})

		It("should fail fast with ErrOpen and not record a new failure", func() {
			small := circuitbreaker.NewCircuitBreaker(2, time.Minute)
			small.RecordFailure()
			small.RecordFailure()
			Expect(small.State()).To(Equal(circuitbreaker.StateOpen))

			p := retry.NewPolicy(small, 3, time.Millisecond, 4*time.Millisecond, logger)
			attempts := 0
			err := p.Execute(context.Background(), func(context.Context) error {
				attempts++
				return nil
			})
			Expect(err).To(MatchError(circuitbreaker.ErrOpen))
			Expect(attempts).To(Equal(0))
			Expect(small.Failures()).To(Equal(2))
		})

		It("should abort backoff when the context is cancelled", func() {
			slow := retry.NewPolicy(cb, 3, time.Second, 8*time.Second, logger)
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				time.Sleep(20 * time.Millisecond)
				cancel()
			}()
			err := slow.Execute(ctx, func(context.Context) error {
				return errors.New("unreachable")
			})
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})

	Describe("Delay", func() {
		It("should grow exponentially with jitter in [0.1, 0.3] of the delay", func() {
			p := retry.NewPolicy(cb, 5, 100*time.Millisecond, 10*time.Second, logger)
			for attempt := 0; attempt < 5; attempt++ {
				base := 100 * time.Millisecond << attempt
				for i := 0; i < 50; i++ {
					d := p.Delay(attempt)
					Expect(d).To(BeNumerically(">=", time.Duration(float64(base)*1.1)))
					Expect(d).To(BeNumerically("<=", time.Duration(float64(base)*1.3)))
				}
			}
		})

		It("should cap the base delay at maxDelay", func() {
			p := retry.NewPolicy(cb, 10, 100*time.Millisecond, time.Second, logger)
			for i := 0; i < 50; i++ {
				d := p.Delay(9)
				Expect(d).To(BeNumerically(">=", time.Duration(float64(time.Second)*1.1)))
				Expect(d).To(BeNumerically("<=", time.Duration(float64(time.Second)*1.3)))
			}
		})

		It("should produce non-decreasing base delays across attempts", func() {
			p := retry.NewPolicy(cb, 10, 50*time.Millisecond, 2*time.Second, logger)
			prev := time.Duration(0)
			for attempt := 0; attempt < 10; attempt++ {
				// Strip jitter bounds by comparing minimum possible values.
				minimum := time.Duration(float64(p.Delay(attempt)) / 1.3)
				Expect(minimum).To(BeNumerically(">=", time.Duration(float64(prev)*0.99)))
				prev = minimum
			}
		})
	})

	Describe("Permanent", func() {
		It("should be detectable through wrapping", func() {
			err := retry.Permanent(errors.New("bad request"))
			Expect(retry.IsPermanent(err)).To(BeTrue())
			Expect(retry.IsPermanent(errors.New("bad request"))).To(BeFalse())
		})

		It("should return nil for nil", func() {
			Expect(retry.Permanent(nil)).To(BeNil())
		})
	})
})
