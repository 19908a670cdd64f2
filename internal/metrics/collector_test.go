package metrics_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/booking-client/internal/metrics"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		collector = metrics.NewCollector(64, logger)
		ctx, cancel = context.WithCancel(context.Background())
		collector.Start(ctx)
	})

	AfterEach(func() {
		cancel()
	})

	It("should process completed-request events", func() {
		collector.EventChannel() <- metrics.Event{
			Type:       metrics.EventRequestCompleted,
			Timestamp:  time.Now(),
			Endpoint:   "venues.list",
			Duration:   5 * time.Millisecond,
			StatusCode: 200,
		}

		Eventually(func() int64 {
			return collector.Snapshot("CLOSED").TotalRequests
		}).Should(Equal(int64(1)))
	})

	It("should process degraded and health events", func() {
		collector.EventChannel() <- metrics.Event{
			Type:     metrics.EventRequestDegraded,
			Endpoint: "stats.system",
		}
		collector.EventChannel() <- metrics.Event{
			Type:     metrics.EventHealthChanged,
			Endpoint: "stats.system",
			Healthy:  true,
		}

		Eventually(func() metrics.Snapshot {
			return collector.Snapshot("OPEN")
		}).Should(WithTransform(func(s metrics.Snapshot) bool {
			em, ok := s.Endpoints["stats.system"]
			return ok && em.Degraded == 1 && em.Healthy
		}, BeTrue()))
	})

	Describe("Handler", func() {
		It("should serve a JSON snapshot with the live breaker state", func() {
			handler := collector.Handler(func() string { return "CLOSED" })
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest("GET", "/metrics", nil))

			Expect(rec.Code).To(Equal(200))
			Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(rec.Body.String()).To(ContainSubstring(`"breaker_state":"CLOSED"`))
		})
	})
})
