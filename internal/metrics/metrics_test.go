package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/booking-client/internal/metrics"
)

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	Describe("RecordResponse", func() {
		It("should count requests and status codes per endpoint", func() {
			m.RecordResponse("venues.list", 10*time.Millisecond, 200)
			m.RecordResponse("venues.list", 20*time.Millisecond, 200)
			m.RecordResponse("venues.list", 30*time.Millisecond, 500)

			snap := m.Snapshot("CLOSED")
			Expect(snap.TotalRequests).To(Equal(int64(3)))
			em := snap.Endpoints["venues.list"]
			Expect(em.Requests).To(Equal(int64(3)))
			Expect(em.StatusCodes[200]).To(Equal(int64(2)))
			Expect(em.StatusCodes[500]).To(Equal(int64(1)))
			Expect(em.AvgResponse).To(Equal(20 * time.Millisecond))
		})
	})

	Describe("RecordDegraded", func() {
		It("should count degraded serves as requests too", func() {
			m.RecordDegraded("events.list")
			m.RecordDegraded("events.list")

			snap := m.Snapshot("OPEN")
			Expect(snap.TotalRequests).To(Equal(int64(2)))
			Expect(snap.TotalDegraded).To(Equal(int64(2)))
			Expect(snap.Endpoints["events.list"].Degraded).To(Equal(int64(2)))
		})
	})

	Describe("Snapshot", func() {
		It("should carry the breaker state it was asked for", func() {
			Expect(m.Snapshot("HALF-OPEN").BreakerState).To(Equal("HALF-OPEN"))
		})

		It("should include endpoints known only from health updates", func() {
			m.UpdateHealthStatus("stats.system", false)
			snap := m.Snapshot("CLOSED")
			Expect(snap.Endpoints).To(HaveKey("stats.system"))
			Expect(snap.Endpoints["stats.system"].Healthy).To(BeFalse())
		})

		It("should compute percentiles over recorded durations", func() {
			for i := 1; i <= 100; i++ {
				m.RecordResponse("bookings.list", time.Duration(i)*time.Millisecond, 200)
			}
			em := m.Snapshot("CLOSED").Endpoints["bookings.list"]
			Expect(em.P50Response).To(BeNumerically("~", 50*time.Millisecond, float64(2*time.Millisecond)))
			Expect(em.P95Response).To(BeNumerically("~", 95*time.Millisecond, float64(2*time.Millisecond)))
			Expect(em.P99Response).To(BeNumerically("~", 99*time.Millisecond, float64(2*time.Millisecond)))
		})

		It("should not change after it is taken", func() {
			m.RecordResponse("venues.list", 10*time.Millisecond, 200)
			snap := m.Snapshot("CLOSED")

			m.RecordResponse("venues.list", 10*time.Millisecond, 200)
			m.RecordResponse("venues.list", 10*time.Millisecond, 503)

			em := snap.Endpoints["venues.list"]
			Expect(em.StatusCodes[200]).To(Equal(int64(1)))
			Expect(em.StatusCodes).NotTo(HaveKey(503))
		})

		It("should stay consistent while responses keep arriving", func() {
			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < 500; i++ {
					m.RecordResponse("events.list", time.Millisecond, 200)
				}
			}()

			for i := 0; i < 100; i++ {
				snap := m.Snapshot("CLOSED")
				em := snap.Endpoints["events.list"]
				Expect(em.StatusCodes[200]).To(Equal(em.Requests))
			}
			<-done
		})
	})

	Describe("response time window", func() {
		It("should keep only the most recent durations", func() {
			m.RecordResponse("venues.list", time.Second, 200)
			for i := 0; i < 1000; i++ {
				m.RecordResponse("venues.list", 5*time.Millisecond, 200)
			}

			em := m.Snapshot("CLOSED").Endpoints["venues.list"]
			Expect(em.AvgResponse).To(Equal(5 * time.Millisecond))
			Expect(em.P99Response).To(Equal(5 * time.Millisecond))
		})
	})
})
