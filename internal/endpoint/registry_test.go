package endpoint_test

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/booking-client/internal/endpoint"
)

var _ = Describe("Registry", func() {
	Describe("NewRegistry", func() {
		It("should reject unnamed endpoints", func() {
			_, err := endpoint.NewRegistry(endpoint.Endpoint{Path: "/x"})
			Expect(err).To(HaveOccurred())
		})

		It("should reject duplicate names", func() {
			_, err := endpoint.NewRegistry(
				endpoint.Endpoint{Name: "a", Path: "/a"},
				endpoint.Endpoint{Name: "a", Path: "/b"},
			)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("BookingRegistry", func() {
		reg := endpoint.BookingRegistry()

		It("should know every dashboard operation", func() {
			Expect(reg.Names()).To(HaveLen(24))
		})

		It("should classify list endpoints as collections", func() {
			ep, ok := reg.Lookup(endpoint.VenuesList)
			Expect(ok).To(BeTrue())
			Expect(ep.Shape).To(Equal(endpoint.ShapeCollection))
			Expect(ep.Mutating).To(BeFalse())
			Expect(ep.Method).To(Equal(http.MethodGet))
		})

		It("should flag create, status-change, and cancel operations as mutating", func() {
			for _, name := range []string{
				endpoint.VenuesCreate,
				endpoint.EventsCreate,
				endpoint.TicketTypesCreate,
				endpoint.BookingsCreate,
				endpoint.BookingsUpdateStatus,
				endpoint.BookingsCancel,
			} {
				ep, ok := reg.Lookup(name)
				Expect(ok).To(BeTrue(), name)
				Expect(ep.Mutating).To(BeTrue(), name)
			}
		})

		It("should provide zero-valued defaults for aggregate endpoints", func() {
			ep, ok := reg.Lookup(endpoint.StatsSystem)
			Expect(ok).To(BeTrue())
			Expect(ep.Default).NotTo(BeNil())
			stats, isMap := ep.Default().(map[string]any)
			Expect(isMap).To(BeTrue())
			Expect(stats).To(HaveKey("overview"))
			Expect(stats).To(HaveKey("revenue"))
		})

		It("should miss on unknown identifiers", func() {
			_, ok := reg.Lookup("venues.rename")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("EmptyValue", func() {
		It("should return an empty list for collections", func() {
			Expect(endpoint.EmptyValue(endpoint.ShapeCollection)).To(Equal([]any{}))
		})

		It("should return an empty object for aggregates", func() {
			Expect(endpoint.EmptyValue(endpoint.ShapeStats)).To(Equal(map[string]any{}))
		})

		It("should return nil for singular resources", func() {
			Expect(endpoint.EmptyValue(endpoint.ShapeSingular)).To(BeNil())
		})
	})
})
