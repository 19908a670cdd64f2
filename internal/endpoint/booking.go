package endpoint

import "net/http"

// Endpoint identifiers for the booking API.
const (
	VenuesList     = "venues.list"
	VenuesCreate   = "venues.create"
	VenuesGet      = "venues.get"
	VenueOccupancy = "venues.occupancy"

	EventsList       = "events.list"
	EventsCreate     = "events.create"
	EventsGet        = "events.get"
	EventRevenue     = "events.revenue"
	AvailableTickets = "events.available_tickets"

	TicketTypesList   = "ticket_types.list"
	TicketTypesCreate = "ticket_types.create"
	TicketTypeStats   = "ticket_types.stats"

	BookingsList         = "bookings.list"
	BookingsCreate       = "bookings.create"
	BookingsGet          = "bookings.get"
	BookingsUpdateStatus = "bookings.update_status"
	BookingsCancel       = "bookings.cancel"
	BookingsSearch       = "bookings.search"

	StatsSystem             = "stats.system"
	StatsPopularEvents      = "stats.popular_events"
	StatsBusiestVenues      = "stats.busiest_venues"
	StatsTicketTypeAnalysis = "stats.ticket_type_analysis"
	StatsRevenueByMonth     = "stats.revenue_by_month"

	Health = "health"
)

func emptyOccupancy() any {
	return map[string]any{
		"capacity":             0,
		"total_bookings":       0,
		"available_capacity":   0,
		"occupancy_percentage": 0.0,
		"event_count":          0,
	}
}

func emptyRevenue() any {
	return map[string]any{
		"total_revenue":     0.0,
		"pending_revenue":   0.0,
		"confirmed_revenue": 0.0,
	}
}

func emptyAvailability() any {
	return map[string]any{
		"venue_capacity":     0,
		"total_booked":       0,
		"available_capacity": 0,
		"is_sold_out":        false,
	}
}

func emptySystemStats() any {
	return map[string]any{
		"overview": map[string]any{
			"total_venues":       0,
			"total_events":       0,
			"total_bookings":     0,
			"total_ticket_types": 0,
			"total_tickets_sold": 0,
		},
		"revenue": map[string]any{
			"total_revenue":     0.0,
			"pending_revenue":   0.0,
			"confirmed_revenue": 0.0,
		},
		"booking_status_breakdown": map[string]any{},
	}
}

// BookingRegistry returns the registry for the booking API surface
// consumed by the dashboard. Every operation the dashboard issues is
// listed here; shapes and defaults mirror what the backend returns.
func BookingRegistry() *Registry {
	r, err := NewRegistry(
		Endpoint{Name: VenuesList, Method: http.MethodGet, Path: "/venues", Shape: ShapeCollection},
		Endpoint{Name: VenuesCreate, Method: http.MethodPost, Path: "/venues", Shape: ShapeSingular, Mutating: true},
		Endpoint{Name: VenuesGet, Method: http.MethodGet, Path: "/venues/{id}", Shape: ShapeSingular},
		Endpoint{Name: VenueOccupancy, Method: http.MethodGet, Path: "/venues/{id}/occupancy", Shape: ShapeStats, Default: emptyOccupancy},

		Endpoint{Name: EventsList, Method: http.MethodGet, Path: "/events", Shape: ShapeCollection},
		Endpoint{Name: EventsCreate, Method: http.MethodPost, Path: "/events", Shape: ShapeSingular, Mutating: true},
		Endpoint{Name: EventsGet, Method: http.MethodGet, Path: "/events/{id}", Shape: ShapeSingular},
		Endpoint{Name: EventRevenue, Method: http.MethodGet, Path: "/events/{id}/revenue", Shape: ShapeStats, Default: emptyRevenue},
		Endpoint{Name: AvailableTickets, Method: http.MethodGet, Path: "/events/{id}/available-tickets", Shape: ShapeStats, Default: emptyAvailability},

		Endpoint{Name: TicketTypesList, Method: http.MethodGet, Path: "/ticket-types", Shape: ShapeCollection},
		Endpoint{Name: TicketTypesCreate, Method: http.MethodPost, Path: "/ticket-types", Shape: ShapeSingular, Mutating: true},
		Endpoint{Name: TicketTypeStats, Method: http.MethodGet, Path: "/ticket-types/{id}/stats", Shape: ShapeStats},

		Endpoint{Name: BookingsList, Method: http.MethodGet, Path: "/bookings", Shape: ShapeCollection},
		Endpoint{Name: BookingsCreate, Method: http.MethodPost, Path: "/bookings", Shape: ShapeSingular, Mutating: true},
		Endpoint{Name: BookingsGet, Method: http.MethodGet, Path: "/bookings/{id}", Shape: ShapeSingular},
		Endpoint{Name: BookingsUpdateStatus, Method: http.MethodPatch, Path: "/bookings/{id}/status", Shape: ShapeSingular, Mutating: true},
		Endpoint{Name: BookingsCancel, Method: http.MethodDelete, Path: "/bookings/{id}", Shape: ShapeSingular, Mutating: true},
		Endpoint{Name: BookingsSearch, Method: http.MethodGet, Path: "/bookings/search/", Shape: ShapeCollection},

		Endpoint{Name: StatsSystem, Method: http.MethodGet, Path: "/stats", Shape: ShapeStats, Default: emptySystemStats},
		Endpoint{Name: StatsPopularEvents, Method: http.MethodGet, Path: "/stats/popular-events", Shape: ShapeCollection},
		Endpoint{Name: StatsBusiestVenues, Method: http.MethodGet, Path: "/stats/busiest-venues", Shape: ShapeCollection},
		Endpoint{Name: StatsTicketTypeAnalysis, Method: http.MethodGet, Path: "/stats/ticket-type-analysis", Shape: ShapeStats},
		Endpoint{Name: StatsRevenueByMonth, Method: http.MethodGet, Path: "/stats/revenue-by-month", Shape: ShapeCollection},

		Endpoint{Name: Health, Method: http.MethodGet, Path: "/health", Shape: ShapeStats},
	)
	if err != nil {
		// The table above is static; a failure here is a programming error.
		panic(err)
	}

	return r
}
