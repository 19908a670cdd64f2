package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/angeloszaimis/booking-client/internal/endpoint"
)

// Convenience methods covering the API surface the dashboard uses.
// Each one is Do with the endpoint name and concrete path filled in.

func (c *Client) Venues(ctx context.Context) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.VenuesList, Path: "/venues"})
}

func (c *Client) CreateVenue(ctx context.Context, venue map[string]any) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.VenuesCreate, Path: "/venues", Body: venue})
}

func (c *Client) Venue(ctx context.Context, id int) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.VenuesGet, Path: fmt.Sprintf("/venues/%d", id)})
}

func (c *Client) VenueOccupancy(ctx context.Context, id int) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.VenueOccupancy, Path: fmt.Sprintf("/venues/%d/occupancy", id)})
}

func (c *Client) Events(ctx context.Context) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.EventsList, Path: "/events"})
}

func (c *Client) CreateEvent(ctx context.Context, event map[string]any) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.EventsCreate, Path: "/events", Body: event})
}

func (c *Client) Event(ctx context.Context, id int) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.EventsGet, Path: fmt.Sprintf("/events/%d", id)})
}

func (c *Client) EventRevenue(ctx context.Context, id int) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.EventRevenue, Path: fmt.Sprintf("/events/%d/revenue", id)})
}

func (c *Client) AvailableTickets(ctx context.Context, eventID int) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.AvailableTickets, Path: fmt.Sprintf("/events/%d/available-tickets", eventID)})
}

func (c *Client) TicketTypes(ctx context.Context) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.TicketTypesList, Path: "/ticket-types"})
}

func (c *Client) CreateTicketType(ctx context.Context, ticketType map[string]any) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.TicketTypesCreate, Path: "/ticket-types", Body: ticketType})
}

func (c *Client) TicketTypeStats(ctx context.Context, id int) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.TicketTypeStats, Path: fmt.Sprintf("/ticket-types/%d/stats", id)})
}

func (c *Client) Bookings(ctx context.Context) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.BookingsList, Path: "/bookings"})
}

func (c *Client) CreateBooking(ctx context.Context, booking map[string]any) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.BookingsCreate, Path: "/bookings", Body: booking})
}

func (c *Client) Booking(ctx context.Context, id int) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.BookingsGet, Path: fmt.Sprintf("/bookings/%d", id)})
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id int, status string) (Response, error) {
	return c.Do(ctx, Request{
		Endpoint: endpoint.BookingsUpdateStatus,
		Path:     fmt.Sprintf("/bookings/%d/status", id),
		Body:     map[string]any{"status": status},
	})
}

func (c *Client) CancelBooking(ctx context.Context, id int) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.BookingsCancel, Path: fmt.Sprintf("/bookings/%d", id)})
}

func (c *Client) SearchBookings(ctx context.Context, filters url.Values) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.BookingsSearch, Path: "/bookings/search/", Query: filters})
}

func (c *Client) Stats(ctx context.Context) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.StatsSystem, Path: "/stats"})
}

func (c *Client) PopularEvents(ctx context.Context, limit int) (Response, error) {
	return c.Do(ctx, Request{
		Endpoint: endpoint.StatsPopularEvents,
		Path:     "/stats/popular-events",
		Query:    url.Values{"limit": []string{strconv.Itoa(limit)}},
	})
}

func (c *Client) BusiestVenues(ctx context.Context, limit int) (Response, error) {
	return c.Do(ctx, Request{
		Endpoint: endpoint.StatsBusiestVenues,
		Path:     "/stats/busiest-venues",
		Query:    url.Values{"limit": []string{strconv.Itoa(limit)}},
	})
}

func (c *Client) TicketTypeAnalysis(ctx context.Context) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.StatsTicketTypeAnalysis, Path: "/stats/ticket-type-analysis"})
}

func (c *Client) RevenueByMonth(ctx context.Context) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.StatsRevenueByMonth, Path: "/stats/revenue-by-month"})
}

func (c *Client) Health(ctx context.Context) (Response, error) {
	return c.Do(ctx, Request{Endpoint: endpoint.Health, Path: "/health"})
}
