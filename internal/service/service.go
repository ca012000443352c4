package service

import (
	"time"

	"aviacao/internal/messaging"
	"aviacao/internal/repository"
)

type Services struct {
	Availability *AvailabilityService
	Bookings     *BookingService
	Checkins     *CheckinService
}

// NewServices wires the three engines. natsClient may be nil, in which
// case domain events are simply not published.
func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, loc *time.Location) *Services {
	return &Services{
		Availability: NewAvailabilityService(repos.Airports, repos.Flights, loc),
		Bookings:     NewBookingService(repos.Sales, natsClient),
		Checkins:     NewCheckinService(repos.Tickets, natsClient),
	}
}
