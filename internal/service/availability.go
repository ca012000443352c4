package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "aviacao/internal/errors"
	"aviacao/internal/models"
	"aviacao/internal/repository"
)

// DepartureWindow bounds the upcoming-departures listing.
const DepartureWindow = 12 * time.Hour

// MaxRouteResults caps the next-available-flights listing.
const MaxRouteResults = 3

// AvailabilityService is the read side: which flights leave soon, and
// which still have seats. It takes no locks and may be stale by the
// time a purchase is attempted; the booking transaction re-validates.
type AvailabilityService struct {
	airportRepo *repository.AirportRepository
	flightRepo  *repository.FlightRepository
	loc         *time.Location
	now         func() time.Time
}

func NewAvailabilityService(airportRepo *repository.AirportRepository, flightRepo *repository.FlightRepository, loc *time.Location) *AvailabilityService {
	return &AvailabilityService{
		airportRepo: airportRepo,
		flightRepo:  flightRepo,
		loc:         loc,
		now:         time.Now,
	}
}

// ListAirports returns every airport ordered by name
func (s *AvailabilityService) ListAirports(ctx context.Context) ([]models.AirportListItem, error) {
	airports, err := s.airportRepo.List(ctx)
	if err != nil {
		return nil, apperrors.FromStorage(err)
	}
	return airports, nil
}

// ListDepartures returns all flights leaving code within the next 12
// hours, ordered by departure time. An empty list is a valid outcome.
func (s *AvailabilityService) ListDepartures(ctx context.Context, code string) ([]models.DepartureListItem, error) {
	// The raw path parameter is validated as-is: lowercase or malformed
	// codes are rejected before any storage access.
	if !models.ValidAirportCode(code) {
		return nil, apperrors.Validation("Departure airport code invalid. Must be 3 uppercase letters.")
	}

	exists, err := s.airportRepo.Exists(ctx, code)
	if err != nil {
		return nil, apperrors.FromStorage(err)
	}
	if !exists {
		return nil, apperrors.NotFound("Aeroporto de partida '%s' não existe.", code)
	}

	now := s.now().In(s.loc)
	flights, err := s.flightRepo.ListDepartures(ctx, code, now, now.Add(DepartureWindow))
	if err != nil {
		return nil, apperrors.FromStorage(err)
	}
	return flights, nil
}

// NextAvailable returns up to three future flights on the route with
// seats remaining, plus whether the route has any future flight at
// all, so callers can tell "no route" apart from "all full".
func (s *AvailabilityService) NextAvailable(ctx context.Context, origin, dest string) ([]models.RouteFlightItem, bool, error) {
	if !models.ValidAirportCode(origin) || !models.ValidAirportCode(dest) {
		return nil, false, apperrors.Validation("Airport codes invalid. Must be 3 uppercase letters.")
	}
	if origin == dest {
		return nil, false, apperrors.Validation("Departure and arrival airports cannot be the same.")
	}

	originExists, err := s.airportRepo.Exists(ctx, origin)
	if err != nil {
		return nil, false, apperrors.FromStorage(err)
	}
	destExists, err := s.airportRepo.Exists(ctx, dest)
	if err != nil {
		return nil, false, apperrors.FromStorage(err)
	}
	if !originExists || !destExists {
		var msg []string
		if !originExists {
			msg = append(msg, fmt.Sprintf("Aeroporto de partida '%s' não existe.", origin))
		}
		if !destExists {
			msg = append(msg, fmt.Sprintf("Aeroporto de chegada '%s' não existe.", dest))
		}
		return nil, false, apperrors.NotFound("%s", strings.Join(msg, " "))
	}

	total, err := s.flightRepo.CountFutureOnRoute(ctx, origin, dest)
	if err != nil {
		return nil, false, apperrors.FromStorage(err)
	}
	if total == 0 {
		return nil, false, nil
	}

	flights, err := s.flightRepo.ListAvailableOnRoute(ctx, origin, dest, MaxRouteResults)
	if err != nil {
		return nil, false, apperrors.FromStorage(err)
	}
	return flights, true, nil
}
