package repository

import (
	"aviacao/internal/database"
)

type Repositories struct {
	Airports *AirportRepository
	Flights  *FlightRepository
	Sales    *SaleRepository
	Tickets  *TicketRepository
	Audit    *AuditRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Airports: NewAirportRepository(db),
		Flights:  NewFlightRepository(db),
		Sales:    NewSaleRepository(db),
		Tickets:  NewTicketRepository(db),
		Audit:    NewAuditRepository(db),
	}
}
