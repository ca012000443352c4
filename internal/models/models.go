package models

import (
	"regexp"
	"strings"
	"time"

	apperrors "aviacao/internal/errors"
)

// Fixed-rate price table: one flat rate per cabin class.
const (
	PriceFirstClass = 500.00
	PriceEconomy    = 150.00

	ClassFirstLabel   = "Primeira"
	ClassEconomyLabel = "Económica"
)

var (
	airportCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)
	nifRe         = regexp.MustCompile(`^[0-9]{9}$`)
)

// ValidAirportCode reports whether code is a well-formed 3-letter
// uppercase airport code
func ValidAirportCode(code string) bool {
	return airportCodeRe.MatchString(code)
}

// TicketPrice returns the flat fare for a cabin class
func TicketPrice(firstClass bool) float64 {
	if firstClass {
		return PriceFirstClass
	}
	return PriceEconomy
}

// ClassLabel returns the wire label for a cabin class
func ClassLabel(firstClass bool) string {
	if firstClass {
		return ClassFirstLabel
	}
	return ClassEconomyLabel
}

// AirportListItem is one entry of the airport listing
type AirportListItem struct {
	Nome   string `json:"nome"`
	Cidade string `json:"cidade"`
}

// DepartureListItem is one entry of the 12-hour departures listing
type DepartureListItem struct {
	NoSerie          string    `json:"no_serie"`
	HoraPartida      time.Time `json:"hora_partida"`
	AeroportoChegada string    `json:"aeroporto_chegada"`
}

// RouteFlightItem is one entry of the next-available-flights listing
type RouteFlightItem struct {
	VooID       int64     `json:"voo_id"`
	NoSerie     string    `json:"no_serie"`
	HoraPartida time.Time `json:"hora_partida"`
}

// PurchaseTicketRequest is one requested ticket in a purchase.
// PrimClasse is a pointer so that an absent field is distinguishable
// from an explicit false.
type PurchaseTicketRequest struct {
	NomePassageiro string `json:"nome_passageiro"`
	PrimClasse     *bool  `json:"prim_classe"`
}

// PurchaseRequest is the typed purchase payload
type PurchaseRequest struct {
	NIFCliente       string                  `json:"nif_cliente"`
	BilhetesAComprar []PurchaseTicketRequest `json:"bilhetes_a_comprar"`
}

// Validate rejects malformed purchase payloads with field-precise
// messages before any transaction opens
func (r *PurchaseRequest) Validate() error {
	if !nifRe.MatchString(r.NIFCliente) {
		return apperrors.Validation("Client NIF invalid (must be a 9-digit string).")
	}
	if len(r.BilhetesAComprar) == 0 {
		return apperrors.Validation("List of tickets to purchase is missing or invalid.")
	}
	for i, b := range r.BilhetesAComprar {
		if strings.TrimSpace(b.NomePassageiro) == "" {
			return apperrors.Validation("Invalid ticket format in list (index %d). Each ticket must have 'nome_passageiro' (non-empty string) and 'prim_classe' (boolean).", i)
		}
		if b.PrimClasse == nil {
			return apperrors.Validation("Invalid ticket format in list (index %d). Each ticket must have 'nome_passageiro' (non-empty string) and 'prim_classe' (boolean).", i)
		}
	}
	return nil
}

// PurchasedTicket is one created ticket in the purchase response
type PurchasedTicket struct {
	IDBilhete  int64   `json:"id_bilhete"`
	Passageiro string  `json:"passageiro"`
	Classe     string  `json:"classe"`
	Preco      float64 `json:"preco"`
}

// PurchaseResult is what the booking transaction hands back on commit
type PurchaseResult struct {
	CodigoReserva int64             `json:"codigo_reserva"`
	Bilhetes      []PurchasedTicket `json:"bilhetes_comprados"`
	Balcao        string            `json:"-"`
}

// CheckInResult is what the seat-assignment transaction hands back on
// commit
type CheckInResult struct {
	BilheteID int64  `json:"bilhete_id"`
	VooID     int64  `json:"-"`
	Lugar     string `json:"lugar_atribuido"`
	NoSerie   string `json:"aviao_no_serie"`
}
