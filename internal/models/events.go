package models

import "time"

// NATS subjects for domain events. Published best-effort after commit;
// consumers feed the audit/analytics index.
const (
	EventSaleCreated      = "sale.created"
	EventCheckinCompleted = "checkin.completed"
)

// SaleCreatedEvent announces a committed purchase
type SaleCreatedEvent struct {
	CodigoReserva int64     `json:"codigo_reserva"`
	VooID         int64     `json:"voo_id"`
	NIFCliente    string    `json:"nif_cliente"`
	Balcao        string    `json:"balcao"`
	Tickets       int       `json:"tickets"`
	Timestamp     time.Time `json:"timestamp"`
}

// CheckinCompletedEvent announces a committed seat assignment
type CheckinCompletedEvent struct {
	BilheteID int64     `json:"bilhete_id"`
	VooID     int64     `json:"voo_id"`
	NoSerie   string    `json:"no_serie"`
	Lugar     string    `json:"lugar"`
	Timestamp time.Time `json:"timestamp"`
}
