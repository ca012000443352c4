package repository

import (
	"context"
	"time"

	"aviacao/internal/database"
	"aviacao/internal/models"
)

// AuditRepository reads committed sales and seat assignments back out
// of storage for the search indexes. Events published at commit time
// are best-effort, so backfill jobs re-derive them from the tables.
type AuditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// ListSales returns one event per sale recorded at or after since.
// A sale's flight is taken from its tickets; the purchase transaction
// writes all tickets of a sale against one flight.
func (r *AuditRepository) ListSales(ctx context.Context, since time.Time) ([]models.SaleCreatedEvent, error) {
	query := `
		SELECT v.codigo_reserva, v.nif_cliente, v.balcao, v.hora,
		       MIN(b.voo_id), COUNT(b.id)
		FROM venda v
		JOIN bilhete b ON b.codigo_reserva = v.codigo_reserva
		WHERE v.hora >= $1
		GROUP BY v.codigo_reserva, v.nif_cliente, v.balcao, v.hora
		ORDER BY v.codigo_reserva`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.SaleCreatedEvent
	for rows.Next() {
		var ev models.SaleCreatedEvent
		if err := rows.Scan(&ev.CodigoReserva, &ev.NIFCliente, &ev.Balcao, &ev.Timestamp,
			&ev.VooID, &ev.Tickets); err != nil {
			return nil, err
		}
		ev.Timestamp = models.NormalizeUTC(ev.Timestamp)
		events = append(events, ev)
	}

	return events, rows.Err()
}

// ListCheckins returns one event per ticket with a seat assigned on a
// flight departing at or after since. Assignment time is not recorded,
// so the flight departure bounds the window instead.
func (r *AuditRepository) ListCheckins(ctx context.Context, since time.Time) ([]models.CheckinCompletedEvent, error) {
	query := `
		SELECT b.id, b.voo_id, b.no_serie, b.lugar, v.hora_partida
		FROM bilhete b
		JOIN voo v ON v.id = b.voo_id
		WHERE b.lugar IS NOT NULL
		  AND v.hora_partida >= $1
		ORDER BY b.id`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CheckinCompletedEvent
	for rows.Next() {
		var ev models.CheckinCompletedEvent
		if err := rows.Scan(&ev.BilheteID, &ev.VooID, &ev.NoSerie, &ev.Lugar, &ev.Timestamp); err != nil {
			return nil, err
		}
		ev.Timestamp = models.NormalizeUTC(ev.Timestamp)
		events = append(events, ev)
	}

	return events, rows.Err()
}
