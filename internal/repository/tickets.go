package repository

import (
	"context"
	"database/sql"
	"fmt"

	"aviacao/internal/database"
	apperrors "aviacao/internal/errors"
	"aviacao/internal/models"
)

type TicketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// GetByID returns a ticket outside any transaction, nil when absent
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `
		SELECT id, voo_id, codigo_reserva, nome_passegeiro, preco, prim_classe, lugar, no_serie
		FROM bilhete
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.VooID,
		&ticket.CodigoReserva,
		&ticket.NomePassegeiro,
		&ticket.Preco,
		&ticket.PrimClasse,
		&ticket.Lugar,
		&ticket.NoSerie,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ticket, err
}

// CheckIn runs the seat-assignment transaction. The ticket transitions
// from unassigned to assigned exactly once; the transition is one-way.
//
// Locking the ticket row alone does not stop two concurrent check-ins
// on different tickets from computing the same first-free seat, so the
// transaction also takes an advisory lock keyed on the flight id. That
// serializes the occupancy scan and the write per flight, which is the
// granularity at which seats contend.
func (r *TicketRepository) CheckIn(ctx context.Context, ticketID int64) (*models.CheckInResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		vooID       int64
		primClasse  bool
		lugar       sql.NullString
		noSerie     string
		horaPartida sql.NullTime
	)
	lockQuery := `
		SELECT b.voo_id, b.prim_classe, b.lugar, v.no_serie, v.hora_partida
		FROM bilhete b
		JOIN voo v ON b.voo_id = v.id
		WHERE b.id = $1
		FOR UPDATE OF b`
	err = tx.QueryRowContext(ctx, lockQuery, ticketID).Scan(&vooID, &primClasse, &lugar, &noSerie, &horaPartida)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Ticket with ID %d not found.", ticketID)
	}
	if err != nil {
		return nil, apperrors.FromStorage(err)
	}

	// Retrying a completed check-in is a conflict that names the seat
	// of the first call, never a silent success.
	if lugar.Valid {
		return nil, apperrors.Conflict("Check-in already completed for ticket %d. Seat: %s.", ticketID, lugar.String)
	}

	var now sql.NullTime
	if err := tx.QueryRowContext(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		return nil, apperrors.FromStorage(err)
	}
	if !horaPartida.Valid || models.DepartureClosed(now.Time, horaPartida.Time) {
		return nil, apperrors.Conflict("Cannot check-in: flight has already departed.")
	}

	// Transaction-scoped advisory lock on the flight, released at
	// commit/rollback.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, vooID); err != nil {
		return nil, apperrors.FromStorage(err)
	}

	// First free seat of the ticket's class on the ticket's aircraft,
	// occupancy scoped to this flight: numeric row ascending, then
	// cabin letter.
	var assigned string
	seatQuery := `
		SELECT a.lugar
		FROM assento a
		WHERE a.no_serie = $1
		  AND a.prim_classe = $2
		  AND NOT EXISTS (
		      SELECT 1
		      FROM bilhete b
		      WHERE b.voo_id = $3
		        AND b.lugar = a.lugar
		        AND b.no_serie = a.no_serie
		  )
		ORDER BY CAST(regexp_replace(a.lugar, '[A-Z]', '', 'g') AS INTEGER),
		         regexp_replace(a.lugar, '[0-9]', '', 'g')
		LIMIT 1`
	err = tx.QueryRowContext(ctx, seatQuery, noSerie, primClasse, vooID).Scan(&assigned)
	if err == sql.ErrNoRows {
		return nil, apperrors.Conflict("No available seats of class %s for check-in on flight %d (plane %s).",
			models.ClassLabel(primClasse), vooID, noSerie)
	}
	if err != nil {
		return nil, apperrors.FromStorage(err)
	}

	updateQuery := `UPDATE bilhete SET lugar = $1, no_serie = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, updateQuery, assigned, noSerie, ticketID); err != nil {
		return nil, apperrors.FromStorage(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.FromStorage(err)
	}

	return &models.CheckInResult{
		BilheteID: ticketID,
		VooID:     vooID,
		Lugar:     assigned,
		NoSerie:   noSerie,
	}, nil
}
