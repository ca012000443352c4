package repository

import (
	"context"
	"database/sql"
	"fmt"

	"aviacao/internal/database"
	apperrors "aviacao/internal/errors"
	"aviacao/internal/models"
)

type SaleRepository struct {
	db *database.DB
}

func NewSaleRepository(db *database.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// PurchaseItem is one ticket to create, price already resolved by the
// caller from the fixed-rate table
type PurchaseItem struct {
	PassengerName string
	FirstClass    bool
	Price         float64
}

// Purchase runs the booking transaction: lock the flight row, check the
// departure cutoff against the database clock, insert one venda and one
// bilhete per item. All-or-nothing; any failure (including a duplicate
// passenger in the same reservation) rolls everything back.
func (r *SaleRepository) Purchase(ctx context.Context, flightID int64, nif string, items []PurchaseItem) (*models.PurchaseResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Exclusive lock on the flight row; concurrent purchases of the
	// same flight serialize here.
	var (
		horaPartida sql.NullTime
		partida     string
		noSerie     string
	)
	lockQuery := `SELECT hora_partida, partida, no_serie FROM voo WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, lockQuery, flightID).Scan(&horaPartida, &partida, &noSerie)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Flight with ID %d not found.", flightID)
	}
	if err != nil {
		return nil, apperrors.FromStorage(err)
	}

	// Canonical now comes from the storage engine, not our clock, so
	// every concurrent transaction observes the same time source.
	var now sql.NullTime
	if err := tx.QueryRowContext(ctx, `SELECT NOW()`).Scan(&now); err != nil {
		return nil, apperrors.FromStorage(err)
	}

	if !horaPartida.Valid || models.DepartureClosed(now.Time, horaPartida.Time) {
		return nil, apperrors.Conflict("Cannot purchase tickets: flight has already departed or sale is too close to departure.")
	}

	var codigoReserva int64
	saleQuery := `
		INSERT INTO venda (nif_cliente, balcao, hora)
		VALUES ($1, $2, $3) RETURNING codigo_reserva`
	if err := tx.QueryRowContext(ctx, saleQuery, nif, partida, now.Time).Scan(&codigoReserva); err != nil {
		return nil, apperrors.FromStorage(err)
	}

	ticketQuery := `
		INSERT INTO bilhete (voo_id, codigo_reserva, nome_passegeiro, preco, prim_classe, no_serie)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	result := &models.PurchaseResult{CodigoReserva: codigoReserva, Balcao: partida}
	for _, item := range items {
		var ticketID int64
		err := tx.QueryRowContext(ctx, ticketQuery,
			flightID, codigoReserva, item.PassengerName, item.Price, item.FirstClass, noSerie,
		).Scan(&ticketID)
		if err != nil {
			return nil, apperrors.FromStorage(err)
		}
		result.Bilhetes = append(result.Bilhetes, models.PurchasedTicket{
			IDBilhete:  ticketID,
			Passageiro: item.PassengerName,
			Classe:     models.ClassLabel(item.FirstClass),
			Preco:      item.Price,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.FromStorage(err)
	}

	return result, nil
}
