package repository

import (
	"context"
	"time"

	"aviacao/internal/database"
	"aviacao/internal/models"
)

type FlightRepository struct {
	db *database.DB
}

func NewFlightRepository(db *database.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// ListDepartures returns flights leaving code strictly after `from` and
// at or before `to`, ordered by departure time
func (r *FlightRepository) ListDepartures(ctx context.Context, code string, from, to time.Time) ([]models.DepartureListItem, error) {
	query := `
		SELECT v.no_serie, v.hora_partida, v.chegada AS aeroporto_chegada
		FROM voo v
		WHERE v.partida = $1
		  AND v.hora_partida > $2
		  AND v.hora_partida <= $3
		ORDER BY v.hora_partida`

	rows, err := r.db.QueryContext(ctx, query, code, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]models.DepartureListItem, 0)
	for rows.Next() {
		var f models.DepartureListItem
		if err := rows.Scan(&f.NoSerie, &f.HoraPartida, &f.AeroportoChegada); err != nil {
			return nil, err
		}
		f.HoraPartida = models.NormalizeUTC(f.HoraPartida)
		flights = append(flights, f)
	}

	return flights, rows.Err()
}

// CountFutureOnRoute counts all future flights on a route regardless of
// remaining capacity, to tell "no route" apart from "route full"
func (r *FlightRepository) CountFutureOnRoute(ctx context.Context, origin, dest string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM voo v
		WHERE v.partida = $1
		  AND v.chegada = $2
		  AND v.hora_partida > NOW()`

	if err := r.db.QueryRowContext(ctx, query, origin, dest).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListAvailableOnRoute returns up to limit future flights on a route
// with seats remaining: configured seat inventory strictly greater than
// issued tickets. Every issued ticket consumes capacity, assigned seat
// or not. The view is advisory; purchase re-validates under its own
// transaction.
func (r *FlightRepository) ListAvailableOnRoute(ctx context.Context, origin, dest string, limit int) ([]models.RouteFlightItem, error) {
	query := `
		SELECT v.id AS voo_id, v.no_serie, v.hora_partida
		FROM voo v
		JOIN aviao av ON v.no_serie = av.no_serie
		WHERE v.partida = $1
		  AND v.chegada = $2
		  AND v.hora_partida > NOW()
		  AND (
		      SELECT COUNT(*) FROM assento a WHERE a.no_serie = v.no_serie
		  ) > (
		      SELECT COUNT(*) FROM bilhete b WHERE b.voo_id = v.id
		  )
		ORDER BY v.hora_partida
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, origin, dest, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]models.RouteFlightItem, 0)
	for rows.Next() {
		var f models.RouteFlightItem
		if err := rows.Scan(&f.VooID, &f.NoSerie, &f.HoraPartida); err != nil {
			return nil, err
		}
		f.HoraPartida = models.NormalizeUTC(f.HoraPartida)
		flights = append(flights, f)
	}

	return flights, rows.Err()
}
