package repository

import (
	"context"

	"aviacao/internal/database"
	"aviacao/internal/models"
)

type AirportRepository struct {
	db *database.DB
}

func NewAirportRepository(db *database.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

func (r *AirportRepository) List(ctx context.Context) ([]models.AirportListItem, error) {
	query := `SELECT nome, cidade FROM aeroporto ORDER BY nome`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]models.AirportListItem, 0)
	for rows.Next() {
		var a models.AirportListItem
		if err := rows.Scan(&a.Nome, &a.Cidade); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}

	return airports, rows.Err()
}

func (r *AirportRepository) Exists(ctx context.Context, code string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM aeroporto WHERE codigo = $1`
	if err := r.db.QueryRowContext(ctx, query, code).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
