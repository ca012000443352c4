package integration

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"aviacao/internal/config"
	"aviacao/internal/database"
)

// RequireDB opens a direct database connection for fixtures the HTTP
// surface cannot produce, and skips when no database is reachable.
// Connection settings come from the same env vars the server reads.
func RequireDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Connect(config.Load().Database)
	if err != nil {
		t.Skipf("Database not reachable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SeedDepartedFlight inserts a flight that left two hours ago, with one
// unassigned ticket already sold on it. Departed flights never show up
// in the listings, so tests that need one have to plant it. All rows are
// removed again when the test finishes.
func SeedDepartedFlight(t *testing.T, db *database.DB) (vooID, bilheteID int64) {
	t.Helper()

	noSerie := fmt.Sprintf("TST-%06d", rand.Intn(1000000))
	now := time.Now().UTC()

	_, err := db.Exec(`
		INSERT INTO aeroporto (codigo, nome, cidade, pais)
		VALUES ('ZZX', 'Aeroporto Teste Partida', 'Cidade X', 'País X'),
		       ('ZZY', 'Aeroporto Teste Chegada', 'Cidade Y', 'País Y')
		ON CONFLICT (codigo) DO NOTHING`)
	if err != nil {
		t.Fatalf("Seeding airports: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO aviao (no_serie, modelo) VALUES ($1, 'Teste 100')`, noSerie); err != nil {
		t.Fatalf("Seeding plane: %v", err)
	}

	err = db.QueryRow(`
		INSERT INTO voo (no_serie, hora_partida, hora_chegada, partida, chegada)
		VALUES ($1, $2, $3, 'ZZX', 'ZZY')
		RETURNING id`,
		noSerie, now.Add(-2*time.Hour), now.Add(-1*time.Hour)).Scan(&vooID)
	if err != nil {
		t.Fatalf("Seeding flight: %v", err)
	}

	var codigoReserva int64
	err = db.QueryRow(`
		INSERT INTO venda (nif_cliente, balcao, hora)
		VALUES ('999999999', 'ZZX', $1)
		RETURNING codigo_reserva`, now.Add(-3*time.Hour)).Scan(&codigoReserva)
	if err != nil {
		t.Fatalf("Seeding sale: %v", err)
	}

	err = db.QueryRow(`
		INSERT INTO bilhete (voo_id, codigo_reserva, nome_passegeiro, preco, prim_classe, no_serie)
		VALUES ($1, $2, 'Passageiro Atrasado', 150.00, FALSE, $3)
		RETURNING id`, vooID, codigoReserva, noSerie).Scan(&bilheteID)
	if err != nil {
		t.Fatalf("Seeding ticket: %v", err)
	}

	t.Cleanup(func() {
		db.Exec(`DELETE FROM bilhete WHERE codigo_reserva = $1`, codigoReserva)
		db.Exec(`DELETE FROM venda WHERE codigo_reserva = $1`, codigoReserva)
		db.Exec(`DELETE FROM voo WHERE id = $1`, vooID)
		db.Exec(`DELETE FROM aviao WHERE no_serie = $1`, noSerie)
		db.Exec(`DELETE FROM aeroporto WHERE codigo IN ('ZZX', 'ZZY') AND nome LIKE 'Aeroporto Teste%'`)
	})

	return vooID, bilheteID
}
