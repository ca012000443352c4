package database

import (
	"fmt"
	"log/slog"
)

// RunMigrations creates the aviation schema. The DDL is the system's
// contract: the service relies on these constraints rejecting writes at
// statement/commit time (uniqueness, referential integrity, CHECKs).
func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createAirportTable,
		createAircraftTable,
		createSeatTable,
		createFlightTable,
		createSaleTable,
		createTicketTable,
		createFlightDepartureIndex,
		createTicketFlightIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createAirportTable = `
CREATE TABLE IF NOT EXISTS aeroporto (
    codigo CHAR(3) PRIMARY KEY CHECK (codigo ~ '^[A-Z]{3}$'),
    nome VARCHAR(80) NOT NULL,
    cidade VARCHAR(255) NOT NULL,
    pais VARCHAR(255) NOT NULL,
    UNIQUE (nome, cidade)
);`

const createAircraftTable = `
CREATE TABLE IF NOT EXISTS aviao (
    no_serie VARCHAR(80) PRIMARY KEY,
    modelo VARCHAR(80) NOT NULL
);`

const createSeatTable = `
CREATE TABLE IF NOT EXISTS assento (
    lugar VARCHAR(3) CHECK (lugar ~ '^[0-9]{1,2}[A-Z]$'),
    no_serie VARCHAR(80) REFERENCES aviao,
    prim_classe BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (lugar, no_serie)
);`

const createFlightTable = `
CREATE TABLE IF NOT EXISTS voo (
    id SERIAL PRIMARY KEY,
    no_serie VARCHAR(80) REFERENCES aviao,
    hora_partida TIMESTAMP,
    hora_chegada TIMESTAMP,
    partida CHAR(3) REFERENCES aeroporto(codigo),
    chegada CHAR(3) REFERENCES aeroporto(codigo),
    UNIQUE (no_serie, hora_partida),
    UNIQUE (no_serie, hora_chegada),
    UNIQUE (hora_partida, partida, chegada),
    UNIQUE (hora_chegada, partida, chegada),
    CHECK (partida != chegada),
    CHECK (hora_partida <= hora_chegada)
);`

const createSaleTable = `
CREATE TABLE IF NOT EXISTS venda (
    codigo_reserva SERIAL PRIMARY KEY,
    nif_cliente CHAR(9) NOT NULL,
    balcao CHAR(3) REFERENCES aeroporto(codigo),
    hora TIMESTAMP
);`

const createTicketTable = `
CREATE TABLE IF NOT EXISTS bilhete (
    id SERIAL PRIMARY KEY,
    voo_id INTEGER REFERENCES voo,
    codigo_reserva INTEGER REFERENCES venda,
    nome_passegeiro VARCHAR(80),
    preco NUMERIC(7,2) NOT NULL,
    prim_classe BOOLEAN NOT NULL DEFAULT FALSE,
    lugar VARCHAR(3),
    no_serie VARCHAR(80),
    UNIQUE (voo_id, codigo_reserva, nome_passegeiro),
    FOREIGN KEY (lugar, no_serie) REFERENCES assento
);`

const createFlightDepartureIndex = `
CREATE INDEX IF NOT EXISTS voo_partida_hora_idx
ON voo (partida, hora_partida);`

const createTicketFlightIndex = `
CREATE INDEX IF NOT EXISTS bilhete_voo_lugar_idx
ON bilhete (voo_id, lugar, no_serie);`
