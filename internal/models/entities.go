package models

import (
	"time"
)

// Airport represents a row of aeroporto. Airports are provisioned
// offline and are read-only from the service's perspective.
type Airport struct {
	Codigo string `json:"codigo" db:"codigo"`
	Nome   string `json:"nome" db:"nome"`
	Cidade string `json:"cidade" db:"cidade"`
	Pais   string `json:"pais" db:"pais"`
}

// Aircraft represents a row of aviao
type Aircraft struct {
	NoSerie string `json:"no_serie" db:"no_serie"`
	Modelo  string `json:"modelo" db:"modelo"`
}

// Seat represents a row of assento: one physical seat on one aircraft
type Seat struct {
	Lugar      string `json:"lugar" db:"lugar"`
	NoSerie    string `json:"no_serie" db:"no_serie"`
	PrimClasse bool   `json:"prim_classe" db:"prim_classe"`
}

// Flight represents a row of voo
type Flight struct {
	ID          int64     `json:"id" db:"id"`
	NoSerie     string    `json:"no_serie" db:"no_serie"`
	HoraPartida time.Time `json:"hora_partida" db:"hora_partida"`
	HoraChegada time.Time `json:"hora_chegada" db:"hora_chegada"`
	Partida     string    `json:"partida" db:"partida"`
	Chegada     string    `json:"chegada" db:"chegada"`
}

// Sale represents a row of venda: one reservation grouping one or more
// tickets under a generated reservation code
type Sale struct {
	CodigoReserva int64     `json:"codigo_reserva" db:"codigo_reserva"`
	NIFCliente    string    `json:"nif_cliente" db:"nif_cliente"`
	Balcao        string    `json:"balcao" db:"balcao"`
	Hora          time.Time `json:"hora" db:"hora"`
}

// Ticket represents a row of bilhete. Lugar and NoSerie stay NULL until
// check-in assigns a seat; the transition is one-way.
type Ticket struct {
	ID             int64   `json:"id" db:"id"`
	VooID          int64   `json:"voo_id" db:"voo_id"`
	CodigoReserva  int64   `json:"codigo_reserva" db:"codigo_reserva"`
	NomePassegeiro string  `json:"nome_passegeiro" db:"nome_passegeiro"`
	Preco          float64 `json:"preco" db:"preco"`
	PrimClasse     bool    `json:"prim_classe" db:"prim_classe"`
	Lugar          *string `json:"lugar" db:"lugar"`
	NoSerie        *string `json:"no_serie" db:"no_serie"`
}
