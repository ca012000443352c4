package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"aviacao/internal/config"
	"aviacao/internal/database"
	"aviacao/internal/logger"
	"aviacao/internal/models"
)

var (
	clearExisting = flag.Bool("clear", false, "Delete existing data before generating")
	dryRun        = flag.Bool("dry-run", false, "Show what would be generated without making changes")
	days          = flag.Int("days", 45, "Number of days of flight schedule to generate")
	numPlanes     = flag.Int("planes", 12, "Number of aircraft to generate")
	numSales      = flag.Int("sales", 1000, "Number of historical sales to generate")
	seed          = flag.Int64("seed", 0, "Random seed")
)

type airportSpec struct {
	codigo, nome, cidade, pais string
}

// Two cities keep a second airport on purpose so route listings have
// same-city alternatives to distinguish.
var airports = []airportSpec{
	{"LHR", "London Heathrow", "London", "United Kingdom"},
	{"LGW", "London Gatwick", "London", "United Kingdom"},
	{"CDG", "Paris Charles de Gaulle", "Paris", "France"},
	{"ORY", "Paris Orly", "Paris", "France"},
	{"AMS", "Amsterdam Schiphol", "Amsterdam", "Netherlands"},
	{"FRA", "Frankfurt Airport", "Frankfurt", "Germany"},
	{"MAD", "Madrid Barajas", "Madrid", "Spain"},
	{"LIS", "Lisbon Airport", "Lisbon", "Portugal"},
	{"FCO", "Rome Fiumicino", "Rome", "Italy"},
	{"MUC", "Munich Airport", "Munich", "Germany"},
	{"ZRH", "Zurich Airport", "Zurich", "Switzerland"},
	{"BCN", "Barcelona El Prat", "Barcelona", "Spain"},
}

type modelSpec struct {
	name           string
	rows           int
	letters        string
	firstClassFrac float64
}

// Row counts stay below 100 so every seat label fits ^[0-9]{1,2}[A-Z]$
var planeModels = []modelSpec{
	{"Airbus A320neo", 30, "ABCDEF", 0.10},
	{"Boeing 737-800", 28, "ABCDEF", 0.10},
	{"Embraer E195-E2", 25, "ABCD", 0.08},
	{"Boeing 777-300ER", 42, "ABCDEFGHJ", 0.10},
}

var firstNames = []string{
	"Ana", "Bruno", "Carla", "Diogo", "Eva", "Filipe", "Helena", "Ivo",
	"Joana", "Luís", "Marta", "Nuno", "Olívia", "Pedro", "Rita", "Sofia",
	"Tiago", "Vera",
}

var lastNames = []string{
	"Almeida", "Costa", "Dias", "Ferreira", "Gomes", "Lopes", "Martins",
	"Oliveira", "Pereira", "Ribeiro", "Santos", "Silva", "Sousa", "Teixeira",
}

type plane struct {
	noSerie string
	model   modelSpec

	location    string
	availableAt time.Time
}

type seat struct {
	lugar      string
	primClasse bool
}

type flight struct {
	id          int64
	noSerie     string
	horaPartida time.Time
	horaChegada time.Time
	partida     string
	chegada     string
}

type Generator struct {
	db  *database.DB
	rng *rand.Rand

	planes     []plane
	planeSeats map[string][]seat
	flights    []flight
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	slog.Info("Starting data generator...",
		"days", *days, "planes", *numPlanes, "sales", *numSales, "dry_run", *dryRun)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	g := &Generator{
		db:         db,
		rng:        rand.New(rand.NewSource(*seed)),
		planeSeats: make(map[string][]seat),
	}

	if err := g.Run(); err != nil {
		slog.Error("Data generation failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Data generation completed successfully!")
}

func (g *Generator) Run() error {
	g.buildPlanes()
	g.buildSchedule()

	totalSeats := 0
	for _, seats := range g.planeSeats {
		totalSeats += len(seats)
	}
	slog.Info("Generated dataset",
		"airports", len(airports),
		"planes", len(g.planes),
		"seats", totalSeats,
		"flights", len(g.flights))

	if *dryRun {
		slog.Info("Dry run, nothing written")
		return nil
	}

	if *clearExisting {
		if err := g.clear(); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	if err := g.insertAirports(); err != nil {
		return err
	}
	if err := g.insertPlanes(); err != nil {
		return err
	}
	if err := g.insertFlights(); err != nil {
		return err
	}
	if err := g.insertSales(); err != nil {
		return err
	}

	return nil
}

func (g *Generator) buildPlanes() {
	start := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < *numPlanes; i++ {
		m := planeModels[i%len(planeModels)]
		noSerie := fmt.Sprintf("%s-%03d-%08d", modelPrefix(m.name), i+1, g.rng.Intn(100000000))

		firstClassRows := int(math.Ceil(float64(m.rows) * m.firstClassFrac))
		var seats []seat
		for row := 1; row <= m.rows; row++ {
			for _, letter := range m.letters {
				seats = append(seats, seat{
					lugar:      fmt.Sprintf("%d%c", row, letter),
					primClasse: row <= firstClassRows,
				})
			}
		}

		g.planes = append(g.planes, plane{
			noSerie:     noSerie,
			model:       m,
			location:    airports[g.rng.Intn(len(airports))].codigo,
			availableAt: start.Add(time.Duration(g.rng.Intn(6*60)) * time.Minute),
		})
		g.planeSeats[noSerie] = seats
	}
}

// buildSchedule walks each plane through the calendar: fly somewhere,
// turn around, fly again. Sequential per-plane times satisfy the
// per-plane uniqueness constraints; a key set guards the per-route ones.
func (g *Generator) buildSchedule() {
	horizon := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, *days)
	usedRouteSlots := make(map[string]bool)

	for i := range g.planes {
		p := &g.planes[i]
		for {
			departure := p.availableAt.Add(time.Duration(30+g.rng.Intn(120)) * time.Minute)
			if !departure.Before(horizon) {
				break
			}

			dest := g.randomDestination(p.location)
			duration := time.Duration(60+g.rng.Intn(210)) * time.Minute
			arrival := departure.Add(duration)

			depKey := fmt.Sprintf("%s|%s|%s", departure.Format(time.RFC3339), p.location, dest)
			arrKey := fmt.Sprintf("%s|%s|%s", arrival.Format(time.RFC3339), p.location, dest)
			if usedRouteSlots[depKey] || usedRouteSlots[arrKey] {
				p.availableAt = p.availableAt.Add(time.Minute)
				continue
			}
			usedRouteSlots[depKey] = true
			usedRouteSlots[arrKey] = true

			g.flights = append(g.flights, flight{
				noSerie:     p.noSerie,
				horaPartida: departure,
				horaChegada: arrival,
				partida:     p.location,
				chegada:     dest,
			})

			p.location = dest
			p.availableAt = arrival.Add(time.Duration(60+g.rng.Intn(120)) * time.Minute)
		}
	}
}

func (g *Generator) randomDestination(from string) string {
	for {
		dest := airports[g.rng.Intn(len(airports))].codigo
		if dest != from {
			return dest
		}
	}
}

func modelPrefix(name string) string {
	prefix := ""
	for _, r := range name {
		if r == ' ' || r == '-' {
			break
		}
		prefix += string(r)
	}
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return prefix
}

func (g *Generator) clear() error {
	slog.Info("Clearing existing data...")
	for _, table := range []string{"bilhete", "venda", "voo", "assento", "aviao", "aeroporto"} {
		if _, err := g.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (g *Generator) insertAirports() error {
	for _, a := range airports {
		_, err := g.db.Exec(`
			INSERT INTO aeroporto (codigo, nome, cidade, pais)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (codigo) DO NOTHING`,
			a.codigo, a.nome, a.cidade, a.pais)
		if err != nil {
			return fmt.Errorf("failed to insert airport %s: %w", a.codigo, err)
		}
	}
	slog.Info("Inserted airports", "count", len(airports))
	return nil
}

func (g *Generator) insertPlanes() error {
	tx, err := g.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	seatCount := 0
	for _, p := range g.planes {
		if _, err := tx.Exec(`INSERT INTO aviao (no_serie, modelo) VALUES ($1, $2)`,
			p.noSerie, p.model.name); err != nil {
			return fmt.Errorf("failed to insert plane %s: %w", p.noSerie, err)
		}
		for _, s := range g.planeSeats[p.noSerie] {
			if _, err := tx.Exec(`INSERT INTO assento (lugar, no_serie, prim_classe) VALUES ($1, $2, $3)`,
				s.lugar, p.noSerie, s.primClasse); err != nil {
				return fmt.Errorf("failed to insert seat %s/%s: %w", s.lugar, p.noSerie, err)
			}
			seatCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("Inserted planes and seats", "planes", len(g.planes), "seats", seatCount)
	return nil
}

func (g *Generator) insertFlights() error {
	tx, err := g.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range g.flights {
		f := &g.flights[i]
		err := tx.QueryRow(`
			INSERT INTO voo (no_serie, hora_partida, hora_chegada, partida, chegada)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			f.noSerie, f.horaPartida, f.horaChegada, f.partida, f.chegada,
		).Scan(&f.id)
		if err != nil {
			return fmt.Errorf("failed to insert flight %s %s->%s: %w",
				f.noSerie, f.partida, f.chegada, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("Inserted flights", "count", len(g.flights))
	return nil
}

// insertSales creates historical purchases against the generated
// flights. Roughly half the tickets also get a seat assigned, standing
// in for passengers that already checked in.
func (g *Generator) insertSales() error {
	if len(g.flights) == 0 || *numSales == 0 {
		return nil
	}

	tx, err := g.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Track seats taken per flight so assigned (lugar, no_serie) pairs
	// never collide within one flight.
	takenSeats := make(map[int64]map[string]bool)
	soldCount := make(map[int64]int)
	ticketCount := 0

	for i := 0; i < *numSales; i++ {
		f := g.flights[g.rng.Intn(len(g.flights))]
		seats := g.planeSeats[f.noSerie]
		if soldCount[f.id] >= len(seats) {
			continue
		}

		nif := fmt.Sprintf("%09d", g.rng.Intn(1000000000))
		balcao := f.partida
		hora := f.horaPartida.Add(-time.Duration(1+g.rng.Intn(30*24)) * time.Hour)

		var codigoReserva int64
		err := tx.QueryRow(`
			INSERT INTO venda (nif_cliente, balcao, hora)
			VALUES ($1, $2, $3) RETURNING codigo_reserva`,
			nif, balcao, hora,
		).Scan(&codigoReserva)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		if takenSeats[f.id] == nil {
			takenSeats[f.id] = make(map[string]bool)
		}

		nTickets := 1 + g.rng.Intn(3)
		usedNames := make(map[string]bool)
		for t := 0; t < nTickets && soldCount[f.id] < len(seats); t++ {
			name := g.passengerName()
			if usedNames[name] {
				continue
			}
			usedNames[name] = true

			primClasse := g.rng.Float64() < 0.15
			preco := models.TicketPrice(primClasse)

			// The plane is stamped at purchase, the seat only at check-in
			var lugar interface{}
			noSerie := f.noSerie
			if g.rng.Float64() < 0.5 {
				if s, ok := g.pickFreeSeat(seats, takenSeats[f.id], primClasse); ok {
					lugar = s
					takenSeats[f.id][s] = true
				}
			}

			_, err := tx.Exec(`
				INSERT INTO bilhete (voo_id, codigo_reserva, nome_passegeiro, preco, prim_classe, lugar, no_serie)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				f.id, codigoReserva, name, preco, primClasse, lugar, noSerie)
			if err != nil {
				return fmt.Errorf("failed to insert ticket: %w", err)
			}
			soldCount[f.id]++
			ticketCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("Inserted sales and tickets", "sales", *numSales, "tickets", ticketCount)
	return nil
}

func (g *Generator) pickFreeSeat(seats []seat, taken map[string]bool, primClasse bool) (string, bool) {
	offset := g.rng.Intn(len(seats))
	for i := 0; i < len(seats); i++ {
		s := seats[(offset+i)%len(seats)]
		if s.primClasse == primClasse && !taken[s.lugar] {
			return s.lugar, true
		}
	}
	return "", false
}

func (g *Generator) passengerName() string {
	return firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
}
