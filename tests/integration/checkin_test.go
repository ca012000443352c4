package integration

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"aviacao/internal/repository"
)

func TestCheckin_Success(t *testing.T) {
	client := RequireAPI(t)

	vooID, ok := FindBookableFlight(t, client)
	if !ok {
		t.Skip("No bookable flight in the dataset")
	}

	req := NewPurchaseRequest("123456789", "Eva Lopes")
	result, _, status := client.Purchase(t, vooID, req)
	if status != http.StatusCreated {
		t.Fatalf("Purchase failed with %d", status)
	}
	ticketID := result.BilhetesComprados[0].IDBilhete

	LogTestStep(t, "Checking in ticket %d", ticketID)
	checkin, _, status := client.CheckIn(t, ticketID)

	if status != http.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	if checkin.BilheteID != ticketID {
		t.Fatalf("Check-in answered for ticket %d, asked for %d", checkin.BilheteID, ticketID)
	}
	if checkin.LugarAtribuido == "" || checkin.AviaoNoSerie == "" {
		t.Fatalf("Check-in missing seat or plane: %+v", checkin)
	}
	LogTestResult(t, "Ticket %d got seat %s on plane %s", ticketID, checkin.LugarAtribuido, checkin.AviaoNoSerie)
}

func TestCheckin_Twice(t *testing.T) {
	client := RequireAPI(t)

	vooID, ok := FindBookableFlight(t, client)
	if !ok {
		t.Skip("No bookable flight in the dataset")
	}

	req := NewPurchaseRequest("123456789", "Filipe Martins")
	result, _, status := client.Purchase(t, vooID, req)
	if status != http.StatusCreated {
		t.Fatalf("Purchase failed with %d", status)
	}
	ticketID := result.BilhetesComprados[0].IDBilhete

	first, _, status := client.CheckIn(t, ticketID)
	if status != http.StatusOK {
		t.Fatalf("First check-in failed with %d", status)
	}

	_, env, status := client.CheckIn(t, ticketID)
	if status != http.StatusConflict {
		t.Fatalf("Second check-in: expected 409, got %d", status)
	}
	if !strings.Contains(env.Message, first.LugarAtribuido) {
		t.Fatalf("Conflict message should name the assigned seat %q: %q", first.LugarAtribuido, env.Message)
	}
}

func TestCheckin_UnknownTicket(t *testing.T) {
	client := RequireAPI(t)

	_, env, status := client.CheckIn(t, 999999999)

	if status != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown ticket, got %d", status)
	}
	if env.Status != "error" {
		t.Fatalf("Expected error envelope, got %+v", env)
	}
}

// Concurrent check-ins on the same flight must produce distinct seats:
// the flight-level serialization closes the race between the occupancy
// scan and the seat write.
func TestCheckin_ConcurrentDistinctSeats(t *testing.T) {
	client := RequireAPI(t)

	vooID, ok := FindBookableFlight(t, client)
	if !ok {
		t.Skip("No bookable flight in the dataset")
	}

	const passengers = 6
	names := []string{
		"Helena Pereira", "Ivo Ribeiro", "Joana Sousa",
		"Luís Teixeira", "Marta Almeida", "Nuno Ferreira",
	}

	var ticketIDs []int64
	for i := 0; i < passengers; i++ {
		req := NewPurchaseRequest("123456789", names[i])
		result, env, status := client.Purchase(t, vooID, req)
		if status == http.StatusConflict {
			t.Skipf("Flight %d filled up mid-test: %s", vooID, env.Message)
		}
		if status != http.StatusCreated {
			t.Fatalf("Purchase %d failed with %d", i, status)
		}
		ticketIDs = append(ticketIDs, result.BilhetesComprados[0].IDBilhete)
	}

	LogTestStep(t, "Checking in %d tickets concurrently on flight %d", len(ticketIDs), vooID)

	var (
		mu    sync.Mutex
		seats = make(map[string]int64)
		wg    sync.WaitGroup
	)
	for _, id := range ticketIDs {
		wg.Add(1)
		go func(ticketID int64) {
			defer wg.Done()
			checkin, _, status := client.CheckIn(t, ticketID)
			if status != http.StatusOK {
				// Running out of seats is a legitimate outcome; a
				// duplicate assignment below is not.
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if other, dup := seats[checkin.LugarAtribuido]; dup {
				t.Errorf("Seat %s assigned to both ticket %d and %d",
					checkin.LugarAtribuido, other, ticketID)
				return
			}
			seats[checkin.LugarAtribuido] = ticketID
		}(id)
	}
	wg.Wait()

	LogTestResult(t, "%d concurrent check-ins produced %d distinct seats", len(ticketIDs), len(seats))
}

func TestCheckin_DepartedFlight(t *testing.T) {
	client := RequireAPI(t)
	db := RequireDB(t)

	_, bilheteID := SeedDepartedFlight(t, db)

	LogTestStep(t, "Checking in ticket %d on a departed flight", bilheteID)
	_, env, status := client.CheckIn(t, bilheteID)

	if status != http.StatusConflict {
		t.Fatalf("Expected 409 for a departed flight, got %d", status)
	}
	if !strings.Contains(env.Message, "departed") {
		t.Fatalf("Expected a departed-flight message, got %q", env.Message)
	}
	LogTestResult(t, "Departed flight refused the check-in")
}

// The check-in response and the stored ticket row must agree: the seat
// and plane the API reports are the ones persisted on the bilhete.
func TestCheckin_PersistsAssignment(t *testing.T) {
	client := RequireAPI(t)
	db := RequireDB(t)

	vooID, ok := FindBookableFlight(t, client)
	if !ok {
		t.Skip("No bookable flight in the dataset")
	}

	req := NewPurchaseRequest("123456789", "Ines Rocha")
	result, _, status := client.Purchase(t, vooID, req)
	if status != http.StatusCreated {
		t.Fatalf("Purchase failed with %d", status)
	}
	ticketID := result.BilhetesComprados[0].IDBilhete

	checkin, _, status := client.CheckIn(t, ticketID)
	if status != http.StatusOK {
		t.Fatalf("Check-in failed with %d", status)
	}

	tickets := repository.NewTicketRepository(db)
	ticket, err := tickets.GetByID(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("Reading ticket %d back: %v", ticketID, err)
	}
	if ticket == nil {
		t.Fatalf("Ticket %d vanished after check-in", ticketID)
	}
	if ticket.Lugar == nil || *ticket.Lugar != checkin.LugarAtribuido {
		t.Fatalf("Stored seat %v does not match reported seat %s", ticket.Lugar, checkin.LugarAtribuido)
	}
	if ticket.NoSerie == nil || *ticket.NoSerie != checkin.AviaoNoSerie {
		t.Fatalf("Stored plane %v does not match reported plane %s", ticket.NoSerie, checkin.AviaoNoSerie)
	}
	LogTestResult(t, "Ticket %d stored with seat %s on plane %s", ticketID, *ticket.Lugar, *ticket.NoSerie)
}
