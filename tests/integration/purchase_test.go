package integration

import (
	"net/http"
	"testing"

	"aviacao/internal/models"
)

func TestPurchase_Success(t *testing.T) {
	client := RequireAPI(t)

	vooID, ok := FindBookableFlight(t, client)
	if !ok {
		t.Skip("No bookable flight in the dataset")
	}

	LogTestStep(t, "Purchasing two tickets on flight %d", vooID)
	req := NewPurchaseRequest("123456789", "Ana Silva", "Bruno Costa")
	result, _, status := client.Purchase(t, vooID, req)

	if status != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", status)
	}
	if result.CodigoReserva <= 0 {
		t.Fatalf("Expected a positive reservation code, got %d", result.CodigoReserva)
	}
	if len(result.BilhetesComprados) != 2 {
		t.Fatalf("Expected 2 tickets, got %d", len(result.BilhetesComprados))
	}
	for _, ticket := range result.BilhetesComprados {
		if ticket.Preco != models.PriceEconomy {
			t.Fatalf("Economy ticket priced %.2f, expected %.2f", ticket.Preco, models.PriceEconomy)
		}
		if ticket.Classe != models.ClassEconomyLabel {
			t.Fatalf("Economy ticket labeled %q", ticket.Classe)
		}
	}
	LogTestResult(t, "Reservation %d with %d tickets", result.CodigoReserva, len(result.BilhetesComprados))
}

func TestPurchase_FirstClassPrice(t *testing.T) {
	client := RequireAPI(t)

	vooID, ok := FindBookableFlight(t, client)
	if !ok {
		t.Skip("No bookable flight in the dataset")
	}

	primClasse := true
	req := models.PurchaseRequest{
		NIFCliente: "987654321",
		BilhetesAComprar: []models.PurchaseTicketRequest{
			{NomePassageiro: "Carla Dias", PrimClasse: &primClasse},
		},
	}
	result, _, status := client.Purchase(t, vooID, req)

	if status != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", status)
	}
	ticket := result.BilhetesComprados[0]
	if ticket.Preco != models.PriceFirstClass {
		t.Fatalf("First class ticket priced %.2f, expected %.2f", ticket.Preco, models.PriceFirstClass)
	}
	if ticket.Classe != models.ClassFirstLabel {
		t.Fatalf("First class ticket labeled %q", ticket.Classe)
	}
}

func TestPurchase_UnknownFlight(t *testing.T) {
	client := RequireAPI(t)

	req := NewPurchaseRequest("123456789", "Ana Silva")
	_, env, status := client.Purchase(t, 999999999, req)

	if status != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown flight, got %d", status)
	}
	if env.Status != "error" {
		t.Fatalf("Expected error envelope, got %+v", env)
	}
}

func TestPurchase_InvalidNIF(t *testing.T) {
	client := RequireAPI(t)

	req := NewPurchaseRequest("12AB", "Ana Silva")
	_, env, status := client.Purchase(t, 1, req)

	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid NIF, got %d", status)
	}
	if env.Status != "error" {
		t.Fatalf("Expected error envelope, got %+v", env)
	}
}

func TestPurchase_EmptyTicketList(t *testing.T) {
	client := RequireAPI(t)

	req := models.PurchaseRequest{NIFCliente: "123456789"}
	_, _, status := client.Purchase(t, 1, req)

	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400 for empty ticket list, got %d", status)
	}
}

// Duplicate passenger names within one reservation trip the storage
// uniqueness constraint, and the whole purchase must roll back.
func TestPurchase_DuplicatePassengerRollsBack(t *testing.T) {
	client := RequireAPI(t)

	vooID, ok := FindBookableFlight(t, client)
	if !ok {
		t.Skip("No bookable flight in the dataset")
	}

	req := NewPurchaseRequest("123456789", "Diogo Gomes", "Diogo Gomes")
	_, env, status := client.Purchase(t, vooID, req)

	if status != http.StatusConflict {
		t.Fatalf("Expected 409 for duplicate passenger, got %d", status)
	}
	if env.Status != "error" {
		t.Fatalf("Expected error envelope, got %+v", env)
	}
}

func TestPurchase_DepartedFlight(t *testing.T) {
	client := RequireAPI(t)
	db := RequireDB(t)

	vooID, _ := SeedDepartedFlight(t, db)

	LogTestStep(t, "Purchasing on departed flight %d", vooID)
	req := NewPurchaseRequest("123456789", "Carlos Tarde")
	_, env, status := client.Purchase(t, vooID, req)

	if status != http.StatusConflict {
		t.Fatalf("Expected 409 for a departed flight, got %d", status)
	}
	if env.Status != "error" {
		t.Fatalf("Expected error envelope, got %q", env.Status)
	}
	LogTestResult(t, "Departed flight rejected the sale: %s", env.Message)
}
