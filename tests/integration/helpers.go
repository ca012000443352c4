package integration

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"aviacao/internal/models"
)

// APIBaseURL points the suite at a running API instance. Override with
// API_BASE_URL when the server is not on the default port.
func APIBaseURL() string {
	if url := os.Getenv("API_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// RequireAPI skips the test when no API instance is reachable, so the
// suite stays green in environments without the full stack.
func RequireAPI(t *testing.T) *TestClient {
	t.Helper()

	client := NewTestClient(APIBaseURL())
	httpClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := httpClient.Get(client.BaseURL + "/ping")
	if err != nil {
		t.Skipf("API not reachable at %s: %v", client.BaseURL, err)
	}
	resp.Body.Close()
	return client
}

// FindBookableFlight scans all airport pairs for a flight that still
// has seats. Returns false when the dataset has nothing to sell.
func FindBookableFlight(t *testing.T, client *TestClient) (int64, bool) {
	t.Helper()

	airports := client.ListAirports(t)
	codes := airportCodes(t, client, airports)

	for _, origin := range codes {
		for _, dest := range codes {
			if origin == dest {
				continue
			}
			env, status := client.NextAvailableFlights(t, origin, dest)
			if status != http.StatusOK {
				continue
			}
			var flights []models.RouteFlightItem
			if err := json.Unmarshal(env.Data, &flights); err != nil || len(flights) == 0 {
				continue
			}
			return flights[0].VooID, true
		}
	}
	return 0, false
}

// airportCodes resolves the three-letter codes behind the airport list.
// The listing itself only carries names, so codes come from departures
// probing the well-known generator dataset.
func airportCodes(t *testing.T, client *TestClient, airports []models.AirportListItem) []string {
	t.Helper()

	known := []string{"LHR", "LGW", "CDG", "ORY", "AMS", "FRA", "MAD", "LIS", "FCO", "MUC", "ZRH", "BCN"}
	var codes []string
	for _, code := range known {
		_, status := client.ListDepartures(t, code)
		if status == http.StatusOK {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		t.Skipf("No known airports present, dataset not generated (found %d airports)", len(airports))
	}
	return codes
}

// NewPurchaseRequest builds a valid purchase payload
func NewPurchaseRequest(nif string, passengers ...string) models.PurchaseRequest {
	req := models.PurchaseRequest{NIFCliente: nif}
	for _, name := range passengers {
		primClasse := false
		req.BilhetesAComprar = append(req.BilhetesAComprar, models.PurchaseTicketRequest{
			NomePassageiro: name,
			PrimClasse:     &primClasse,
		})
	}
	return req
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
