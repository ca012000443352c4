package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"aviacao/internal/models"
)

func TestAPI_Ping(t *testing.T) {
	client := RequireAPI(t)

	LogTestStep(t, "Testing liveness endpoint")
	env := client.Ping(t)

	if env.Status != "success" || env.Message != "pong" {
		t.Fatalf("Unexpected ping response: %+v", env)
	}
	LogTestResult(t, "API is alive")
}

func TestAPI_ListAirports(t *testing.T) {
	client := RequireAPI(t)

	LogTestStep(t, "Testing airports listing")
	airports := client.ListAirports(t)

	if len(airports) == 0 {
		t.Skip("No airports in the system, dataset not generated")
	}

	// Ordered by name
	for i := 1; i < len(airports); i++ {
		if airports[i-1].Nome > airports[i].Nome {
			t.Fatalf("Airports not ordered by name: %q before %q", airports[i-1].Nome, airports[i].Nome)
		}
	}
	LogTestResult(t, "Found %d airports ordered by name", len(airports))
}

func TestAPI_ListDepartures_InvalidCode(t *testing.T) {
	client := RequireAPI(t)

	for _, code := range []string{"lis", "LISB", "L1"} {
		env, status := client.ListDepartures(t, code)

		if status != http.StatusBadRequest {
			t.Fatalf("Code %q: expected 400, got %d", code, status)
		}
		if env.Status != "error" {
			t.Fatalf("Code %q: expected error envelope, got %+v", code, env)
		}
	}
}

func TestAPI_ListDepartures_UnknownAirport(t *testing.T) {
	client := RequireAPI(t)

	env, status := client.ListDepartures(t, "XXX")

	if status != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown airport, got %d", status)
	}
	if env.Status != "error" {
		t.Fatalf("Expected error envelope, got %+v", env)
	}
}

func TestAPI_NextAvailableFlights_SameAirport(t *testing.T) {
	client := RequireAPI(t)

	env, status := client.NextAvailableFlights(t, "LIS", "LIS")

	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400 for equal airports, got %d", status)
	}
	if env.Status != "error" {
		t.Fatalf("Expected error envelope, got %+v", env)
	}
}

func TestAPI_NextAvailableFlights_UnknownAirports(t *testing.T) {
	client := RequireAPI(t)

	env, status := client.NextAvailableFlights(t, "XXX", "YYY")

	if status != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown airports, got %d", status)
	}
	if env.Status != "error" {
		t.Fatalf("Expected error envelope, got %+v", env)
	}
}

func TestAPI_NextAvailableFlights_Limit(t *testing.T) {
	client := RequireAPI(t)

	airports := client.ListAirports(t)
	codes := airportCodes(t, client, airports)

	LogTestStep(t, "Checking the three-flight cap on every route")
	for _, origin := range codes {
		for _, dest := range codes {
			if origin == dest {
				continue
			}
			env, status := client.NextAvailableFlights(t, origin, dest)
			if status != http.StatusOK {
				t.Fatalf("Route %s-%s: expected 200, got %d", origin, dest, status)
			}

			var flights []models.RouteFlightItem
			if err := json.Unmarshal(env.Data, &flights); err != nil {
				t.Fatalf("Route %s-%s: bad data payload: %v", origin, dest, err)
			}
			if len(flights) > 3 {
				t.Fatalf("Route %s-%s: got %d flights, cap is 3", origin, dest, len(flights))
			}
		}
	}
	LogTestResult(t, "All routes respect the three-flight cap")
}
