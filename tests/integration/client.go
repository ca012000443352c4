package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"aviacao/internal/models"
)

// Envelope is the wire format shared by every endpoint
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// PurchaseResponse is the purchase success payload
type PurchaseResponse struct {
	Status            string                   `json:"status"`
	Message           string                   `json:"message"`
	CodigoReserva     int64                    `json:"codigo_reserva"`
	BilhetesComprados []models.PurchasedTicket `json:"bilhetes_comprados"`
}

// CheckinResponse is the check-in success payload
type CheckinResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	BilheteID      int64  `json:"bilhete_id"`
	LugarAtribuido string `json:"lugar_atribuido"`
	AviaoNoSerie   string `json:"aviao_no_serie"`
}

// TestClient provides typed methods for driving the API
type TestClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// Ping checks the liveness endpoint
func (c *TestClient) Ping(t *testing.T) Envelope {
	resp := c.makeRequest(t, "GET", "/ping", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var env Envelope
	decodeJSON(t, resp, &env)
	return env
}

// ListAirports lists all airports
func (c *TestClient) ListAirports(t *testing.T) []models.AirportListItem {
	resp := c.makeRequest(t, "GET", "/", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var env Envelope
	decodeJSON(t, resp, &env)

	var airports []models.AirportListItem
	if err := json.Unmarshal(env.Data, &airports); err != nil {
		t.Fatalf("Failed to decode airports: %v", err)
	}
	return airports
}

// ListDepartures lists flights leaving an airport in the next 12 hours.
// Returns the raw response for status-code assertions.
func (c *TestClient) ListDepartures(t *testing.T, code string) (*Envelope, int) {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/voos/%s/", code), nil)

	var env Envelope
	decodeJSON(t, resp, &env)
	return &env, resp.StatusCode
}

// NextAvailableFlights lists up to three available flights on a route
func (c *TestClient) NextAvailableFlights(t *testing.T, origin, dest string) (*Envelope, int) {
	resp := c.makeRequest(t, "GET", fmt.Sprintf("/voos/%s/%s/", origin, dest), nil)

	var env Envelope
	decodeJSON(t, resp, &env)
	return &env, resp.StatusCode
}

// Purchase buys tickets on a flight. Returns the decoded success
// payload when the API answers 201, otherwise the error envelope.
func (c *TestClient) Purchase(t *testing.T, vooID int64, req models.PurchaseRequest) (*PurchaseResponse, *Envelope, int) {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/compra/%d/", vooID), req)

	if resp.StatusCode == http.StatusCreated {
		var out PurchaseResponse
		decodeJSON(t, resp, &out)
		return &out, nil, resp.StatusCode
	}

	var env Envelope
	decodeJSON(t, resp, &env)
	return nil, &env, resp.StatusCode
}

// CheckIn assigns a seat to a ticket
func (c *TestClient) CheckIn(t *testing.T, bilheteID int64) (*CheckinResponse, *Envelope, int) {
	resp := c.makeRequest(t, "POST", fmt.Sprintf("/checkin/%d/", bilheteID), nil)

	if resp.StatusCode == http.StatusOK {
		var out CheckinResponse
		decodeJSON(t, resp, &out)
		return &out, nil, resp.StatusCode
	}

	var env Envelope
	decodeJSON(t, resp, &env)
	return nil, &env, resp.StatusCode
}
