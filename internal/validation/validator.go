package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"aviacao/internal/models"
)

// SmokeValidator drives a running API instance through every endpoint
// and checks the response contracts. Only non-mutating requests and
// requests that fail validation are sent, so it is safe against a
// production dataset.
type SmokeValidator struct {
	baseURL string
	client  *http.Client
}

func NewSmokeValidator(baseURL string) *SmokeValidator {
	return &SmokeValidator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ValidateAll runs every endpoint check
func (v *SmokeValidator) ValidateAll() error {
	log.Println("Validating API endpoint contracts...")

	if err := v.validatePing(); err != nil {
		return fmt.Errorf("ping validation failed: %w", err)
	}
	if err := v.validateAirports(); err != nil {
		return fmt.Errorf("airports validation failed: %w", err)
	}
	if err := v.validateDepartures(); err != nil {
		return fmt.Errorf("departures validation failed: %w", err)
	}
	if err := v.validateRoutes(); err != nil {
		return fmt.Errorf("routes validation failed: %w", err)
	}
	if err := v.validatePurchase(); err != nil {
		return fmt.Errorf("purchase validation failed: %w", err)
	}
	if err := v.validateCheckin(); err != nil {
		return fmt.Errorf("checkin validation failed: %w", err)
	}

	log.Println("All endpoints passed validation")
	return nil
}

func (v *SmokeValidator) validatePing() error {
	env, status, err := v.get("/ping")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("GET /ping: expected 200, got %d", status)
	}
	if env.Status != "success" || env.Message != "pong" {
		return fmt.Errorf("GET /ping: unexpected envelope %+v", env)
	}
	return nil
}

func (v *SmokeValidator) validateAirports() error {
	env, status, err := v.get("/")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("GET /: expected 200, got %d", status)
	}

	var airports []models.AirportListItem
	if err := json.Unmarshal(env.Data, &airports); err != nil {
		return fmt.Errorf("GET /: data is not an airport list: %w", err)
	}
	for i := 1; i < len(airports); i++ {
		if airports[i-1].Nome > airports[i].Nome {
			return fmt.Errorf("GET /: airports not ordered by name")
		}
	}
	return nil
}

func (v *SmokeValidator) validateDepartures() error {
	// Malformed code
	if _, status, err := v.get("/voos/xx1/"); err != nil {
		return err
	} else if status != http.StatusBadRequest {
		return fmt.Errorf("GET /voos/xx1/: expected 400, got %d", status)
	}

	// Unknown airport
	if _, status, err := v.get("/voos/QQQ/"); err != nil {
		return err
	} else if status != http.StatusNotFound {
		return fmt.Errorf("GET /voos/QQQ/: expected 404, got %d", status)
	}

	return nil
}

func (v *SmokeValidator) validateRoutes() error {
	// Equal airports
	if _, status, err := v.get("/voos/LIS/LIS/"); err != nil {
		return err
	} else if status != http.StatusBadRequest {
		return fmt.Errorf("GET /voos/LIS/LIS/: expected 400, got %d", status)
	}

	// Unknown airports
	if _, status, err := v.get("/voos/QQQ/WWW/"); err != nil {
		return err
	} else if status != http.StatusNotFound {
		return fmt.Errorf("GET /voos/QQQ/WWW/: expected 404, got %d", status)
	}

	return nil
}

func (v *SmokeValidator) validatePurchase() error {
	// Invalid NIF is rejected before any transaction
	badNIF := models.PurchaseRequest{NIFCliente: "12AB"}
	if _, status, err := v.post("/compra/1/", badNIF); err != nil {
		return err
	} else if status != http.StatusBadRequest {
		return fmt.Errorf("POST /compra/1/ (bad NIF): expected 400, got %d", status)
	}

	// Unknown flight with a valid payload
	primClasse := false
	req := models.PurchaseRequest{
		NIFCliente: "123456789",
		BilhetesAComprar: []models.PurchaseTicketRequest{
			{NomePassageiro: "Smoke Test", PrimClasse: &primClasse},
		},
	}
	if _, status, err := v.post("/compra/999999999/", req); err != nil {
		return err
	} else if status != http.StatusNotFound {
		return fmt.Errorf("POST /compra/999999999/: expected 404, got %d", status)
	}

	return nil
}

func (v *SmokeValidator) validateCheckin() error {
	if _, status, err := v.post("/checkin/999999999/", nil); err != nil {
		return err
	} else if status != http.StatusNotFound {
		return fmt.Errorf("POST /checkin/999999999/: expected 404, got %d", status)
	}

	if _, status, err := v.post("/checkin/abc/", nil); err != nil {
		return err
	} else if status != http.StatusBadRequest {
		return fmt.Errorf("POST /checkin/abc/: expected 400, got %d", status)
	}

	return nil
}

func (v *SmokeValidator) get(path string) (*envelope, int, error) {
	resp, err := v.client.Get(v.baseURL + path)
	if err != nil {
		return nil, 0, err
	}
	return v.decode(resp)
}

func (v *SmokeValidator) post(path string, body interface{}) (*envelope, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(payload)
	}
	resp, err := v.client.Post(v.baseURL+path, "application/json", reader)
	if err != nil {
		return nil, 0, err
	}
	return v.decode(resp)
}

func (v *SmokeValidator) decode(resp *http.Response) (*envelope, int, error) {
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("invalid JSON envelope: %w", err)
	}
	return &env, resp.StatusCode, nil
}
