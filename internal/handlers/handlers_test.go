package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aviacao/internal/models"
	"aviacao/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupRouter wires the handlers with nil repositories. Only request
// paths that fail validation before touching storage are exercised here;
// everything that needs a database lives in tests/integration.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	services := &service.Services{
		Availability: service.NewAvailabilityService(nil, nil, time.UTC),
		Bookings:     service.NewBookingService(nil, nil),
		Checkins:     service.NewCheckinService(nil, nil),
	}
	h := NewHandlers(services, nil)

	r := gin.New()
	r.GET("/ping", h.Ping)
	r.GET("/", h.ListAirports)
	r.GET("/voos/:partida/", h.ListDepartures)
	r.GET("/voos/:partida/:chegada/", h.NextAvailableFlights)
	r.POST("/compra/:voo_id/", h.PurchaseTickets)
	r.POST("/checkin/:bilhete_id/", h.CheckIn)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPing(t *testing.T) {
	r := setupRouter()

	w := doRequest(t, r, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "pong", body["message"])
}

func TestListDeparturesInvalidCode(t *testing.T) {
	r := setupRouter()

	for _, code := range []string{"lis", "LISB", "L1S", "12"} {
		w := doRequest(t, r, http.MethodGet, "/voos/"+code+"/", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, "code %q", code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, "error", body["status"])
		assert.Contains(t, body["message"], "3 uppercase letters")
	}
}

func TestNextAvailableFlightsInvalidCodes(t *testing.T) {
	r := setupRouter()

	w := doRequest(t, r, http.MethodGet, "/voos/lis/OPO/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodGet, "/voos/LIS/OPOR/", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNextAvailableFlightsSameAirport(t *testing.T) {
	r := setupRouter()

	w := doRequest(t, r, http.MethodGet, "/voos/LIS/LIS/", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "cannot be the same")
}

func TestPurchaseTicketsBadFlightID(t *testing.T) {
	r := setupRouter()

	w := doRequest(t, r, http.MethodPost, "/compra/abc/", models.PurchaseRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseTicketsMissingBody(t *testing.T) {
	r := setupRouter()

	w := doRequest(t, r, http.MethodPost, "/compra/1/", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "error", body["status"])
}

func TestPurchaseTicketsInvalidNIF(t *testing.T) {
	r := setupRouter()

	primClasse := false
	req := models.PurchaseRequest{
		NIFCliente: "12345",
		BilhetesAComprar: []models.PurchaseTicketRequest{
			{NomePassageiro: "Ana Silva", PrimClasse: &primClasse},
		},
	}
	w := doRequest(t, r, http.MethodPost, "/compra/1/", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Contains(t, body["message"], "NIF")
}

func TestPurchaseTicketsEmptyList(t *testing.T) {
	r := setupRouter()

	req := models.PurchaseRequest{NIFCliente: "123456789"}
	w := doRequest(t, r, http.MethodPost, "/compra/1/", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Contains(t, body["message"], "List of tickets")
}

func TestPurchaseTicketsMissingClass(t *testing.T) {
	r := setupRouter()

	req := models.PurchaseRequest{
		NIFCliente: "123456789",
		BilhetesAComprar: []models.PurchaseTicketRequest{
			{NomePassageiro: "Ana Silva"},
		},
	}
	w := doRequest(t, r, http.MethodPost, "/compra/1/", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	assert.Contains(t, body["message"], "index 0")
}

func TestCheckInBadTicketID(t *testing.T) {
	r := setupRouter()

	for _, id := range []string{"abc", "0", "-5"} {
		w := doRequest(t, r, http.MethodPost, "/checkin/"+id+"/", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
	}
}
