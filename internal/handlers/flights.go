package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"aviacao/internal/cache"

	"github.com/gin-gonic/gin"
)

// ListDepartures - GET /voos/:partida/
// Flights leaving the airport within the next 12 hours
func (h *Handlers) ListDepartures(c *gin.Context) {
	ctx := c.Request.Context()
	partida := c.Param("partida")

	var cacheKey string
	if h.valkeyClient != nil {
		cacheKey = cache.DeparturesKey(partida)
		if raw, err := h.valkeyClient.GetRaw(ctx, cacheKey); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
			return
		}
	}

	flights, err := h.services.Availability.ListDepartures(ctx, partida)
	if err != nil {
		slog.Error("Failed to list departures", "error", err, "partida", partida)
		respondError(c, err)
		return
	}

	body := gin.H{"status": "success", "data": flights}
	if len(flights) == 0 {
		body["data"] = []any{}
		body["message"] = fmt.Sprintf("Não existem voos programados partindo de %s nas próximas 12 horas.", partida)
	}

	if h.valkeyClient != nil {
		if raw, err := json.Marshal(body); err == nil {
			if err := h.valkeyClient.SetRaw(ctx, cacheKey, raw); err != nil {
				slog.Warn("Failed to cache departures", "error", err, "partida", partida)
			}
		}
	}

	c.JSON(http.StatusOK, body)
}

// NextAvailableFlights - GET /voos/:partida/:chegada/
// Up to three future flights on the route with seats remaining. The
// message tells an unserved route apart from a fully booked one.
func (h *Handlers) NextAvailableFlights(c *gin.Context) {
	ctx := c.Request.Context()
	partida := c.Param("partida")
	chegada := c.Param("chegada")

	var cacheKey string
	if h.valkeyClient != nil {
		cacheKey = cache.RouteKey(partida, chegada)
		if raw, err := h.valkeyClient.GetRaw(ctx, cacheKey); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
			return
		}
	}

	flights, routeExists, err := h.services.Availability.NextAvailable(ctx, partida, chegada)
	if err != nil {
		slog.Error("Failed to list available flights", "error", err,
			"partida", partida, "chegada", chegada)
		respondError(c, err)
		return
	}

	body := gin.H{"status": "success", "data": flights}
	switch {
	case !routeExists:
		body["data"] = []any{}
		body["message"] = "Não existem voos programados para este trajeto."
	case len(flights) == 0:
		body["data"] = []any{}
		body["message"] = "Todos os voos estão lotados."
	}

	if h.valkeyClient != nil {
		if raw, err := json.Marshal(body); err == nil {
			if err := h.valkeyClient.SetRaw(ctx, cacheKey, raw); err != nil {
				slog.Warn("Failed to cache available flights", "error", err,
					"partida", partida, "chegada", chegada)
			}
		}
	}

	c.JSON(http.StatusOK, body)
}
