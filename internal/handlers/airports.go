package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"aviacao/internal/cache"

	"github.com/gin-gonic/gin"
)

// ListAirports - GET /
// All airports ordered by name. The rendered response is cached whole:
// the table only changes on offline provisioning, so a short TTL is safe.
func (h *Handlers) ListAirports(c *gin.Context) {
	ctx := c.Request.Context()

	if h.valkeyClient != nil {
		if raw, err := h.valkeyClient.GetRaw(ctx, cache.AirportsKey()); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
			return
		}
	}

	airports, err := h.services.Availability.ListAirports(ctx)
	if err != nil {
		slog.Error("Failed to list airports", "error", err)
		respondError(c, err)
		return
	}

	body := gin.H{"status": "success", "data": airports}
	if h.valkeyClient != nil {
		if raw, err := json.Marshal(body); err == nil {
			if err := h.valkeyClient.SetRaw(ctx, cache.AirportsKey(), raw); err != nil {
				slog.Warn("Failed to cache airport list", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, body)
}
