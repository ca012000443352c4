package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"aviacao/internal/middleware"
	"aviacao/internal/models"

	"github.com/gin-gonic/gin"
)

// PurchaseTickets - POST /compra/:voo_id/
// Buys one or more tickets on a flight under a single reservation code
func (h *Handlers) PurchaseTickets(c *gin.Context) {
	vooID, err := strconv.ParseInt(c.Param("voo_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Flight ID must be a positive integer.",
		})
		return
	}

	var req models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Request data missing or invalid (JSON).",
		})
		return
	}

	result, err := h.services.Bookings.Purchase(c.Request.Context(), vooID, &req)
	if err != nil {
		slog.Error("Failed to purchase tickets", "error", err, "voo_id", vooID)
		respondError(c, err)
		return
	}

	middleware.TicketsSold.Add(float64(len(result.Bilhetes)))

	c.JSON(http.StatusCreated, gin.H{
		"status":             "success",
		"message":            "Purchase successful.",
		"codigo_reserva":     result.CodigoReserva,
		"bilhetes_comprados": result.Bilhetes,
	})
}
