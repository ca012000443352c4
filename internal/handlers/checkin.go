package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"aviacao/internal/middleware"

	"github.com/gin-gonic/gin"
)

// CheckIn - POST /checkin/:bilhete_id/
// Assigns the lowest free seat of the ticket's class
func (h *Handlers) CheckIn(c *gin.Context) {
	bilheteID, err := strconv.ParseInt(c.Param("bilhete_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Ticket ID must be a positive integer.",
		})
		return
	}

	result, err := h.services.Checkins.CheckIn(c.Request.Context(), bilheteID)
	if err != nil {
		slog.Error("Failed to check in", "error", err, "bilhete_id", bilheteID)
		respondError(c, err)
		return
	}

	middleware.CheckinsCompleted.Inc()

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"message":         "Check-in successful.",
		"bilhete_id":      result.BilheteID,
		"lugar_atribuido": result.Lugar,
		"aviao_no_serie":  result.NoSerie,
	})
}
