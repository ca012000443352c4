package handlers

import (
	"net/http"

	"aviacao/internal/cache"
	apperrors "aviacao/internal/errors"
	"aviacao/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services     *service.Services
	valkeyClient *cache.ValkeyClient
}

// NewHandlers builds the handler set. valkeyClient may be nil; listing
// endpoints then skip the cache and hit storage directly.
func NewHandlers(services *service.Services, valkeyClient *cache.ValkeyClient) *Handlers {
	return &Handlers{
		services:     services,
		valkeyClient: valkeyClient,
	}
}

// Ping - GET /ping
// Liveness probe, no storage involved
func (h *Handlers) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "pong"})
}

// statusCode maps the error taxonomy onto HTTP
func statusCode(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.Error(err)
	c.JSON(statusCode(err), gin.H{
		"status":  "error",
		"message": apperrors.MessageOf(err),
	})
}
