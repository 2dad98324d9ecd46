package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamewise/api/internal/repository"
	"gamewise/api/internal/service"
)

// writeServiceError maps the service error taxonomy to HTTP responses.
// Anything outside the taxonomy is logged with detail and answered with a
// bare "server error"; internals never cross the boundary.
func (h HandlerSet) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrCodeMismatch),
		errors.Is(err, service.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrEmailDelivery):
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrEmailDelivery.Error()})
	default:
		h.log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
