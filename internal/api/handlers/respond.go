// server/internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"asset-verse-api-server/internal/engine"

	"github.com/gin-gonic/gin"
)

// statusForError maps the engine's failure kinds onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrUnavailable),
		errors.Is(err, engine.ErrDuplicateRequest),
		errors.Is(err, engine.ErrAlreadyProcessed),
		errors.Is(err, engine.ErrExhausted),
		errors.Is(err, engine.ErrQuantityBelowAssigned),
		errors.Is(err, engine.ErrLimitReached):
		return http.StatusConflict
	case errors.Is(err, engine.ErrUnprocessed):
		return http.StatusPaymentRequired
	case errors.Is(err, engine.ErrExternal):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
