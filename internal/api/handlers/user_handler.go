// server/internal/api/handlers/user_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"asset-verse-api-server/internal/engine"
	"asset-verse-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Engine *engine.Engine
	Users  store.UserStore
}

// GetMe returns the calling account's own record.
func (h *UserHandler) GetMe(c *gin.Context) {
	email := c.GetString("user_email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Users.FindUser(ctx, email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetMyEmployees lists the employees affiliated with the calling HR.
func (h *UserHandler) GetMyEmployees(c *gin.Context) {
	hrEmail := c.GetString("user_email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	employees, err := h.Users.FindEmployeesByHR(ctx, hrEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}

// RemoveEmployee revokes an employee from the calling HR's company: their
// assignments from this HR are restocked, the affiliation is removed and the
// employee counter is decremented.
func (h *UserHandler) RemoveEmployee(c *gin.Context) {
	hrEmail := c.GetString("user_email")
	employeeEmail := c.Param("email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Engine.RemoveEmployee(ctx, hrEmail, employeeEmail); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee removed successfully"})
}

// Reconcile recomputes the calling HR's derived counters from the source
// collections and reports what was repaired.
func (h *UserHandler) Reconcile(c *gin.Context) {
	hrEmail := c.GetString("user_email")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	report, err := h.Engine.Reconcile(ctx, hrEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
