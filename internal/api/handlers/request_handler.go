// server/internal/api/handlers/request_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"asset-verse-api-server/internal/engine"
	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/socket"
	"asset-verse-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	Engine   *engine.Engine
	Requests store.RequestStore
	Hub      *socket.Hub
}

type CreateAssetRequestPayload struct {
	AssetID string `json:"assetId" binding:"required"`
	Note    string `json:"note"`
}

type TransitionRequestPayload struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// CreateRequest lets an employee ask for one unit of an asset. The owning
// HR's dashboard is notified over the websocket hub.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	employeeEmail := c.GetString("user_email")
	employeeName := c.GetString("user_name")

	var payload CreateAssetRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	request, err := h.Engine.CreateRequest(ctx, employeeEmail, employeeName, payload.AssetID, payload.Note)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Notify(request.HREmail, "request_created", request)
	}

	c.JSON(http.StatusCreated, request)
}

// GetHRRequests lists the incoming requests for the calling HR's assets,
// optionally filtered by ?status=.
func (h *RequestHandler) GetHRRequests(c *gin.Context) {
	hrEmail := c.GetString("user_email")
	status := c.Query("status")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	requests, err := h.Requests.FindRequestsByHR(ctx, hrEmail, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query asset requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// GetEmployeeRequests lists the calling employee's approved requests by
// default; ?status= selects another state, ?status=all returns everything.
func (h *RequestHandler) GetEmployeeRequests(c *gin.Context) {
	employeeEmail := c.GetString("user_email")

	status := c.DefaultQuery("status", models.StatusApproved)
	if status == "all" {
		status = ""
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	requests, err := h.Requests.FindRequestsByEmployee(ctx, employeeEmail, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query asset requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// TransitionRequest approves or rejects a pending request owned by the
// calling HR. The requesting employee is notified of the outcome.
func (h *RequestHandler) TransitionRequest(c *gin.Context) {
	hrEmail := c.GetString("user_email")
	requestID := c.Param("id")

	var payload TransitionRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	request, err := h.Engine.TransitionRequest(ctx, hrEmail, requestID, payload.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Notify(request.EmployeeEmail, "request_"+request.Status, request)
	}

	c.JSON(http.StatusOK, request)
}

// DeleteRequest removes a request owned by the calling HR, compensating the
// inventory and assignment effects if it had been approved.
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	hrEmail := c.GetString("user_email")
	requestID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.Engine.DeleteRequest(ctx, hrEmail, requestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}
