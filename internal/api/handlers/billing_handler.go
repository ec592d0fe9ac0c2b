// server/internal/api/handlers/billing_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"asset-verse-api-server/config"
	"asset-verse-api-server/internal/engine"
	"asset-verse-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	Engine  *engine.Engine
	Billing store.BillingStore
	Cfg     config.PaymentConfig
}

type CreateCheckoutSessionRequest struct {
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price" binding:"required,min=0"`
	EmployeeLimit int     `json:"employeeLimit" binding:"required,min=1"`
}

type PaymentSuccessRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// GetPackages lists the subscription plan catalog. Public.
func (h *BillingHandler) GetPackages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	packages, err := h.Billing.ListPackages(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query packages"})
		return
	}

	c.JSON(http.StatusOK, packages)
}

// CreateCheckoutSession opens a hosted-checkout session with the payment
// provider for the selected package and returns the session plus the URL the
// HR is redirected to.
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	hrEmail := c.GetString("user_email")

	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	session, checkoutURL, err := h.Engine.CreateCheckoutSession(ctx, hrEmail, req.Name, req.Price, req.EmployeeLimit, h.Cfg.SuccessURL, h.Cfg.CancelURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": session,
		"url":     checkoutURL,
	})
}

// PaymentSuccess finalizes a checkout session. Only a provider-confirmed
// "paid" status upgrades the subscription; anything else is reported back as
// a failure and never retried here.
func (h *BillingHandler) PaymentSuccess(c *gin.Context) {
	hrEmail := c.GetString("user_email")

	var req PaymentSuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	payment, err := h.Engine.UpgradeSubscription(ctx, hrEmail, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"payment": payment,
	})
}
