// server/internal/engine/billing.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/payments"
	"asset-verse-api-server/internal/store"
)

// CreateCheckoutSession opens a hosted-checkout session with the payment
// provider and records it locally in the created state.
func (e *Engine) CreateCheckoutSession(ctx context.Context, hrEmail, packageName string, price float64, employeeLimit int, successURL, cancelURL string) (*models.CheckoutSession, string, error) {
	session, err := e.Payments.CreateSession(ctx, payments.SessionParams{
		Name:          packageName,
		Price:         price,
		EmployeeLimit: employeeLimit,
		CustomerEmail: hrEmail,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExternal, err)
	}

	record := &models.CheckoutSession{
		SessionID:     session.ID,
		HREmail:       hrEmail,
		PackageName:   packageName,
		Price:         price,
		EmployeeLimit: employeeLimit,
		Status:        models.SessionCreated,
		CreatedAt:     time.Now(),
	}
	if err := e.Billing.InsertSession(ctx, record); err != nil {
		return nil, "", err
	}
	return record, session.URL, nil
}

// UpgradeSubscription finalizes a checkout session. The provider is asked for
// the session's terminal status; anything other than "paid" is a no-op
// reported as ErrUnprocessed, never retried here. A paid session upgrades the
// HR's subscription exactly once and records the payment.
func (e *Engine) UpgradeSubscription(ctx context.Context, hrEmail, sessionID string) (*models.Payment, error) {
	session, err := e.Billing.FindSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if session.HREmail != hrEmail {
		return nil, ErrForbidden
	}

	remote, err := e.Payments.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternal, err)
	}
	if remote.Status != payments.StatusPaid {
		return nil, ErrUnprocessed
	}

	now := time.Now()
	if err := e.Billing.MarkSessionPaid(ctx, sessionID, now); err != nil {
		if errors.Is(err, store.ErrNoMatch) {
			return nil, ErrAlreadyProcessed
		}
		return nil, err
	}

	if err := e.Users.SetSubscription(ctx, hrEmail, session.PackageName, session.EmployeeLimit, now); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		SessionID:   sessionID,
		HREmail:     hrEmail,
		PackageName: session.PackageName,
		Price:       session.Price,
		PaidAt:      now,
	}
	if err := e.Billing.InsertPayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}
