// server/internal/payments/payments.go
//
// Package payments talks to the hosted-checkout provider. The provider is an
// external collaborator: we create a session, the HR completes payment on the
// provider's page, and later we ask the provider for the session's final
// status. Only the terminal "paid" status ever triggers a subscription
// upgrade.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Session statuses reported by the provider.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// SessionParams describes the checkout to create.
type SessionParams struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	EmployeeLimit int     `json:"employeeLimit"`
	CustomerEmail string  `json:"customerEmail"`
	SuccessURL    string  `json:"successUrl"`
	CancelURL     string  `json:"cancelUrl"`
}

// Session is the provider's view of a checkout session.
type Session struct {
	ID            string  `json:"id"`
	URL           string  `json:"url"`
	Status        string  `json:"status"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	EmployeeLimit int     `json:"employeeLimit"`
}

// Provider is the payment collaborator consumed by the engine.
type Provider interface {
	CreateSession(ctx context.Context, params SessionParams) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}

// Client is the HTTP implementation of Provider.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		// Bounded timeout: a hanging provider surfaces as a retryable error
		// to the caller instead of blocking the request forever.
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) CreateSession(ctx context.Context, params SessionParams) (*Session, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/checkout/sessions/"+sessionID, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Session, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("payment session not found")
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return &session, nil
}
