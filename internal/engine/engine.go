// server/internal/engine/engine.go
//
// Package engine is the inventory and request engine: the state machine that
// takes an asset request from creation through approval, rejection or
// deletion, and keeps the assets, users and requests collections consistent
// without a multi-document transaction. Every compound operation is an
// ordered sequence of individually-atomic store updates; each step that can
// lose a race has a compensating inverse, and Reconcile can recompute the
// derived counters from the source collections if a crash lands between
// steps.
package engine

import (
	"fmt"
	"strings"

	"asset-verse-api-server/internal/payments"
	"asset-verse-api-server/internal/store"

	"github.com/google/uuid"
)

type Engine struct {
	Assets   store.AssetStore
	Users    store.UserStore
	Requests store.RequestStore
	Billing  store.BillingStore
	Payments payments.Provider
}

func New(assets store.AssetStore, users store.UserStore, requests store.RequestStore, billing store.BillingStore, provider payments.Provider) *Engine {
	return &Engine{
		Assets:   assets,
		Users:    users,
		Requests: requests,
		Billing:  billing,
		Payments: provider,
	}
}

// newID builds a short prefixed identifier, e.g. "AR-7C02D1E4".
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.New().String()[:8]))
}
