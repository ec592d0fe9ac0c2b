// server/internal/store/store.go
//
// Package store defines the document-store contract the request engine runs
// over: per-document atomic finds, inserts, updates and deletes, but no
// multi-document transaction. Guarded mutations (ReserveUnit,
// TransitionRequest, MarkSessionPaid) must be implemented as a single
// conditional update so that concurrent callers are serialized by the store
// itself, never by a read-then-write in the caller.
package store

import (
	"context"
	"errors"
	"time"

	"asset-verse-api-server/internal/models"
)

var (
	// ErrNotFound is returned when the referenced document does not exist.
	ErrNotFound = errors.New("store: document not found")
	// ErrNoStock is returned by ReserveUnit when the asset exists but has no
	// available unit left.
	ErrNoStock = errors.New("store: no available quantity")
	// ErrNoMatch is returned by a conditional update whose filter matched no
	// document, meaning another writer got there first.
	ErrNoMatch = errors.New("store: conditional update matched nothing")
)

// AssetStore holds the inventory collection.
type AssetStore interface {
	InsertAsset(ctx context.Context, asset *models.Asset) error
	FindAsset(ctx context.Context, assetID string) (*models.Asset, error)
	FindAssetsByHR(ctx context.Context, hrEmail string) ([]models.Asset, error)
	// ReserveUnit atomically decrements the available quantity by one, but
	// only while it is still positive. ErrNoStock when exhausted.
	ReserveUnit(ctx context.Context, assetID string) error
	// RestoreUnits atomically increments the available quantity by n.
	RestoreUnits(ctx context.Context, assetID string, n int) error
	UpdateAssetDetails(ctx context.Context, assetID, productName, productType string) error
	SetAssetQuantities(ctx context.Context, assetID string, total, available int) error
	SetAssetImage(ctx context.Context, assetID, imageURL string) error
	DeleteAsset(ctx context.Context, assetID string) error
}

// UserStore is the user directory: HR accounts and employees keyed by email.
type UserStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, email string) (*models.User, error)
	FindEmployeesByHR(ctx context.Context, hrEmail string) ([]models.User, error)
	// RoleByEmail backs the role guard middleware.
	RoleByEmail(ctx context.Context, email string) (string, error)
	AppendAssignment(ctx context.Context, email string, a models.AssignedAsset) error
	// RemoveAssignment removes the single entry created by requestID.
	RemoveAssignment(ctx context.Context, email, requestID string) error
	// RemoveAssignmentsByHR removes every assignment issued by hrEmail and
	// returns the removed entries so the caller can restock their assets.
	RemoveAssignmentsByHR(ctx context.Context, email, hrEmail string) ([]models.AssignedAsset, error)
	// AddAffiliation appends the affiliation unless one with the same hrEmail
	// already exists. Reports whether a new record was added; the caller must
	// pair a true result with an employee-counter increment.
	AddAffiliation(ctx context.Context, email string, aff models.Affiliation) (bool, error)
	// RemoveAffiliation removes the affiliation with hrEmail, reporting
	// whether one existed; a true result must be paired with a decrement.
	RemoveAffiliation(ctx context.Context, email, hrEmail string) (bool, error)
	AdjustEmployeeCount(ctx context.Context, hrEmail string, delta int) error
	SetEmployeeCount(ctx context.Context, hrEmail string, count int) error
	CountEmployeesWithAffiliation(ctx context.Context, hrEmail string) (int, error)
	CountAssignmentsForAsset(ctx context.Context, assetID string) (int, error)
	SetSubscription(ctx context.Context, hrEmail, packageName string, employeeLimit int, upgradedAt time.Time) error
}

// RequestStore is the request ledger.
type RequestStore interface {
	InsertRequest(ctx context.Context, req *models.AssetRequest) error
	FindRequest(ctx context.Context, requestID string) (*models.AssetRequest, error)
	FindRequestsByHR(ctx context.Context, hrEmail, status string) ([]models.AssetRequest, error)
	FindRequestsByEmployee(ctx context.Context, email, status string) ([]models.AssetRequest, error)
	HasPendingRequest(ctx context.Context, email, assetID string) (bool, error)
	// TransitionRequest flips the status from exactly `from` to `to` in one
	// conditional update. ErrNoMatch when the request is no longer in `from`.
	TransitionRequest(ctx context.Context, requestID, from, to string, at time.Time) error
	DeleteRequest(ctx context.Context, requestID string) error
	// DeleteRequestsByHREmployee removes all of hrEmail's request documents
	// for this employee (used by employee removal).
	DeleteRequestsByHREmployee(ctx context.Context, hrEmail, email string) error
}

// BillingStore holds subscription packages, checkout sessions and completed
// payments.
type BillingStore interface {
	ListPackages(ctx context.Context) ([]models.Package, error)
	InsertSession(ctx context.Context, sess *models.CheckoutSession) error
	FindSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
	// MarkSessionPaid flips the session from created to paid in one
	// conditional update. ErrNoMatch when it was already finalized.
	MarkSessionPaid(ctx context.Context, sessionID string, at time.Time) error
	InsertPayment(ctx context.Context, p *models.Payment) error
}
