// server/internal/engine/reconcile.go
package engine

import (
	"context"
	"errors"

	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/store"
)

// ReconcileReport lists the repairs applied for one HR account.
type ReconcileReport struct {
	HREmail               string       `json:"hrEmail"`
	EmployeeCount         int          `json:"employeeCount"`
	EmployeeCountRepaired bool         `json:"employeeCountRepaired"`
	AssetsReconciled      int          `json:"assetsReconciled"`
	AssetsRepaired        []AssetDrift `json:"assetsRepaired"`
}

// AssetDrift records one asset whose available quantity drifted from
// capacity minus outstanding assignments.
type AssetDrift struct {
	AssetID     string `json:"assetID"`
	Outstanding int    `json:"outstanding"`
	Was         int    `json:"was"`
	Now         int    `json:"now"`
}

// Reconcile recomputes the HR's derived values from the source collections:
// currentEmployees from the affiliation lists, and each asset's available
// quantity from its capacity and the outstanding assignment entries. This is
// the repair path for a crash between the steps of a compound operation; the
// individual recomputations are idempotent.
func (e *Engine) Reconcile(ctx context.Context, hrEmail string) (*ReconcileReport, error) {
	hr, err := e.Users.FindUser(ctx, hrEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if hr.Role != models.RoleHR {
		return nil, ErrForbidden
	}

	report := &ReconcileReport{HREmail: hrEmail, AssetsRepaired: []AssetDrift{}}

	count, err := e.Users.CountEmployeesWithAffiliation(ctx, hrEmail)
	if err != nil {
		return nil, err
	}
	report.EmployeeCount = count
	if count != hr.CurrentEmployees {
		if err := e.Users.SetEmployeeCount(ctx, hrEmail, count); err != nil {
			return nil, err
		}
		report.EmployeeCountRepaired = true
	}

	assets, err := e.Assets.FindAssetsByHR(ctx, hrEmail)
	if err != nil {
		return nil, err
	}
	for _, asset := range assets {
		outstanding, err := e.Users.CountAssignmentsForAsset(ctx, asset.AssetID)
		if err != nil {
			return nil, err
		}
		expected := asset.TotalQuantity - outstanding
		if expected < 0 {
			expected = 0
		}
		report.AssetsReconciled++
		if expected == asset.ProductQuantity {
			continue
		}
		if err := e.Assets.SetAssetQuantities(ctx, asset.AssetID, asset.TotalQuantity, expected); err != nil {
			return nil, err
		}
		report.AssetsRepaired = append(report.AssetsRepaired, AssetDrift{
			AssetID:     asset.AssetID,
			Outstanding: outstanding,
			Was:         asset.ProductQuantity,
			Now:         expected,
		})
	}
	return report, nil
}
