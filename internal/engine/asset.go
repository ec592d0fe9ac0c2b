// server/internal/engine/asset.go
package engine

import (
	"context"
	"errors"
	"time"

	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/store"
)

// CreateAsset registers a new inventory item for the HR. The full quantity
// starts available.
func (e *Engine) CreateAsset(ctx context.Context, hrEmail, companyName, productName, productType string, quantity int) (*models.Asset, error) {
	asset := &models.Asset{
		AssetID:         newID("AST"),
		HREmail:         hrEmail,
		ProductName:     productName,
		ProductType:     productType,
		TotalQuantity:   quantity,
		ProductQuantity: quantity,
		CompanyName:     companyName,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := e.Assets.InsertAsset(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// UpdateAsset edits the asset's details and capacity. The new capacity may
// not drop below the units currently assigned to employees; available stock
// is recomputed as capacity minus outstanding assignments.
func (e *Engine) UpdateAsset(ctx context.Context, hrEmail, assetID, productName, productType string, quantity int) (*models.Asset, error) {
	asset, err := e.Assets.FindAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if asset.HREmail != hrEmail {
		return nil, ErrForbidden
	}

	outstanding, err := e.Users.CountAssignmentsForAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if quantity < outstanding {
		return nil, ErrQuantityBelowAssigned
	}

	if err := e.Assets.UpdateAssetDetails(ctx, assetID, productName, productType); err != nil {
		return nil, err
	}
	if err := e.Assets.SetAssetQuantities(ctx, assetID, quantity, quantity-outstanding); err != nil {
		return nil, err
	}

	asset.ProductName = productName
	asset.ProductType = productType
	asset.TotalQuantity = quantity
	asset.ProductQuantity = quantity - outstanding
	asset.UpdatedAt = time.Now()
	return asset, nil
}

// DeleteAsset removes an asset that has no outstanding assignments. Deleting
// an asset employees still hold would strand their assignment snapshots.
func (e *Engine) DeleteAsset(ctx context.Context, hrEmail, assetID string) error {
	asset, err := e.Assets.FindAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if asset.HREmail != hrEmail {
		return ErrForbidden
	}

	outstanding, err := e.Users.CountAssignmentsForAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if outstanding > 0 {
		return ErrQuantityBelowAssigned
	}

	if err := e.Assets.DeleteAsset(ctx, assetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
