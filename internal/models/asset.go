// server/internal/models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product types an HR can register.
const (
	ProductTypeReturnable    = "Returnable"
	ProductTypeNonReturnable = "Non-returnable"
)

// Asset is one inventory item owned by an HR account.
// TotalQuantity is the authorized capacity set by the HR; ProductQuantity is
// the number of units still available, kept current by the request engine.
// Reconciliation recomputes ProductQuantity = TotalQuantity - outstanding
// assignments, so the two fields must never be edited independently.
type Asset struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID         string             `bson:"assetID" json:"assetID"` // User-friendly unique ID, e.g., "AST-4F9A21BC"
	HREmail         string             `bson:"hrEmail" json:"hrEmail"`
	ProductName     string             `bson:"productName" json:"productName"`
	ProductType     string             `bson:"productType" json:"productType"`
	ProductImage    string             `bson:"productImage,omitempty" json:"productImage,omitempty"`
	TotalQuantity   int                `bson:"totalQuantity" json:"totalQuantity"`
	ProductQuantity int                `bson:"productQuantity" json:"productQuantity"`
	CompanyName     string             `bson:"companyName" json:"companyName"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
