// server/internal/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// Affiliation links an employee to an HR company they have an approved
// assignment history with. An employee may hold affiliations with several HR
// companies, but never two affiliations with the same hrEmail.
type Affiliation struct {
	HREmail     string    `bson:"hrEmail" json:"hrEmail"`
	CompanyName string    `bson:"companyName" json:"companyName"`
	JoinedAt    time.Time `bson:"joinedAt" json:"joinedAt"`
}

// AssignedAsset is a denormalized snapshot of an asset unit currently held by
// an employee. RequestID ties the entry to the approval that created it, so
// deleting that request removes exactly this entry and no other.
type AssignedAsset struct {
	AssetID      string    `bson:"assetID" json:"assetID"`
	RequestID    string    `bson:"requestID" json:"requestID"`
	HREmail      string    `bson:"hrEmail" json:"hrEmail"`
	ProductName  string    `bson:"productName" json:"productName"`
	ProductType  string    `bson:"productType" json:"productType"`
	ProductImage string    `bson:"productImage,omitempty" json:"productImage,omitempty"`
	AssignedDate time.Time `bson:"assignedDate" json:"assignedDate"`
}

// User matches the document in MongoDB. The email is the unique key.
// HR-only fields: CompanyName, CompanyLogo, CurrentEmployees, Subscription,
// PackageLimit, Paid, UpgradedAt. Employee-only fields: Affiliations, Assets.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"`
	Name             string             `bson:"name" json:"name"`
	Password         string             `bson:"password" json:"-"`
	Role             string             `bson:"role" json:"role"`
	CompanyName      string             `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CompanyLogo      string             `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
	Affiliations     []Affiliation      `bson:"affiliations,omitempty" json:"affiliations,omitempty"`
	Assets           []AssignedAsset    `bson:"assets,omitempty" json:"assets,omitempty"`
	CurrentEmployees int                `bson:"currentEmployees,omitempty" json:"currentEmployees,omitempty"`
	Subscription     string             `bson:"subscription,omitempty" json:"subscription,omitempty"`
	PackageLimit     int                `bson:"packageLimit,omitempty" json:"packageLimit,omitempty"`
	Paid             bool               `bson:"paid,omitempty" json:"paid,omitempty"`
	UpgradedAt       *time.Time         `bson:"upgradedAt,omitempty" json:"upgradedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
