// server/internal/models/billing.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Checkout session states. A session is created when the HR starts an upgrade
// and becomes paid only after the payment provider reports the terminal
// "paid" status.
const (
	SessionCreated = "created"
	SessionPaid    = "paid"
)

// Package is a subscription plan an HR can purchase.
type Package struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	EmployeeLimit int                `bson:"employeeLimit" json:"employeeLimit"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
}

// CheckoutSession tracks one hosted-checkout attempt with the payment
// provider. SessionID is the provider's reference.
type CheckoutSession struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID     string             `bson:"sessionID" json:"sessionID"`
	HREmail       string             `bson:"hrEmail" json:"hrEmail"`
	PackageName   string             `bson:"packageName" json:"packageName"`
	Price         float64            `bson:"price" json:"price"`
	EmployeeLimit int                `bson:"employeeLimit" json:"employeeLimit"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// Payment is the permanent record of a completed upgrade.
type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"sessionID" json:"sessionID"`
	HREmail     string             `bson:"hrEmail" json:"hrEmail"`
	PackageName string             `bson:"packageName" json:"packageName"`
	Price       float64            `bson:"price" json:"price"`
	PaidAt      time.Time          `bson:"paidAt" json:"paidAt"`
}
