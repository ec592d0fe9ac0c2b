// server/internal/models/request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request lifecycle. A request is created pending and transitions exactly once
// to approved or rejected; both are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AssetRequest is an employee's request for one unit of an asset. Product
// fields are a snapshot taken at creation time; they may drift from the asset
// document after later edits, which is acceptable for a short-lived record.
type AssetRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestID     string             `bson:"requestID" json:"requestID"` // e.g., "AR-7C02D1E4"
	AssetID       string             `bson:"assetID" json:"assetID"`
	EmployeeEmail string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployeeName  string             `bson:"employeeName" json:"employeeName"`
	HREmail       string             `bson:"hrEmail" json:"hrEmail"`
	CompanyName   string             `bson:"companyName" json:"companyName"`
	ProductName   string             `bson:"productName" json:"productName"`
	ProductType   string             `bson:"productType" json:"productType"`
	ProductImage  string             `bson:"productImage,omitempty" json:"productImage,omitempty"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	Status        string             `bson:"status" json:"status"`
	RequestDate   time.Time          `bson:"requestDate" json:"requestDate"`
	ActionDate    *time.Time         `bson:"actionDate,omitempty" json:"actionDate,omitempty"`
}
