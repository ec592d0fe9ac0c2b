// server/internal/engine/request.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/store"
)

// CreateRequest inserts a pending request carrying a snapshot of the asset.
// No quantity is reserved here: two employees may both request the last unit,
// and the conflict is settled at approval time by the conditional reserve.
func (e *Engine) CreateRequest(ctx context.Context, employeeEmail, employeeName, assetID, note string) (*models.AssetRequest, error) {
	asset, err := e.Assets.FindAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if asset.ProductQuantity <= 0 {
		return nil, ErrUnavailable
	}

	exists, err := e.Requests.HasPendingRequest(ctx, employeeEmail, assetID)
	if err != nil {
		return nil, err
	}
	if exists {
		// Only a live pending request conflicts; a rejected request may be
		// resubmitted.
		return nil, ErrDuplicateRequest
	}

	request := &models.AssetRequest{
		RequestID:     newID("AR"),
		AssetID:       asset.AssetID,
		EmployeeEmail: employeeEmail,
		EmployeeName:  employeeName,
		HREmail:       asset.HREmail,
		CompanyName:   asset.CompanyName,
		ProductName:   asset.ProductName,
		ProductType:   asset.ProductType,
		ProductImage:  asset.ProductImage,
		Note:          note,
		Status:        models.StatusPending,
		RequestDate:   time.Now(),
	}
	if err := e.Requests.InsertRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// TransitionRequest moves a pending request to approved or rejected. Only the
// owning HR may transition, and only out of pending; both outcomes are
// terminal.
//
// The approved path runs as an ordered sequence of atomic steps:
//  1. conditionally reserve one unit (fails with ErrExhausted when another
//     approval took the last one),
//  2. append the assignment snapshot to the employee,
//  3. add the affiliation and, paired with it, bump the HR's employee counter,
//  4. conditionally flip the request pending -> approved.
//
// If step 4 loses a concurrent transition, steps 1-3 are compensated with
// their inverses before reporting ErrAlreadyProcessed.
func (e *Engine) TransitionRequest(ctx context.Context, hrEmail, requestID, status string) (*models.AssetRequest, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, fmt.Errorf("unsupported status %q", status)
	}

	request, err := e.Requests.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.HREmail != hrEmail {
		return nil, ErrForbidden
	}
	if request.Status != models.StatusPending {
		return nil, ErrAlreadyProcessed
	}

	now := time.Now()

	if status == models.StatusRejected {
		if err := e.Requests.TransitionRequest(ctx, requestID, models.StatusPending, models.StatusRejected, now); err != nil {
			if errors.Is(err, store.ErrNoMatch) {
				return nil, ErrAlreadyProcessed
			}
			return nil, err
		}
		request.Status = models.StatusRejected
		request.ActionDate = &now
		return request, nil
	}

	// Approval affiliates the employee with this HR if they are not yet; the
	// package limit is checked up front so no compensation is needed for it.
	hr, err := e.Users.FindUser(ctx, hrEmail)
	if err != nil {
		return nil, err
	}
	employee, err := e.Users.FindUser(ctx, request.EmployeeEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if hr.PackageLimit > 0 && !hasAffiliation(employee, hrEmail) && hr.CurrentEmployees >= hr.PackageLimit {
		return nil, ErrLimitReached
	}

	if err := e.Assets.ReserveUnit(ctx, request.AssetID); err != nil {
		switch {
		case errors.Is(err, store.ErrNoStock):
			return nil, ErrExhausted
		case errors.Is(err, store.ErrNotFound):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	assignment := models.AssignedAsset{
		AssetID:      request.AssetID,
		RequestID:    request.RequestID,
		HREmail:      request.HREmail,
		ProductName:  request.ProductName,
		ProductType:  request.ProductType,
		ProductImage: request.ProductImage,
		AssignedDate: now,
	}
	if err := e.Users.AppendAssignment(ctx, request.EmployeeEmail, assignment); err != nil {
		e.compensate(ctx, e.Assets.RestoreUnits(ctx, request.AssetID, 1))
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	affiliated, err := e.Users.AddAffiliation(ctx, request.EmployeeEmail, models.Affiliation{
		HREmail:     request.HREmail,
		CompanyName: request.CompanyName,
		JoinedAt:    now,
	})
	if err != nil {
		e.compensate(ctx, e.Users.RemoveAssignment(ctx, request.EmployeeEmail, request.RequestID))
		e.compensate(ctx, e.Assets.RestoreUnits(ctx, request.AssetID, 1))
		return nil, err
	}
	if affiliated {
		// Affiliation add and counter increment must stay paired.
		if err := e.Users.AdjustEmployeeCount(ctx, request.HREmail, 1); err != nil {
			e.rollbackAffiliation(ctx, request, false)
			e.compensate(ctx, e.Users.RemoveAssignment(ctx, request.EmployeeEmail, request.RequestID))
			e.compensate(ctx, e.Assets.RestoreUnits(ctx, request.AssetID, 1))
			return nil, err
		}
	}

	if err := e.Requests.TransitionRequest(ctx, requestID, models.StatusPending, models.StatusApproved, now); err != nil {
		// Someone else finalized the request between our pending check and
		// now. Undo every effect in reverse order.
		if affiliated {
			e.rollbackAffiliation(ctx, request, true)
		}
		e.compensate(ctx, e.Users.RemoveAssignment(ctx, request.EmployeeEmail, request.RequestID))
		e.compensate(ctx, e.Assets.RestoreUnits(ctx, request.AssetID, 1))
		if errors.Is(err, store.ErrNoMatch) {
			return nil, ErrAlreadyProcessed
		}
		return nil, err
	}

	request.Status = models.StatusApproved
	request.ActionDate = &now
	return request, nil
}

// DeleteRequest removes a request owned by the calling HR. Deleting an
// approved request is an un-assignment: one unit goes back to the asset, the
// matching entry leaves the employee's assets list, and if that was the
// employee's last assignment from this HR the affiliation and counter are
// rolled back too. Pending and rejected requests are removed without
// compensation; deleting a pending request is the cancellation path.
func (e *Engine) DeleteRequest(ctx context.Context, hrEmail, requestID string) error {
	request, err := e.Requests.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if request.HREmail != hrEmail {
		// Ownership failures on delete are reported as not-found so a
		// foreign HR cannot probe request ids.
		return ErrNotFound
	}

	if request.Status == models.StatusApproved {
		e.compensate(ctx, e.Assets.RestoreUnits(ctx, request.AssetID, 1))
		e.compensate(ctx, e.Users.RemoveAssignment(ctx, request.EmployeeEmail, request.RequestID))
		e.dropAffiliationIfUnused(ctx, request.EmployeeEmail, request.HREmail)
	}

	if err := e.Requests.DeleteRequest(ctx, requestID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// dropAffiliationIfUnused removes the employee's affiliation with hrEmail,
// paired with a counter decrement, when no assignment from that HR remains.
// Keeping the affiliation while assignments remain preserves the
// currentEmployees invariant.
func (e *Engine) dropAffiliationIfUnused(ctx context.Context, employeeEmail, hrEmail string) {
	employee, err := e.Users.FindUser(ctx, employeeEmail)
	if err != nil {
		log.Printf("could not re-read employee %s after un-assignment: %v", employeeEmail, err)
		return
	}
	for _, a := range employee.Assets {
		if a.HREmail == hrEmail {
			return
		}
	}
	removed, err := e.Users.RemoveAffiliation(ctx, employeeEmail, hrEmail)
	if err != nil {
		log.Printf("could not remove affiliation of %s with %s: %v", employeeEmail, hrEmail, err)
		return
	}
	if removed {
		e.compensate(ctx, e.Users.AdjustEmployeeCount(ctx, hrEmail, -1))
	}
}

// rollbackAffiliation undoes an affiliation added during a failed approval.
func (e *Engine) rollbackAffiliation(ctx context.Context, request *models.AssetRequest, decrement bool) {
	removed, err := e.Users.RemoveAffiliation(ctx, request.EmployeeEmail, request.HREmail)
	if err != nil {
		log.Printf("compensation failed, affiliation of %s with %s left behind: %v", request.EmployeeEmail, request.HREmail, err)
		return
	}
	if removed && decrement {
		e.compensate(ctx, e.Users.AdjustEmployeeCount(ctx, request.HREmail, -1))
	}
}

// compensate logs a failed compensating update. There is no rollback beyond
// this point; Reconcile repairs whatever a lost compensation leaves behind.
func (e *Engine) compensate(_ context.Context, err error) {
	if err != nil {
		log.Printf("compensating update failed, run reconciliation: %v", err)
	}
}

func hasAffiliation(u *models.User, hrEmail string) bool {
	for _, aff := range u.Affiliations {
		if aff.HREmail == hrEmail {
			return true
		}
	}
	return false
}
