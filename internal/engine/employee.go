// server/internal/engine/employee.go
package engine

import (
	"context"
	"errors"

	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/store"
)

// RemoveEmployee revokes an employee from the calling HR's company. Every
// assignment issued by this HR is removed and its asset restocked by one
// unit; the affiliation with this HR is removed with the paired counter
// decrement; this HR's request documents for the employee are deleted so a
// later request-delete cannot restock the same unit twice.
//
// Assets and affiliations the employee holds from other HR companies are not
// touched: removal is scoped to the HR performing it.
func (e *Engine) RemoveEmployee(ctx context.Context, hrEmail, employeeEmail string) error {
	employee, err := e.Users.FindUser(ctx, employeeEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if employee.Role != models.RoleEmployee {
		return ErrNotFound
	}
	if !hasAffiliation(employee, hrEmail) {
		return ErrNotFound
	}

	removed, err := e.Users.RemoveAssignmentsByHR(ctx, employeeEmail, hrEmail)
	if err != nil {
		return err
	}
	for _, a := range removed {
		e.compensate(ctx, e.Assets.RestoreUnits(ctx, a.AssetID, 1))
	}

	if err := e.Requests.DeleteRequestsByHREmployee(ctx, hrEmail, employeeEmail); err != nil {
		return err
	}

	dropped, err := e.Users.RemoveAffiliation(ctx, employeeEmail, hrEmail)
	if err != nil {
		return err
	}
	if dropped {
		if err := e.Users.AdjustEmployeeCount(ctx, hrEmail, -1); err != nil {
			return err
		}
	}
	return nil
}
