// server/internal/engine/errors.go
package engine

import "errors"

// Failure kinds surfaced by the engine. Handlers map these onto HTTP
// statuses; everything unlisted is an internal/external service failure.
var (
	// ErrNotFound: missing asset, user, request or session.
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden: the principal does not own the resource it is acting on.
	ErrForbidden = errors.New("operation not allowed for this account")
	// ErrUnavailable: request creation against an asset with no stock.
	ErrUnavailable = errors.New("asset has no available quantity")
	// ErrDuplicateRequest: the employee already has a pending request for
	// this asset.
	ErrDuplicateRequest = errors.New("a pending request for this asset already exists")
	// ErrAlreadyProcessed: transition or finalization attempted on a request
	// or session that already left its initial state.
	ErrAlreadyProcessed = errors.New("request has already been processed")
	// ErrExhausted: approval raced for the last unit and lost.
	ErrExhausted = errors.New("asset quantity exhausted")
	// ErrQuantityBelowAssigned: asset edit would set the capacity below the
	// units currently assigned to employees.
	ErrQuantityBelowAssigned = errors.New("quantity is lower than currently assigned units")
	// ErrLimitReached: approval would affiliate a new employee beyond the
	// HR's package limit.
	ErrLimitReached = errors.New("employee limit reached for current package")
	// ErrUnprocessed: the payment session exists but the provider has not
	// reported it paid.
	ErrUnprocessed = errors.New("payment has not been completed")
	// ErrExternal: the payment provider (or another collaborator) failed.
	ErrExternal = errors.New("external service failure")
)
