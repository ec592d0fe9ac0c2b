// server/internal/store/memstore/memstore.go
//
// Package memstore is a mutex-guarded, in-memory implementation of the store
// interfaces. It mirrors the per-document atomicity of the Mongo store (each
// method holds the lock for its whole mutation) and is used by the engine
// tests and for running the API without a database.
package memstore

import (
	"context"
	"sync"
	"time"

	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/store"
)

type Store struct {
	mu       sync.Mutex
	assets   map[string]*models.Asset        // by assetID
	users    map[string]*models.User         // by email
	requests map[string]*models.AssetRequest // by requestID
	packages []models.Package
	sessions map[string]*models.CheckoutSession // by sessionID
	payments []models.Payment
}

func New() *Store {
	return &Store{
		assets:   make(map[string]*models.Asset),
		users:    make(map[string]*models.User),
		requests: make(map[string]*models.AssetRequest),
		sessions: make(map[string]*models.CheckoutSession),
	}
}

func copyAsset(a *models.Asset) *models.Asset {
	dup := *a
	return &dup
}

func copyUser(u *models.User) *models.User {
	dup := *u
	dup.Affiliations = append([]models.Affiliation(nil), u.Affiliations...)
	dup.Assets = append([]models.AssignedAsset(nil), u.Assets...)
	return &dup
}

func copyRequest(r *models.AssetRequest) *models.AssetRequest {
	dup := *r
	return &dup
}

// --- AssetStore ---

func (s *Store) InsertAsset(_ context.Context, asset *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.AssetID] = copyAsset(asset)
	return nil
}

func (s *Store) FindAsset(_ context.Context, assetID string) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyAsset(asset), nil
}

func (s *Store) FindAssetsByHR(_ context.Context, hrEmail string) ([]models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assets := []models.Asset{}
	for _, a := range s.assets {
		if a.HREmail == hrEmail {
			assets = append(assets, *copyAsset(a))
		}
	}
	return assets, nil
}

func (s *Store) ReserveUnit(_ context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return store.ErrNotFound
	}
	if asset.ProductQuantity <= 0 {
		return store.ErrNoStock
	}
	asset.ProductQuantity--
	asset.UpdatedAt = time.Now()
	return nil
}

func (s *Store) RestoreUnits(_ context.Context, assetID string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return store.ErrNotFound
	}
	asset.ProductQuantity += n
	asset.UpdatedAt = time.Now()
	return nil
}

func (s *Store) UpdateAssetDetails(_ context.Context, assetID, productName, productType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return store.ErrNotFound
	}
	asset.ProductName = productName
	asset.ProductType = productType
	asset.UpdatedAt = time.Now()
	return nil
}

func (s *Store) SetAssetQuantities(_ context.Context, assetID string, total, available int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return store.ErrNotFound
	}
	asset.TotalQuantity = total
	asset.ProductQuantity = available
	asset.UpdatedAt = time.Now()
	return nil
}

func (s *Store) SetAssetImage(_ context.Context, assetID, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return store.ErrNotFound
	}
	asset.ProductImage = imageURL
	asset.UpdatedAt = time.Now()
	return nil
}

func (s *Store) DeleteAsset(_ context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[assetID]; !ok {
		return store.ErrNotFound
	}
	delete(s.assets, assetID)
	return nil
}

// --- UserStore ---

func (s *Store) InsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Email] = copyUser(user)
	return nil
}

func (s *Store) FindUser(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyUser(user), nil
}

func (s *Store) FindEmployeesByHR(_ context.Context, hrEmail string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	employees := []models.User{}
	for _, u := range s.users {
		if u.Role != models.RoleEmployee {
			continue
		}
		for _, aff := range u.Affiliations {
			if aff.HREmail == hrEmail {
				employees = append(employees, *copyUser(u))
				break
			}
		}
	}
	return employees, nil
}

func (s *Store) RoleByEmail(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return "", store.ErrNotFound
	}
	return user.Role, nil
}

func (s *Store) AppendAssignment(_ context.Context, email string, a models.AssignedAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return store.ErrNotFound
	}
	user.Assets = append(user.Assets, a)
	return nil
}

func (s *Store) RemoveAssignment(_ context.Context, email, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return store.ErrNotFound
	}
	kept := user.Assets[:0]
	for _, a := range user.Assets {
		if a.RequestID != requestID {
			kept = append(kept, a)
		}
	}
	user.Assets = kept
	return nil
}

func (s *Store) RemoveAssignmentsByHR(_ context.Context, email, hrEmail string) ([]models.AssignedAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	var removed []models.AssignedAsset
	kept := user.Assets[:0]
	for _, a := range user.Assets {
		if a.HREmail == hrEmail {
			removed = append(removed, a)
		} else {
			kept = append(kept, a)
		}
	}
	user.Assets = kept
	return removed, nil
}

func (s *Store) AddAffiliation(_ context.Context, email string, aff models.Affiliation) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return false, store.ErrNotFound
	}
	for _, existing := range user.Affiliations {
		if existing.HREmail == aff.HREmail {
			return false, nil
		}
	}
	user.Affiliations = append(user.Affiliations, aff)
	return true, nil
}

func (s *Store) RemoveAffiliation(_ context.Context, email, hrEmail string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return false, store.ErrNotFound
	}
	kept := user.Affiliations[:0]
	removed := false
	for _, aff := range user.Affiliations {
		if aff.HREmail == hrEmail {
			removed = true
		} else {
			kept = append(kept, aff)
		}
	}
	user.Affiliations = kept
	return removed, nil
}

func (s *Store) AdjustEmployeeCount(_ context.Context, hrEmail string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[hrEmail]
	if !ok || user.Role != models.RoleHR {
		return store.ErrNotFound
	}
	user.CurrentEmployees += delta
	return nil
}

func (s *Store) SetEmployeeCount(_ context.Context, hrEmail string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[hrEmail]
	if !ok || user.Role != models.RoleHR {
		return store.ErrNotFound
	}
	user.CurrentEmployees = count
	return nil
}

func (s *Store) CountEmployeesWithAffiliation(_ context.Context, hrEmail string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, u := range s.users {
		if u.Role != models.RoleEmployee {
			continue
		}
		for _, aff := range u.Affiliations {
			if aff.HREmail == hrEmail {
				count++
				break
			}
		}
	}
	return count, nil
}

func (s *Store) CountAssignmentsForAsset(_ context.Context, assetID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, u := range s.users {
		for _, a := range u.Assets {
			if a.AssetID == assetID {
				count++
			}
		}
	}
	return count, nil
}

func (s *Store) SetSubscription(_ context.Context, hrEmail, packageName string, employeeLimit int, upgradedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[hrEmail]
	if !ok || user.Role != models.RoleHR {
		return store.ErrNotFound
	}
	user.Subscription = packageName
	user.PackageLimit = employeeLimit
	user.Paid = true
	at := upgradedAt
	user.UpgradedAt = &at
	return nil
}

// --- RequestStore ---

func (s *Store) InsertRequest(_ context.Context, req *models.AssetRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.RequestID] = copyRequest(req)
	return nil
}

func (s *Store) FindRequest(_ context.Context, requestID string) (*models.AssetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyRequest(req), nil
}

func (s *Store) FindRequestsByHR(_ context.Context, hrEmail, status string) ([]models.AssetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := []models.AssetRequest{}
	for _, r := range s.requests {
		if r.HREmail == hrEmail && (status == "" || r.Status == status) {
			requests = append(requests, *copyRequest(r))
		}
	}
	return requests, nil
}

func (s *Store) FindRequestsByEmployee(_ context.Context, email, status string) ([]models.AssetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := []models.AssetRequest{}
	for _, r := range s.requests {
		if r.EmployeeEmail == email && (status == "" || r.Status == status) {
			requests = append(requests, *copyRequest(r))
		}
	}
	return requests, nil
}

func (s *Store) HasPendingRequest(_ context.Context, email, assetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.EmployeeEmail == email && r.AssetID == assetID && r.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) TransitionRequest(_ context.Context, requestID, from, to string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok || req.Status != from {
		return store.ErrNoMatch
	}
	req.Status = to
	actionDate := at
	req.ActionDate = &actionDate
	return nil
}

func (s *Store) DeleteRequest(_ context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[requestID]; !ok {
		return store.ErrNotFound
	}
	delete(s.requests, requestID)
	return nil
}

func (s *Store) DeleteRequestsByHREmployee(_ context.Context, hrEmail, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.requests {
		if r.HREmail == hrEmail && r.EmployeeEmail == email {
			delete(s.requests, id)
		}
	}
	return nil
}

// --- BillingStore ---

func (s *Store) ListPackages(_ context.Context) ([]models.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Package{}, s.packages...), nil
}

// SeedPackages replaces the package catalog; used by tests and local setup.
func (s *Store) SeedPackages(packages []models.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages = append([]models.Package(nil), packages...)
}

func (s *Store) InsertSession(_ context.Context, sess *models.CheckoutSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := *sess
	s.sessions[sess.SessionID] = &dup
	return nil
}

func (s *Store) FindSession(_ context.Context, sessionID string) (*models.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	dup := *sess
	return &dup, nil
}

func (s *Store) MarkSessionPaid(_ context.Context, sessionID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.Status != models.SessionCreated {
		return store.ErrNoMatch
	}
	sess.Status = models.SessionPaid
	paidAt := at
	sess.PaidAt = &paidAt
	return nil
}

func (s *Store) InsertPayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, *p)
	return nil
}

// Payments returns the recorded payments; test helper.
func (s *Store) Payments() []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Payment{}, s.payments...)
}
