// server/internal/api/routes/routes_test.go
package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asset-verse-api-server/config"
	"asset-verse-api-server/internal/auth"
	"asset-verse-api-server/internal/engine"
	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/payments"
	"asset-verse-api-server/internal/socket"
	"asset-verse-api-server/internal/store/memstore"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// stubProvider fakes the hosted-checkout provider for API tests.
type stubProvider struct {
	status string
}

func (p *stubProvider) CreateSession(_ context.Context, params payments.SessionParams) (*payments.Session, error) {
	return &payments.Session{
		ID:     "cs_test_1",
		URL:    "https://pay.example.com/c/cs_test_1",
		Status: payments.StatusUnpaid,
		Name:   params.Name,
	}, nil
}

func (p *stubProvider) RetrieveSession(_ context.Context, sessionID string) (*payments.Session, error) {
	return &payments.Session{ID: sessionID, Status: p.status}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memstore.Store, *stubProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.Init("test-secret", time.Hour)

	st := memstore.New()
	st.SeedPackages([]models.Package{
		{Name: "starter", Price: 5, EmployeeLimit: 5},
		{Name: "team", Price: 8, EmployeeLimit: 10},
	})
	provider := &stubProvider{status: payments.StatusUnpaid}
	eng := engine.New(st, st, st, st, provider)
	router := SetupRouter(eng, st, socket.NewHub(), nil, config.Config{})
	return router, st, provider
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, router *gin.Engine, email, role, companyName string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":       email,
		"name":        "Test " + email,
		"password":    "secret123",
		"role":        role,
		"companyName": companyName,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestRegisterAndLogin(t *testing.T) {
	router, _, _ := newTestRouter(t)

	register(t, router, "hr@acme.com", "hr", "Acme Corp")

	// Duplicate registration conflicts.
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":       "hr@acme.com",
		"name":        "Again",
		"password":    "secret123",
		"role":        "hr",
		"companyName": "Acme Corp",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// HR registration without a company name is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "hr2@acme.com",
		"name":     "No Company",
		"password": "secret123",
		"role":     "hr",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "hr@acme.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "hr@acme.com",
		"password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLifecycleOverHTTP(t *testing.T) {
	router, _, _ := newTestRouter(t)
	hrToken := register(t, router, "hr@acme.com", "hr", "Acme Corp")
	empToken := register(t, router, "emp@acme.com", "employee", "")

	// HR registers an asset.
	w := doJSON(t, router, http.MethodPost, "/api/v1/assets/", hrToken, gin.H{
		"productName":     "MacBook Pro",
		"productType":     "Returnable",
		"productQuantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var asset models.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &asset))
	require.NotEmpty(t, asset.AssetID)
	require.Equal(t, "Acme Corp", asset.CompanyName)

	// Employee requests it.
	w = doJSON(t, router, http.MethodPost, "/api/v1/asset-requests", empToken, gin.H{
		"assetId": asset.AssetID,
		"note":    "for onboarding",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var request models.AssetRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &request))
	require.Equal(t, models.StatusPending, request.Status)

	// A duplicate pending request conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/v1/asset-requests", empToken, gin.H{
		"assetId": asset.AssetID,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// HR sees it in the pending queue.
	w = doJSON(t, router, http.MethodGet, "/api/v1/asset-requests/hr?status=pending", hrToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var queue []models.AssetRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	require.Len(t, queue, 1)

	// HR approves.
	w = doJSON(t, router, http.MethodPatch, "/api/v1/requests/"+request.RequestID+"/status", hrToken, gin.H{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Approving again conflicts; the state is terminal.
	w = doJSON(t, router, http.MethodPatch, "/api/v1/requests/"+request.RequestID+"/status", hrToken, gin.H{
		"status": "rejected",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// The employee sees the approved request by default.
	w = doJSON(t, router, http.MethodGet, "/api/v1/asset-requests/employee", empToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.AssetRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.Equal(t, models.StatusApproved, mine[0].Status)

	// The HR's employee roster now contains the requester.
	w = doJSON(t, router, http.MethodGet, "/api/v1/users/employees", hrToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roster []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roster))
	require.Len(t, roster, 1)
	require.Equal(t, "emp@acme.com", roster[0].Email)

	// Deleting the approved request returns the unit.
	w = doJSON(t, router, http.MethodDelete, "/api/v1/requests/"+request.RequestID, hrToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/v1/assets/", hrToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var assets []models.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assets))
	require.Len(t, assets, 1)
	require.Equal(t, 2, assets[0].ProductQuantity)
}

func TestRoleGuards(t *testing.T) {
	router, _, _ := newTestRouter(t)
	hrToken := register(t, router, "hr@acme.com", "hr", "Acme Corp")
	empToken := register(t, router, "emp@acme.com", "employee", "")

	// No token.
	w := doJSON(t, router, http.MethodGet, "/api/v1/assets/", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = doJSON(t, router, http.MethodGet, "/api/v1/assets/", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// An employee cannot reach HR routes.
	w = doJSON(t, router, http.MethodGet, "/api/v1/assets/", empToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// An HR cannot file asset requests.
	w = doJSON(t, router, http.MethodPost, "/api/v1/asset-requests", hrToken, gin.H{"assetId": "AST-1"})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Both roles can read their own record.
	w = doJSON(t, router, http.MethodGet, "/api/v1/users/me", empToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "emp@acme.com", me.Email)
	require.Empty(t, me.Password)
}

func TestBillingOverHTTP(t *testing.T) {
	router, _, provider := newTestRouter(t)
	hrToken := register(t, router, "hr@acme.com", "hr", "Acme Corp")

	// Catalog is public.
	w := doJSON(t, router, http.MethodGet, "/api/v1/packages", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var packages []models.Package
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &packages))
	require.Len(t, packages, 2)

	w = doJSON(t, router, http.MethodPost, "/api/v1/checkout-session", hrToken, gin.H{
		"name":          "team",
		"price":         8,
		"employeeLimit": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Session models.CheckoutSession `json:"session"`
		URL     string                 `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.URL)

	// Unpaid session cannot upgrade.
	w = doJSON(t, router, http.MethodPatch, "/api/v1/payment-success", hrToken, gin.H{
		"sessionId": created.Session.SessionID,
	})
	require.Equal(t, http.StatusPaymentRequired, w.Code)

	provider.status = payments.StatusPaid
	w = doJSON(t, router, http.MethodPatch, "/api/v1/payment-success", hrToken, gin.H{
		"sessionId": created.Session.SessionID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/me", hrToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.True(t, me.Paid)
	require.Equal(t, "team", me.Subscription)
	require.Equal(t, 10, me.PackageLimit)

	// Replay conflicts.
	w = doJSON(t, router, http.MethodPatch, "/api/v1/payment-success", hrToken, gin.H{
		"sessionId": created.Session.SessionID,
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRemoveEmployeeAndReconcileOverHTTP(t *testing.T) {
	router, st, _ := newTestRouter(t)
	hrToken := register(t, router, "hr@acme.com", "hr", "Acme Corp")
	empToken := register(t, router, "emp@acme.com", "employee", "")

	w := doJSON(t, router, http.MethodPost, "/api/v1/assets/", hrToken, gin.H{
		"productName":     "Monitor",
		"productType":     "Returnable",
		"productQuantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var asset models.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &asset))

	w = doJSON(t, router, http.MethodPost, "/api/v1/asset-requests", empToken, gin.H{"assetId": asset.AssetID})
	require.Equal(t, http.StatusCreated, w.Code)
	var request models.AssetRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &request))

	w = doJSON(t, router, http.MethodPatch, "/api/v1/requests/"+request.RequestID+"/status", hrToken, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/users/employees/emp@acme.com", hrToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := st.FindAsset(context.Background(), asset.AssetID)
	require.NoError(t, err)
	require.Equal(t, 1, got.ProductQuantity)

	// Removing again reports not found.
	w = doJSON(t, router, http.MethodDelete, "/api/v1/users/employees/emp@acme.com", hrToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Reconcile on a clean state repairs nothing.
	w = doJSON(t, router, http.MethodPost, "/api/v1/reconcile", hrToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report engine.ReconcileReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.False(t, report.EmployeeCountRepaired)
	require.Empty(t, report.AssetsRepaired)
}
