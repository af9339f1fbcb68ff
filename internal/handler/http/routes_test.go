package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---- Helpers ----

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newHandlerWithServices(t, newStubServices()).Init()
}

func validAuthHeader() string { return "Bearer stub-token" }

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

// protectedRoutes lists every route mounted behind the auth middleware.
var protectedRoutes = []routeCase{
	{http.MethodGet, "/api/v1/auth/me"},
	{http.MethodPut, "/api/v1/auth/me"},
	{http.MethodPost, "/api/v1/auth/logout"},
	{http.MethodPost, "/api/v1/auth/unlink-google"},
	{http.MethodGet, "/api/v1/auth/providers"},

	{http.MethodPost, "/api/v1/sync"},
	{http.MethodGet, "/api/v1/sync/status"},

	{http.MethodGet, "/api/v1/transactions"},
	{http.MethodPost, "/api/v1/transactions"},
	{http.MethodPost, "/api/v1/transactions/bulk"},
	{http.MethodGet, "/api/v1/transactions/srv-1"},
	{http.MethodPut, "/api/v1/transactions/srv-1"},
	{http.MethodDelete, "/api/v1/transactions/srv-1"},

	{http.MethodGet, "/api/v1/wallets"},
	{http.MethodPost, "/api/v1/wallets"},
	{http.MethodGet, "/api/v1/wallets/default"},
	{http.MethodGet, "/api/v1/wallets/srv-1"},
	{http.MethodPut, "/api/v1/wallets/srv-1"},
	{http.MethodDelete, "/api/v1/wallets/srv-1"},

	{http.MethodGet, "/api/v1/categories"},
	{http.MethodPost, "/api/v1/categories"},
	{http.MethodGet, "/api/v1/categories/srv-1"},
	{http.MethodPut, "/api/v1/categories/srv-1"},
	{http.MethodDelete, "/api/v1/categories/srv-1"},

	{http.MethodGet, "/api/v1/budgets"},
	{http.MethodPost, "/api/v1/budgets"},
	{http.MethodGet, "/api/v1/objectives"},
	{http.MethodPost, "/api/v1/objectives"},
	{http.MethodGet, "/api/v1/payment-methods"},
	{http.MethodPost, "/api/v1/payment-methods"},

	{http.MethodPost, "/api/v1/recurring/process"},
	{http.MethodGet, "/api/v1/recurring"},
	{http.MethodPost, "/api/v1/recurring"},
	{http.MethodGet, "/api/v1/recurring/srv-1"},

	{http.MethodGet, "/api/v1/associated-titles"},
	{http.MethodPost, "/api/v1/associated-titles"},
	{http.MethodGet, "/api/v1/associated-titles/match"},
	{http.MethodDelete, "/api/v1/associated-titles/9"},

	{http.MethodGet, "/api/v1/exchange-rates"},
	{http.MethodPost, "/api/v1/exchange-rates"},
	{http.MethodGet, "/api/v1/exchange-rates/convert"},
	{http.MethodPost, "/api/v1/exchange-rates/refresh"},
	{http.MethodDelete, "/api/v1/exchange-rates/9"},

	{http.MethodPost, "/api/v1/iap/verify"},
	{http.MethodPost, "/api/v1/iap/restore"},
	{http.MethodGet, "/api/v1/iap/status"},
}

// ---- Public routes: reachable without auth ----

func TestInit_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []routeCase{
		{http.MethodGet, "/health"},
		{http.MethodGet, "/api/version"},
		{http.MethodGet, "/metrics"},
		{http.MethodPost, "/api/v1/auth/register"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/auth/firebase"},
		{http.MethodPost, "/api/v1/auth/link-google"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.NotEqual(t, http.StatusNotFound, rr.Code,
				"route should be registered: %s %s", tt.method, tt.path)
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code,
				"route should be public: %s %s", tt.method, tt.path)
		})
	}
}

// ---- Protected routes: 401 without token ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, tt := range protectedRoutes {
		t.Run(tt.method+" "+tt.path+" without token", func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code,
				"missing token should result in 401")
		})
	}
}

// ---- Protected routes: registered and pass with valid token ----

func TestInit_ProtectedRoutes_PassWithValidToken(t *testing.T) {
	router := newTestRouter(t)

	for _, tt := range protectedRoutes {
		t.Run(tt.method+" "+tt.path+" with token", func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", validAuthHeader())
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			// Body-decoding handlers answer 400 on the empty body; what
			// matters here is that routing and auth let the request in.
			assert.NotEqual(t, http.StatusUnauthorized, rr.Code)
			assert.NotEqual(t, http.StatusNotFound, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

// ---- Unknown routes return 404 ----

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method  string
		path    string
		addAuth bool
	}{
		{http.MethodGet, "/api/v1/nonexistent", false},
		{http.MethodGet, "/totally/wrong", false},
		{http.MethodGet, "/api/v1/iap/unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.addAuth {
				req.Header.Set("Authorization", validAuthHeader())
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

// ---- Wrong method on an existing route returns 405 ----

func TestInit_WrongMethod_Returns405(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		method  string
		path    string
		addAuth bool
	}{
		{
			name:   "GET on /api/v1/auth/register (POST only)",
			method: http.MethodGet,
			path:   "/api/v1/auth/register",
		},
		{
			name:   "DELETE on /api/v1/auth/login (POST only)",
			method: http.MethodDelete,
			path:   "/api/v1/auth/login",
		},
		{
			name:    "PUT on /api/v1/iap/verify (POST only)",
			method:  http.MethodPut,
			path:    "/api/v1/iap/verify",
			addAuth: true,
		},
		{
			name:    "DELETE on /api/v1/sync/status (GET only)",
			method:  http.MethodDelete,
			path:    "/api/v1/sync/status",
			addAuth: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.addAuth {
				req.Header.Set("Authorization", validAuthHeader())
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}
