// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/internal/store"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newHandlerWithAuth builds a Handler with the given AuthService mock.
func newHandlerWithAuth(t *testing.T, auth service.AuthService) *Handler {
	t.Helper()
	return newHandlerWithServices(t, &service.Services{AuthService: auth})
}

func stubAuthResponse(userID int64) models.AuthResponse {
	return models.AuthResponse{
		AccessToken: "signed.jwt.token",
		TokenType:   "Bearer",
		User: models.User{
			UserID:          userID,
			Email:           "alice@example.com",
			AuthProvider:    models.ProviderPassword,
			DefaultCurrency: "USD",
		},
	}
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

// TestRegister_Success verifies that a valid registration answers
// 201 Created with the issued token and profile.
func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
			assert.Equal(t, "alice@example.com", req.Email)
			return stubAuthResponse(testUserID), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.RegisterRequest{Email: "alice@example.com", Password: "long-enough"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AuthResponse
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, "signed.jwt.token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

// TestRegister_InvalidJSON verifies that a malformed request body results
// in 400 Bad Request.
func TestRegister_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{invalid json}"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON was passed")
}

// TestRegister_ValidationError verifies that service.ErrInvalidDataProvided
// maps to 400 Bad Request.
func TestRegister_ValidationError(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.AuthResponse, error) {
			return models.AuthResponse{}, service.ErrInvalidDataProvided
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"x","password":"y"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid data provided")
}

// TestRegister_EmailAlreadyExists verifies that store.ErrEmailAlreadyExists
// maps to 409 Conflict.
func TestRegister_EmailAlreadyExists(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ models.RegisterRequest) (models.AuthResponse, error) {
			return models.AuthResponse{}, store.ErrEmailAlreadyExists
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{"email":"a@b.c","password":"12345678"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, req models.LoginRequest) (models.AuthResponse, error) {
			assert.Equal(t, "alice@example.com", req.Email)
			return stubAuthResponse(testUserID), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.LoginRequest{Email: "alice@example.com", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
}

// TestLogin_WrongCredentials verifies that service.ErrWrongCredentials maps
// to 401 without revealing whether the account exists.
func TestLogin_WrongCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ models.LoginRequest) (models.AuthResponse, error) {
			return models.AuthResponse{}, service.ErrWrongCredentials
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.c","password":"nope"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "wrong email or password")
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(""))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// firebaseSignIn
// ─────────────────────────────────────────────

func TestFirebaseSignIn_Success(t *testing.T) {
	auth := &mockAuthService{
		firebaseSignInFn: func(_ context.Context, req models.FirebaseSignInRequest) (models.AuthResponse, error) {
			assert.Equal(t, "firebase.id.token", req.IDToken)
			resp := stubAuthResponse(testUserID)
			resp.User.AuthProvider = models.ProviderGoogle
			return resp, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/firebase", strings.NewReader(`{"id_token":"firebase.id.token"}`))
	rec := httptest.NewRecorder()

	h.firebaseSignIn(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, models.ProviderGoogle, resp.User.AuthProvider)
}

// TestFirebaseSignIn_AccountNotLinked verifies the linking conflict:
// an unlinked account with the token's email answers 409 so the client
// can fall through to /auth/link-google.
func TestFirebaseSignIn_AccountNotLinked(t *testing.T) {
	auth := &mockAuthService{
		firebaseSignInFn: func(_ context.Context, _ models.FirebaseSignInRequest) (models.AuthResponse, error) {
			return models.AuthResponse{}, service.ErrAccountNotLinked
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/firebase", strings.NewReader(`{"id_token":"t"}`))
	rec := httptest.NewRecorder()

	h.firebaseSignIn(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "not linked")
}

func TestFirebaseSignIn_RejectedToken(t *testing.T) {
	auth := &mockAuthService{
		firebaseSignInFn: func(_ context.Context, _ models.FirebaseSignInRequest) (models.AuthResponse, error) {
			return models.AuthResponse{}, service.ErrFirebaseTokenInvalid
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/firebase", strings.NewReader(`{"id_token":"forged"}`))
	rec := httptest.NewRecorder()

	h.firebaseSignIn(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// linkGoogle
// ─────────────────────────────────────────────

func TestLinkGoogle_Success(t *testing.T) {
	auth := &mockAuthService{
		linkGoogleFn: func(_ context.Context, req models.LinkAccountRequest) (models.AuthResponse, error) {
			assert.Equal(t, "firebase.id.token", req.IDToken)
			assert.Equal(t, "account-password", req.Password)
			return stubAuthResponse(testUserID), nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.LinkAccountRequest{IDToken: "firebase.id.token", Password: "account-password"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/link-google", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.linkGoogle(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestLinkGoogle_ErrorMapping walks the linking failure modes through
// their HTTP statuses.
func TestLinkGoogle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"no account owns the email", store.ErrUserNotFound, http.StatusNotFound},
		{"account has no password", service.ErrNoPasswordSet, http.StatusBadRequest},
		{"wrong password", service.ErrWrongCredentials, http.StatusUnauthorized},
		{"identity linked elsewhere", service.ErrIdentityInUse, http.StatusConflict},
		{"forged token", service.ErrFirebaseTokenInvalid, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				linkGoogleFn: func(_ context.Context, _ models.LinkAccountRequest) (models.AuthResponse, error) {
					return models.AuthResponse{}, tt.serviceErr
				},
			}

			h := newHandlerWithAuth(t, auth)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/link-google", strings.NewReader(`{"id_token":"t","password":"p"}`))
			rec := httptest.NewRecorder()

			h.linkGoogle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// unlinkGoogle
// ─────────────────────────────────────────────

func TestUnlinkGoogle_Success(t *testing.T) {
	auth := &mockAuthService{
		unlinkGoogleFn: func(_ context.Context, userID int64) (models.User, error) {
			assert.Equal(t, testUserID, userID)
			return models.User{Email: "alice@example.com", AuthProvider: models.ProviderPassword}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/auth/unlink-google", nil), testUserID)
	rec := httptest.NewRecorder()

	h.unlinkGoogle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	decodeJSON(t, rec.Body.Bytes(), &user)
	assert.Equal(t, models.ProviderPassword, user.AuthProvider)
}

// TestUnlinkGoogle_NoUserInContext verifies the guard against handlers
// mounted outside the authorized group.
func TestUnlinkGoogle_NoUserInContext(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/unlink-google", nil)
	rec := httptest.NewRecorder()

	h.unlinkGoogle(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnlinkGoogle_NoPasswordSet(t *testing.T) {
	auth := &mockAuthService{
		unlinkGoogleFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, service.ErrNoPasswordSet
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/auth/unlink-google", nil), testUserID)
	rec := httptest.NewRecorder()

	h.unlinkGoogle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no password set")
}

// ─────────────────────────────────────────────
// providers
// ─────────────────────────────────────────────

func TestProviders_Success(t *testing.T) {
	auth := &mockAuthService{
		providersFn: func(_ context.Context, userID int64) (models.AuthProvidersResponse, error) {
			assert.Equal(t, testUserID, userID)
			return models.AuthProvidersResponse{
				Providers:   []string{"password", "google"},
				HasPassword: true,
				HasGoogle:   true,
			}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/auth/providers", nil), testUserID)
	rec := httptest.NewRecorder()

	h.providers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthProvidersResponse
	decodeJSON(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, []string{"password", "google"}, resp.Providers)
	assert.True(t, resp.HasPassword)
	assert.True(t, resp.HasGoogle)
}

// ─────────────────────────────────────────────
// profile
// ─────────────────────────────────────────────

func TestProfile_Success(t *testing.T) {
	auth := &mockAuthService{
		profileFn: func(_ context.Context, userID int64) (models.User, error) {
			return models.User{Email: "alice@example.com", DefaultCurrency: "EUR"}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil), testUserID)
	rec := httptest.NewRecorder()

	h.profile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	decodeJSON(t, rec.Body.Bytes(), &user)
	assert.Equal(t, "EUR", user.DefaultCurrency)
}

func TestProfile_UserNotFound(t *testing.T) {
	auth := &mockAuthService{
		profileFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	}

	h := newHandlerWithAuth(t, auth)
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil), testUserID)
	rec := httptest.NewRecorder()

	h.profile(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// updateProfile
// ─────────────────────────────────────────────

func TestUpdateProfile_Success(t *testing.T) {
	currency := "EUR"
	auth := &mockAuthService{
		updateProfileFn: func(_ context.Context, userID int64, req models.ProfileUpdateRequest) (models.User, error) {
			assert.Equal(t, testUserID, userID)
			require.NotNil(t, req.DefaultCurrency)
			assert.Equal(t, "EUR", *req.DefaultCurrency)
			return models.User{DefaultCurrency: "EUR"}, nil
		},
	}

	h := newHandlerWithAuth(t, auth)
	body := jsonBody(t, models.ProfileUpdateRequest{DefaultCurrency: &currency})
	req := withUser(httptest.NewRequest(http.MethodPut, "/api/v1/auth/me", strings.NewReader(body)), testUserID)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateProfile_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := withUser(httptest.NewRequest(http.MethodPut, "/api/v1/auth/me", strings.NewReader("not json")), testUserID)
	rec := httptest.NewRecorder()

	h.updateProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

// TestLogout_NoContent verifies the stateless logout: 204 and no body.
func TestLogout_NoContent(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil), testUserID)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
