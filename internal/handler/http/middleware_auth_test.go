package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- getTokenFromAuthHeader ----

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "well-formed bearer header",
			header:    "Bearer abc.def.ghi",
			wantToken: "abc.def.ghi",
		},
		{
			name:    "scheme without token",
			header:  "Bearer",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "bare token without scheme",
			header:  "abc.def.ghi",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "scheme with empty token",
			header:  "Bearer ",
			wantErr: ErrEmptyToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ---- auth middleware ----

func authMiddlewareHandler(parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)) http.Handler {
	h := newTestHandler()
	h.services = &service.Services{
		AuthService: &mockAuthService{parseTokenFn: parseTokenFn},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return h.auth(next)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
		wantBody     string
	}{
		{
			name:     "missing Authorization header",
			header:   "",
			wantBody: ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:     "header without token part",
			header:   "Bearer",
			wantBody: ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:     "header with empty token",
			header:   "Bearer ",
			wantBody: ErrEmptyToken.Error(),
		},
		{
			name:   "token rejected by the auth service",
			header: "Bearer expired.jwt.token",
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			},
			wantBody: service.ErrTokenIsExpiredOrInvalid.Error(),
		},
		{
			name:   "parse failure is reported as expired-or-invalid",
			header: "Bearer whatever",
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{}, errors.New("malformed segment")
			},
			wantBody: service.ErrTokenIsExpiredOrInvalid.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := authMiddlewareHandler(tt.parseTokenFn)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestAuth_ValidToken_PutsUserIDIntoContext(t *testing.T) {
	h := newTestHandler()
	h.services = &service.Services{
		AuthService: &mockAuthService{
			parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
				assert.Equal(t, "good.jwt.token", tokenString)
				return models.Token{UserID: testUserID}, nil
			},
		},
	}

	var gotUserID int64
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, found = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good.jwt.token")
	rr := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, found, "user id should be stored in the request context")
	assert.Equal(t, testUserID, gotUserID)
}

// ---- userID helper ----

func TestUserID_ContextHit(t *testing.T) {
	req := withUser(httptest.NewRequest(http.MethodGet, "/x", nil), testUserID)
	rr := httptest.NewRecorder()

	id, ok := userID(rr, req)

	require.True(t, ok)
	assert.Equal(t, testUserID, id)
	assert.Equal(t, http.StatusOK, rr.Code, "no error response should be written")
}

func TestUserID_ContextMiss_Writes401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rr := httptest.NewRecorder()

	id, ok := userID(rr, req)

	require.False(t, ok)
	assert.Zero(t, id)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
