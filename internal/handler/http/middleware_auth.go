package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/internal/utils"
)

// auth guards the authorized route group. It pulls the bearer token out of
// the "Authorization" header, validates it through
// [service.AuthService.ParseToken] and stashes the account id in the request
// context for the handlers behind it.
//
// Every failure answers 401: a missing header, a header that does not parse
// as "Bearer <token>", and a token that is expired, malformed or signed for
// someone else. Rejections are logged through [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("bearer token rejected")
			http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		// Downstream handlers read the id back instead of re-parsing the token.
		ctx = utils.SetUserIDToContext(ctx, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader takes the token out of an "Authorization: Bearer
// <token>" header value. It returns [ErrInvalidAuthorizationHeader] when the
// value does not split into scheme and token, and [ErrEmptyToken] when the
// token part is blank.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

// userID pulls the authenticated account id the auth middleware stored.
// A miss means the handler was mounted outside the authorized group; the
// request is answered 401 and ok is false.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		logger.FromRequest(r).Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return 0, false
	}

	return id, true
}
