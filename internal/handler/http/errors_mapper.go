package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/service"
	"github.com/MKhiriev/go-accountant/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrUnknownWallet:         http.StatusBadRequest,
	service.ErrUnknownProduct:        http.StatusBadRequest,
	service.ErrRateUnavailable:       http.StatusBadRequest,
	service.ErrNoPasswordSet:         http.StatusBadRequest,
	service.ErrVersionIsNotSpecified: http.StatusBadRequest,

	service.ErrWrongCredentials:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrFirebaseTokenInvalid:    http.StatusUnauthorized,

	// the account exists but must be linked through /auth/link-google
	service.ErrAccountNotLinked: http.StatusConflict,
	service.ErrIdentityInUse:    http.StatusConflict,

	// the store refused the purchase token
	service.ErrVerificationFailed: http.StatusPaymentRequired,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrPurchaseExists:     http.StatusConflict,
	store.ErrConcurrentUpdate:   http.StatusConflict,

	store.ErrUserNotFound:     http.StatusNotFound,
	store.ErrRecordNotFound:   http.StatusNotFound,
	store.ErrRateNotFound:     http.StatusNotFound,
	store.ErrTitleNotFound:    http.StatusNotFound,
	store.ErrPurchaseNotFound: http.StatusNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError maps err onto its HTTP status and writes the response.
// Client errors echo the error text so the caller sees what to fix;
// server errors hide internals behind the generic status text.
func respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Warn().Err(err).Msg(msg)
	http.Error(w, err.Error(), status)
}
