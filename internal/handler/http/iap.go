package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
)

func (h *Handler) verifyPurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.VerifyPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	status, err := h.services.IAPService.Verify(ctx, id, req)
	if err != nil {
		respondError(w, r, err, "purchase verification failed")
		return
	}

	log.Info().
		Str("func", "*Handler.verifyPurchase").
		Int64("user_id", id).
		Str("tier", string(status.Tier)).
		Msg("purchase verified")

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) restorePurchases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.RestorePurchasesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.IAPService.Restore(ctx, id, req)
	if err != nil {
		respondError(w, r, err, "purchase restore failed")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) subscriptionStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	status, err := h.services.IAPService.Status(ctx, id)
	if err != nil {
		respondError(w, r, err, "subscription status lookup failed")
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
