package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func (h *Handler) listRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	rates, err := h.services.RateService.List(ctx, id)
	if err != nil {
		respondError(w, r, err, "listing exchange rates failed")
		return
	}

	utils.WriteJSON(w, rates, http.StatusOK)
}

func (h *Handler) upsertRate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.RateUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	rate, err := h.services.RateService.Upsert(ctx, id, req)
	if err != nil {
		respondError(w, r, err, "upserting exchange rate failed")
		return
	}

	utils.WriteJSON(w, rate, http.StatusOK)
}

func (h *Handler) deleteRate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	rateID, err := strconv.ParseInt(chi.URLParam(r, "rateID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid rate id", http.StatusBadRequest)
		return
	}

	if err := h.services.RateService.Delete(ctx, id, rateID); err != nil {
		respondError(w, r, err, "deleting exchange rate failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// convertAmount resolves ?from=&to=&amount= through the user's rates.
// The amount defaults to 1 so the endpoint doubles as a rate lookup.
func (h *Handler) convertAmount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")

	amount := decimal.NewFromInt(1)
	if v := query.Get("amount"); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}
		amount = parsed
	}

	resp, err := h.services.RateService.Convert(ctx, id, from, to, amount)
	if err != nil {
		respondError(w, r, err, "currency conversion failed")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) refreshRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	rates, err := h.services.RateService.Refresh(ctx, id)
	if err != nil {
		respondError(w, r, err, "refreshing exchange rates failed")
		return
	}

	logger.FromRequest(r).Info().
		Str("func", "*Handler.refreshRates").
		Int("rates", len(rates)).
		Msg("exchange rates refreshed")

	utils.WriteJSON(w, rates, http.StatusOK)
}
