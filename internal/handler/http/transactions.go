package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	filter, err := transactionFilterFromQuery(r.URL.Query())
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("invalid transaction filter")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entities, err := h.services.TransactionService.List(ctx, id, filter)
	if err != nil {
		respondError(w, r, err, "listing transactions failed")
		return
	}

	utils.WriteJSON(w, entities, http.StatusOK)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("reading request body failed")
		http.Error(w, "reading request body failed", http.StatusBadRequest)
		return
	}

	entity, err := h.services.TransactionService.Create(ctx, id, payload)
	if err != nil {
		respondError(w, r, err, "creating transaction failed")
		return
	}

	utils.WriteJSON(w, entity, http.StatusCreated)
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("reading request body failed")
		http.Error(w, "reading request body failed", http.StatusBadRequest)
		return
	}

	entity, err := h.services.TransactionService.Update(ctx, id, chi.URLParam(r, "serverID"), payload)
	if err != nil {
		respondError(w, r, err, "updating transaction failed")
		return
	}

	utils.WriteJSON(w, entity, http.StatusOK)
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.services.TransactionService.Delete(ctx, id, chi.URLParam(r, "serverID")); err != nil {
		respondError(w, r, err, "deleting transaction failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) bulkCreateTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var payloads []json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	raw := make([][]byte, len(payloads))
	for i, p := range payloads {
		raw[i] = p
	}

	resp, err := h.services.TransactionService.BulkCreate(ctx, id, raw)
	if err != nil {
		respondError(w, r, err, "bulk transaction import failed")
		return
	}

	log.Info().
		Str("func", "*Handler.bulkCreateTransactions").
		Int("created", resp.Created).
		Int("failed", resp.Failed).
		Msg("bulk import finished")

	utils.WriteJSON(w, resp, http.StatusCreated)
}

// transactionFilterFromQuery parses the optional list criteria. Every
// parameter is independent; an unparseable value rejects the request
// rather than silently dropping the criterion.
func transactionFilterFromQuery(query url.Values) (models.TransactionFilter, error) {
	var filter models.TransactionFilter

	if v := query.Get("wallet_id"); v != "" {
		filter.WalletID = &v
	}
	if v := query.Get("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := query.Get("payment_method_id"); v != "" {
		filter.PaymentMethodID = &v
	}

	if v := query.Get("is_income"); v != "" {
		isIncome, err := strconv.ParseBool(v)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("invalid is_income: %q", v)
		}
		filter.IsIncome = &isIncome
	}

	if v := query.Get("type"); v != "" {
		txnType := models.TransactionType(v)
		if !txnType.Valid() {
			return models.TransactionFilter{}, fmt.Errorf("invalid type: %q", v)
		}
		filter.Type = &txnType
	}

	if v := query.Get("date_from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("invalid date_from: %q", v)
		}
		filter.DateFrom = &from
	}
	if v := query.Get("date_to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("invalid date_to: %q", v)
		}
		filter.DateTo = &to
	}

	if v := query.Get("amount_min"); v != "" {
		amountMin, err := decimal.NewFromString(v)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("invalid amount_min: %q", v)
		}
		filter.AmountMin = &amountMin
	}
	if v := query.Get("amount_max"); v != "" {
		amountMax, err := decimal.NewFromString(v)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("invalid amount_max: %q", v)
		}
		filter.AmountMax = &amountMax
	}

	filter.Search = query.Get("search")

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("invalid limit: %q", v)
		}
		filter.Limit = limit
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return models.TransactionFilter{}, fmt.Errorf("invalid offset: %q", v)
		}
		filter.Offset = offset
	}

	return filter, nil
}
