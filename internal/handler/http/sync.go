package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
)

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var batch models.SyncBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.sync").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.SyncService.Reconcile(ctx, id, batch)
	if err != nil {
		respondError(w, r, err, "sync reconciliation failed")
		return
	}

	log.Info().
		Str("func", "*Handler.sync").
		Int("entities", len(batch.Entities)).
		Int("server_changes", len(result.ServerChanges)).
		Msg("sync batch reconciled")

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	status, err := h.services.SyncService.Status(ctx, id)
	if err != nil {
		respondError(w, r, err, "sync status lookup failed")
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
