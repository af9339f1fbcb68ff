package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/go-chi/chi/v5"
)

// The generic record handlers serve every synced kind whose REST surface
// is plain CRUD. The request body is the payload document itself; the
// service validates it against the kind's schema.

func (h *Handler) listRecords(kind models.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := userID(w, r)
		if !ok {
			return
		}

		entities, err := h.services.RecordService.List(ctx, id, kind)
		if err != nil {
			respondError(w, r, err, "listing records failed")
			return
		}

		utils.WriteJSON(w, entities, http.StatusOK)
	}
}

func (h *Handler) createRecord(kind models.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		entity, err := h.services.RecordService.Create(ctx, id, kind, payload)
		if err != nil {
			respondError(w, r, err, "creating record failed")
			return
		}

		utils.WriteJSON(w, entity, http.StatusCreated)
	}
}

func (h *Handler) getRecord(kind models.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := userID(w, r)
		if !ok {
			return
		}

		entity, err := h.services.RecordService.Get(ctx, id, kind, chi.URLParam(r, "serverID"))
		if err != nil {
			respondError(w, r, err, "record lookup failed")
			return
		}

		utils.WriteJSON(w, entity, http.StatusOK)
	}
}

func (h *Handler) updateRecord(kind models.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		entity, err := h.services.RecordService.Update(ctx, id, kind, chi.URLParam(r, "serverID"), payload)
		if err != nil {
			respondError(w, r, err, "updating record failed")
			return
		}

		utils.WriteJSON(w, entity, http.StatusOK)
	}
}

func (h *Handler) deleteRecord(kind models.EntityKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := userID(w, r)
		if !ok {
			return
		}

		if err := h.services.RecordService.Delete(ctx, id, kind, chi.URLParam(r, "serverID")); err != nil {
			respondError(w, r, err, "deleting record failed")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) defaultWallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	entity, err := h.services.RecordService.DefaultWallet(ctx, id)
	if err != nil {
		respondError(w, r, err, "default wallet lookup failed")
		return
	}

	utils.WriteJSON(w, entity, http.StatusOK)
}

// processRecurring materializes the caller's due schedules on demand,
// without waiting for the background worker's next tick.
func (h *Handler) processRecurring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	created, err := h.services.RecurringService.ProcessUser(ctx, id)
	if err != nil {
		respondError(w, r, err, "processing recurring schedules failed")
		return
	}

	utils.WriteJSON(w, models.RecurringProcessResponse{InstancesCreated: created}, http.StatusOK)
}
