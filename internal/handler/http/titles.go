package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listTitles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	titles, err := h.services.TitleService.List(ctx, id)
	if err != nil {
		respondError(w, r, err, "listing associated titles failed")
		return
	}

	utils.WriteJSON(w, titles, http.StatusOK)
}

func (h *Handler) upsertTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.TitleUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	title, err := h.services.TitleService.Upsert(ctx, id, req)
	if err != nil {
		respondError(w, r, err, "upserting associated title failed")
		return
	}

	utils.WriteJSON(w, title, http.StatusCreated)
}

func (h *Handler) deleteTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	titleID, err := strconv.ParseInt(chi.URLParam(r, "titleID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid title id", http.StatusBadRequest)
		return
	}

	if err := h.services.TitleService.Delete(ctx, id, titleID); err != nil {
		respondError(w, r, err, "deleting associated title failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// matchTitle resolves ?title= to the learned category, 404 when the
// user has taught the server nothing applicable.
func (h *Handler) matchTitle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	match, err := h.services.TitleService.Match(ctx, id, r.URL.Query().Get("title"))
	if err != nil {
		respondError(w, r, err, "matching title failed")
		return
	}

	utils.WriteJSON(w, match, http.StatusOK)
}
