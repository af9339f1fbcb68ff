package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
	"github.com/MKhiriev/go-accountant/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		respondError(w, r, err, "user registration failed")
		return
	}

	log.Info().Int64("user_id", resp.User.UserID).Msg("user registered")

	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		respondError(w, r, err, "login failed")
		return
	}

	log.Debug().Int64("user_id", resp.User.UserID).Msg("user logged in")

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) firebaseSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.FirebaseSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.FirebaseSignIn(ctx, req)
	if err != nil {
		respondError(w, r, err, "firebase sign-in failed")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) linkGoogle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LinkAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	resp, err := h.services.AuthService.LinkGoogle(ctx, req)
	if err != nil {
		respondError(w, r, err, "google account linking failed")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) unlinkGoogle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.UnlinkGoogle(ctx, id)
	if err != nil {
		respondError(w, r, err, "google account unlinking failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) providers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	resp, err := h.services.AuthService.Providers(ctx, id)
	if err != nil {
		respondError(w, r, err, "listing sign-in providers failed")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.Profile(ctx, id)
	if err != nil {
		respondError(w, r, err, "profile lookup failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req models.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.UpdateProfile(ctx, id, req)
	if err != nil {
		respondError(w, r, err, "profile update failed")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// logout exists for client symmetry: tokens are stateless, so there is
// nothing to invalidate server-side.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
