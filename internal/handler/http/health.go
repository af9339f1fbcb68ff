package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-accountant/internal/logger"
	"github.com/MKhiriev/go-accountant/internal/utils"
)

const healthPingTimeout = 5 * time.Second

// health reports whether the server can serve traffic: 200 when the
// database answers a ping, 503 otherwise.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		utils.WriteJSON(w, map[string]string{"status": "ok", "database": "skipped"}, http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.health").Msg("database ping failed")
		utils.WriteJSON(w, map[string]string{"status": "unavailable", "database": "unreachable"}, http.StatusServiceUnavailable)
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "ok", "database": "ok"}, http.StatusOK)
}
