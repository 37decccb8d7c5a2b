package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"traffic-controller/internal/core/port"
)

// handleRedirect counts a click on a tracked URL and redirects to its target.
// Unknown and inactive URLs are 404. Internal errors are logged and treated
// as 404 to avoid leaking information.
func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	target, err := h.urls.Redirect(r.Context(), id)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			h.logger.Error("redirect error", slog.Int64("url_id", id), slog.Any("error", err))
		}
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
