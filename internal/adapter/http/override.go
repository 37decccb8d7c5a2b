package httpadapter

import "net/http"

// handleReconcile runs a controller pass for one campaign right away.
func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.traffic.ReconcileCampaign(r.Context(), id); err != nil {
		h.writeError(w, r, "reconcile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleForceActivate puts a campaign into force_activated.
func (h *Handler) handleForceActivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.traffic.ForceActivate(r.Context(), id); err != nil {
		h.writeError(w, r, "force activate", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReleaseForceActivation hands the campaign back to the controller.
func (h *Handler) handleReleaseForceActivation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.traffic.ReleaseForceActivation(r.Context(), id); err != nil {
		h.writeError(w, r, "release force activation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
