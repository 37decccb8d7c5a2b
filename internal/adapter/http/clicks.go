package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type updateClicksRequest struct {
	// Clicks is kept raw so that validation happens in one place.
	Clicks json.RawMessage `json:"clicks"`
}

type urlResponse struct {
	ID               int64     `json:"id"`
	CampaignID       int64     `json:"campaignId"`
	Status           string    `json:"status"`
	Clicks           int64     `json:"clicks"`
	ClickLimit       int64     `json:"clickLimit"`
	BudgetCalculated bool      `json:"budgetCalculated"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// handleUpdateClicks is the manual click edit endpoint. The value may be a
// JSON string or number; negative and non-numeric values are 400.
func (h *Handler) handleUpdateClicks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateClicksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Clicks) == 0 {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	raw := string(req.Clicks)
	var s string
	if err := json.Unmarshal(req.Clicks, &s); err == nil {
		raw = s
	}

	u, err := h.urls.UpdateClicks(r.Context(), id, raw)
	if err != nil {
		h.writeError(w, r, "update clicks", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(urlResponse{
		ID:               u.ID,
		CampaignID:       u.CampaignID,
		Status:           string(u.Status),
		Clicks:           u.Clicks,
		ClickLimit:       u.ClickLimit,
		BudgetCalculated: u.BudgetCalculated,
		UpdatedAt:        u.UpdatedAt,
	}); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
