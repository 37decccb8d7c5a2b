package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"traffic-controller/internal/core/domain"
)

type ledgerEntryResponse struct {
	URLID     int64     `json:"urlId"`
	Price     string    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

type syncStateResponse struct {
	CampaignID           int64                 `json:"campaignId"`
	Name                 string                `json:"name"`
	State                domain.State          `json:"state"`
	DailySpent           string                `json:"dailySpent"`
	LastBudgetUpdateTime *time.Time            `json:"lastBudgetUpdateTime"`
	LedgerEntries        []ledgerEntryResponse `json:"ledgerEntries"`
}

func newSyncStateResponse(st domain.SyncState) syncStateResponse {
	resp := syncStateResponse{
		CampaignID:           st.CampaignID,
		Name:                 st.Name,
		State:                st.State,
		DailySpent:           st.DailySpent.StringFixed(4),
		LastBudgetUpdateTime: st.LastBudgetUpdateTime,
		LedgerEntries:        make([]ledgerEntryResponse, 0, len(st.LedgerEntries)),
	}
	for _, e := range st.LedgerEntries {
		resp.LedgerEntries = append(resp.LedgerEntries, ledgerEntryResponse{
			URLID:     e.URLID,
			Price:     e.Price.StringFixed(4),
			Timestamp: e.Timestamp.UTC(),
		})
	}
	return resp
}

// handleSyncState returns the reconciliation view of one campaign.
func (h *Handler) handleSyncState(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	st, err := h.states.SyncState(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "sync state", err)
		return
	}
	h.writeJSON(w, newSyncStateResponse(*st))
}

// handleListSyncStates returns the reconciliation view of every campaign.
func (h *Handler) handleListSyncStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.states.ListSyncStates(r.Context())
	if err != nil {
		h.writeError(w, r, "list sync states", err)
		return
	}
	resp := make([]syncStateResponse, 0, len(states))
	for _, st := range states {
		resp = append(resp, newSyncStateResponse(st))
	}
	h.writeJSON(w, resp)
}

// handleLedger writes the live ledger of a campaign in its persisted line
// format.
func (h *Handler) handleLedger(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	st, err := h.states.SyncState(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "ledger", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, e := range st.LedgerEntries {
		if _, err = w.Write([]byte(e.Line())); err != nil {
			h.logger.Error("write ledger error", slog.Any("error", err))
			return
		}
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
