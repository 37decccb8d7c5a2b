package port

import (
	"context"

	"traffic-controller/internal/core/domain"
)

// TrafficUseCase is the inbound port for controller operations that can be
// triggered from outside the ticker.
type TrafficUseCase interface {
	// ReconcileCampaign runs one controller pass for a single campaign.
	ReconcileCampaign(ctx context.Context, campaignID int64) error
	// ForceActivate moves the campaign into the force_activated state.
	ForceActivate(ctx context.Context, campaignID int64) error
	// ReleaseForceActivation returns a force-activated campaign to active.
	ReleaseForceActivation(ctx context.Context, campaignID int64) error
}

// SyncStateReader exposes the read-only reconciliation view.
type SyncStateReader interface {
	SyncState(ctx context.Context, campaignID int64) (*domain.SyncState, error)
	ListSyncStates(ctx context.Context) ([]domain.SyncState, error)
}

// URLUseCase covers redirects and manual click edits.
type URLUseCase interface {
	// Redirect counts a click and returns the target to redirect to.
	Redirect(ctx context.Context, urlID int64) (string, error)
	// UpdateClicks validates a manually entered click value and stores it.
	UpdateClicks(ctx context.Context, urlID int64, raw string) (*domain.URL, error)
}
