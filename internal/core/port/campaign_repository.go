package port

import (
	"context"

	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/syncguard"
)

// CampaignRepository is the controller's outbound persistence port. Reads run
// outside of any transaction; every controller-owned write goes through
// RunAutoSync.
type CampaignRepository interface {
	// ListControlledCampaigns returns campaigns with traffic control
	// enabled, including misconfigured ones, ordered by id.
	ListControlledCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// ListCampaigns returns every campaign ordered by id.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// GetCampaign returns ErrNotFound for unknown ids.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ListCampaignURLs returns every URL owned by the campaign.
	ListCampaignURLs(ctx context.Context, campaignID int64) ([]domain.URL, error)
	// ListChildCampaigns returns the campaign's child platform campaigns.
	ListChildCampaigns(ctx context.Context, parentID int64) ([]domain.ChildCampaign, error)
	// ListLedger returns the live ledger entries of the campaign.
	ListLedger(ctx context.Context, campaignID int64) ([]domain.BudgetLogEntry, error)
	// RunAutoSync runs fn in one transaction marked as automatic sync. The
	// transaction commits when fn returns nil and rolls back otherwise.
	RunAutoSync(ctx context.Context, fn func(ctx context.Context, tx SyncTx, s *syncguard.Scope) error) error
}

// SyncTx is the set of automatic writes available inside RunAutoSync. Each
// method requires the open scope.
type SyncTx interface {
	// LockCampaign re-reads the campaign row and holds it until commit.
	LockCampaign(ctx context.Context, s *syncguard.Scope, id int64) (*domain.Campaign, error)
	// SaveSync writes the controller-owned campaign columns. It fails with
	// ErrStateConflict when the stored state differs from ExpectedState.
	SaveSync(ctx context.Context, s *syncguard.Scope, upd domain.SyncUpdate) error
	// MarkBudgetCalculated flags the URLs as folded into a budget push.
	MarkBudgetCalculated(ctx context.Context, s *syncguard.Scope, campaignID int64, urlIDs []int64) error
	// ResetBudgetCalculated clears the flag on every URL of the campaign
	// without a live ledger entry and returns how many rows changed.
	ResetBudgetCalculated(ctx context.Context, s *syncguard.Scope, campaignID int64) (int64, error)
	// Ledger is the budget ledger bound to this transaction.
	Ledger() BudgetLedger
}

// BudgetLedger is the deduplicating per-campaign log of URLs whose budget has
// been counted. Deduplication holds within an epoch, which ends on Clear.
type BudgetLedger interface {
	// Record appends an entry for the URL unless one is already live, in
	// which case it reports false and leaves the stored entry untouched.
	Record(ctx context.Context, campaignID, urlID int64, price decimal.Decimal) (bool, error)
	// List returns the live entries in recording order.
	List(ctx context.Context, campaignID int64) ([]domain.BudgetLogEntry, error)
	// Clear ends the current epoch.
	Clear(ctx context.Context, campaignID int64) error
}

// URLRepository persists tracked URLs outside of controller transactions.
type URLRepository interface {
	// GetURL returns ErrNotFound for unknown ids.
	GetURL(ctx context.Context, id int64) (*domain.URL, error)
	// RegisterClick increments an active URL's click count, completing it
	// when the limit is reached, and returns the updated URL. It returns
	// ErrNotFound when the URL is unknown or not active.
	RegisterClick(ctx context.Context, id int64) (*domain.URL, error)
	// SetClicks stores a manually entered click count.
	SetClicks(ctx context.Context, id int64, clicks int64) (*domain.URL, error)
}
