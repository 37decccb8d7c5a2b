package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign is a traffic campaign whose activation and budget on the external
// platform are driven by the traffic controller. Money values are decimals
// with four fractional digits of precision.
type Campaign struct {
	ID                     int64
	Name                   string
	ExternalCampaignID     *string // nil: not platform-managed
	TrafficControlEnabled  bool
	State                  State
	PricePerThousandClicks decimal.Decimal
	Thresholds             Thresholds
	PostPauseCheckMinutes  int
	HighSpendWaitMinutes   int
	PausedAt               *time.Time
	LastBudgetUpdateTime   *time.Time
	HighSpendBudgetCalcAt  *time.Time
	DailySpent             decimal.Decimal
	PushedBudget           decimal.Decimal
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Thresholds are the configured click-count thresholds. A nil field means
// the default for that threshold applies.
type Thresholds struct {
	LowSpendPauseClicks     *int64
	LowSpendActivateClicks  *int64
	HighSpendPauseClicks    *int64
	HighSpendActivateClicks *int64
}

// Managed reports whether the controller should drive this campaign.
func (c *Campaign) Managed() bool {
	return c.TrafficControlEnabled && c.ExternalCampaignID != nil && *c.ExternalCampaignID != ""
}

// Misconfigured reports a campaign that asks for traffic control but cannot
// be addressed on the platform.
func (c *Campaign) Misconfigured() bool {
	return c.TrafficControlEnabled && (c.ExternalCampaignID == nil || *c.ExternalCampaignID == "")
}

// SyncUpdate is the set of controller-owned campaign columns written at the
// end of a successful pass.
type SyncUpdate struct {
	CampaignID            int64
	ExpectedState         State
	State                 State
	DailySpent            decimal.Decimal
	PushedBudget          decimal.Decimal
	PausedAt              *time.Time
	LastBudgetUpdateTime  *time.Time
	HighSpendBudgetCalcAt *time.Time
}
