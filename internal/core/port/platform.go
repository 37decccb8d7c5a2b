package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PlatformClient is the external ad-buying platform as seen by the
// controller. Every call may fail; failures are retried on the next pass.
type PlatformClient interface {
	Pause(ctx context.Context, campaignID string) error
	Activate(ctx context.Context, campaignID string) error
	SetEndTime(ctx context.Context, campaignID string, end time.Time) error
	SetBudget(ctx context.Context, campaignID string, amount decimal.Decimal) error
	GetDailySpend(ctx context.Context, campaignID string, date time.Time) (decimal.Decimal, error)
}
