package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncState is the read-only view of a campaign's reconciliation status.
type SyncState struct {
	CampaignID           int64
	Name                 string
	State                State
	DailySpent           decimal.Decimal
	LastBudgetUpdateTime *time.Time
	LedgerEntries        []BudgetLogEntry
}
