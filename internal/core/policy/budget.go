package policy

import (
	"time"

	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
)

// AmountPlaces is the number of decimal places pushed budgets and ledger
// prices are rounded to.
const AmountPlaces = 4

var thousand = decimal.NewFromInt(1000)

// RemainingClicks sums the clicks still owed by the active URLs.
func RemainingClicks(urls []domain.URL) int64 {
	var total int64
	for i := range urls {
		total += urls[i].RemainingClicks()
	}
	return total
}

// PricePerClick converts a price per thousand clicks into a per-click price.
func PricePerClick(pricePerThousand decimal.Decimal) decimal.Decimal {
	return pricePerThousand.Div(thousand)
}

// BudgetShare is one URL's contribution to a budget push.
type BudgetShare struct {
	URLID  int64
	Clicks int64
	Price  decimal.Decimal
}

// URLBudgetShare computes how much of the budget a URL accounts for: its
// outstanding clicks at the per-click price. A URL that is already complete
// contributes zero but is still counted once through its ledger entry.
func URLBudgetShare(u domain.URL, perClick decimal.Decimal) BudgetShare {
	clicks := max(u.ClickLimit-u.Clicks, 0)
	return BudgetShare{
		URLID:  u.ID,
		Clicks: clicks,
		Price:  perClick.Mul(decimal.NewFromInt(clicks)).Round(AmountPlaces),
	}
}

// BudgetCandidates returns the URLs that may still be folded into a budget
// push: not yet counted, not paused, and without a live ledger entry.
// When createdAfter is set only URLs created after it qualify.
func BudgetCandidates(urls []domain.URL, ledgered map[int64]bool, createdAfter *time.Time) []domain.URL {
	var out []domain.URL
	for _, u := range urls {
		if u.BudgetCalculated || u.Status == domain.URLStatusPaused || ledgered[u.ID] {
			continue
		}
		if createdAfter != nil && !u.CreatedAt.After(*createdAfter) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// SumShares totals the shares, rounded to AmountPlaces.
func SumShares(shares []BudgetShare) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Price)
	}
	return total.Round(AmountPlaces)
}
