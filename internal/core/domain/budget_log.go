package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	budgetLogDateLayout = "2006-01-02"
	budgetLogTimeLayout = "15:04:05"
)

// BudgetLogEntry records that a URL's remaining allotment was folded into a
// pushed budget.
type BudgetLogEntry struct {
	URLID     int64
	Price     decimal.Decimal
	Timestamp time.Time
}

// Line renders the entry in the ledger's persisted form:
//
//	<urlId>|<price with 4 decimals>|<YYYY-MM-DD>::<HH:MM:SS>\n
func (e BudgetLogEntry) Line() string {
	ts := e.Timestamp.UTC()
	return fmt.Sprintf("%d|%s|%s::%s\n",
		e.URLID,
		e.Price.StringFixed(4),
		ts.Format(budgetLogDateLayout),
		ts.Format(budgetLogTimeLayout),
	)
}

// ParseBudgetLogLine parses a single ledger line. The trailing newline is
// optional.
func ParseBudgetLogLine(line string) (BudgetLogEntry, error) {
	var e BudgetLogEntry
	parts := strings.Split(strings.TrimSuffix(line, "\n"), "|")
	if len(parts) != 3 {
		return e, fmt.Errorf("malformed ledger line %q", line)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return e, fmt.Errorf("ledger url id: %w", err)
	}
	price, err := decimal.NewFromString(parts[1])
	if err != nil {
		return e, fmt.Errorf("ledger price: %w", err)
	}
	date, clock, ok := strings.Cut(parts[2], "::")
	if !ok {
		return e, fmt.Errorf("malformed ledger timestamp %q", parts[2])
	}
	ts, err := time.Parse(budgetLogDateLayout+" "+budgetLogTimeLayout, date+" "+clock)
	if err != nil {
		return e, fmt.Errorf("ledger timestamp: %w", err)
	}
	e.URLID = id
	e.Price = price
	e.Timestamp = ts
	return e, nil
}
