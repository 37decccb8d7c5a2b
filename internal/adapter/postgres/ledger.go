package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/policy"
)

// Ledger implements port.BudgetLedger on the budget_log table. Rows with a
// NULL cleared_at form the active ledger; a partial unique index keeps one
// live row per URL, so Record is a single atomic append.
type Ledger struct {
	db  dbtx
	now func() time.Time
}

// Record appends an entry unless the URL already has a live one.
func (l *Ledger) Record(ctx context.Context, campaignID, urlID int64, price decimal.Decimal) (bool, error) {
	var id int64
	err := l.db.QueryRow(ctx, `
        INSERT INTO budget_log (campaign_id, url_id, price, logged_at)
        VALUES ($1, $2, $3::text::numeric, $4)
        ON CONFLICT (campaign_id, url_id) WHERE cleared_at IS NULL DO NOTHING
        RETURNING id`,
		campaignID, urlID, price.Round(policy.AmountPlaces).String(), l.now().UTC().Truncate(time.Second),
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("record budget log: %w", err)
	}
	return true, nil
}

// List returns the live entries in recording order.
func (l *Ledger) List(ctx context.Context, campaignID int64) ([]domain.BudgetLogEntry, error) {
	rows, err := l.db.Query(ctx, `
        SELECT url_id, price::text, logged_at
        FROM budget_log
        WHERE campaign_id = $1 AND cleared_at IS NULL
        ORDER BY id`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BudgetLogEntry, error) {
		var (
			e     domain.BudgetLogEntry
			price string
		)
		if err := row.Scan(&e.URLID, &price, &e.Timestamp); err != nil {
			return e, err
		}
		p, err := decimal.NewFromString(price)
		e.Price = p
		return e, err
	})
}

// Clear ends the epoch by stamping every live row. History rows are kept.
func (l *Ledger) Clear(ctx context.Context, campaignID int64) error {
	_, err := l.db.Exec(ctx, `UPDATE budget_log SET cleared_at = $2 WHERE campaign_id = $1 AND cleared_at IS NULL`,
		campaignID, l.now().UTC())
	return err
}
