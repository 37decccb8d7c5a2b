package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/port"
	"traffic-controller/internal/core/syncguard"
)

// RunAutoSync runs fn in a read-committed transaction whose
// app.auto_sync setting is on. The setting is transaction-local, so it is
// gone once the transaction commits or rolls back, and the urls trigger
// rejects click-count changes while it is set.
func (s *Store) RunAutoSync(ctx context.Context, fn func(ctx context.Context, tx port.SyncTx, sc *syncguard.Scope) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	marker := syncguard.MarkerFunc(func(ctx context.Context) error {
		_, err := tx.Exec(ctx, `SELECT set_config('app.auto_sync', 'on', true)`)
		return err
	})
	_, err = syncguard.RunAsAutoSync(ctx, marker, func(ctx context.Context, sc *syncguard.Scope) (struct{}, error) {
		return struct{}{}, fn(ctx, &syncTx{tx: tx, ledger: &Ledger{db: tx, now: s.now}}, sc)
	})
	return err
}

type syncTx struct {
	tx     pgx.Tx
	ledger *Ledger
}

func (t *syncTx) Ledger() port.BudgetLedger { return t.ledger }

func (t *syncTx) LockCampaign(ctx context.Context, sc *syncguard.Scope, id int64) (*domain.Campaign, error) {
	if err := sc.Check(); err != nil {
		return nil, err
	}
	c, err := scanCampaign(t.tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (t *syncTx) SaveSync(ctx context.Context, sc *syncguard.Scope, upd domain.SyncUpdate) error {
	if err := sc.Check(); err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, `
        UPDATE campaigns SET
            state = $2,
            daily_spent = $3::text::numeric,
            pushed_budget = $4::text::numeric,
            paused_at = $5,
            last_budget_update_time = $6,
            high_spend_budget_calc_time = $7,
            updated_at = now()
        WHERE id = $1 AND state = $8`,
		upd.CampaignID,
		upd.State.String(),
		upd.DailySpent.String(),
		upd.PushedBudget.String(),
		upd.PausedAt,
		upd.LastBudgetUpdateTime,
		upd.HighSpendBudgetCalcAt,
		upd.ExpectedState.String(),
	)
	if err != nil {
		return fmt.Errorf("save campaign %d: %w", upd.CampaignID, err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrStateConflict
	}
	return nil
}

func (t *syncTx) MarkBudgetCalculated(ctx context.Context, sc *syncguard.Scope, campaignID int64, urlIDs []int64) error {
	if err := sc.Check(); err != nil {
		return err
	}
	if len(urlIDs) == 0 {
		return nil
	}
	_, err := t.tx.Exec(ctx, `
        UPDATE urls SET budget_calculated = TRUE, updated_at = now()
        WHERE campaign_id = $1 AND id = ANY($2)`, campaignID, urlIDs)
	return err
}

func (t *syncTx) ResetBudgetCalculated(ctx context.Context, sc *syncguard.Scope, campaignID int64) (int64, error) {
	if err := sc.Check(); err != nil {
		return 0, err
	}
	tag, err := t.tx.Exec(ctx, `
        UPDATE urls u SET budget_calculated = FALSE, updated_at = now()
        WHERE u.campaign_id = $1
          AND u.budget_calculated
          AND NOT EXISTS (
              SELECT 1 FROM budget_log b
              WHERE b.campaign_id = u.campaign_id AND b.url_id = u.id AND b.cleared_at IS NULL
          )`, campaignID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
