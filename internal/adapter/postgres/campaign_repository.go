package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/port"
)

// Numeric columns travel as text so that decimals never pass through floats.
const campaignColumns = `
    id,
    name,
    external_campaign_id,
    traffic_control_enabled,
    state,
    price_per_thousand_clicks::text,
    low_spend_pause_clicks,
    low_spend_activate_clicks,
    high_spend_pause_clicks,
    high_spend_activate_clicks,
    post_pause_check_minutes,
    high_spend_wait_minutes,
    paused_at,
    last_budget_update_time,
    high_spend_budget_calc_time,
    daily_spent::text,
    pushed_budget::text,
    created_at,
    updated_at`

const urlColumns = `id, campaign_id, name, target_url, status, clicks, click_limit, budget_calculated, created_at, updated_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c                    domain.Campaign
		state                string
		price, spent, pushed string
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.ExternalCampaignID,
		&c.TrafficControlEnabled,
		&state,
		&price,
		&c.Thresholds.LowSpendPauseClicks,
		&c.Thresholds.LowSpendActivateClicks,
		&c.Thresholds.HighSpendPauseClicks,
		&c.Thresholds.HighSpendActivateClicks,
		&c.PostPauseCheckMinutes,
		&c.HighSpendWaitMinutes,
		&c.PausedAt,
		&c.LastBudgetUpdateTime,
		&c.HighSpendBudgetCalcAt,
		&spent,
		&pushed,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	if c.State, err = domain.ParseState(state); err != nil {
		return c, err
	}
	if c.PricePerThousandClicks, err = decimal.NewFromString(price); err != nil {
		return c, fmt.Errorf("campaign %d price: %w", c.ID, err)
	}
	if c.DailySpent, err = decimal.NewFromString(spent); err != nil {
		return c, fmt.Errorf("campaign %d daily spent: %w", c.ID, err)
	}
	if c.PushedBudget, err = decimal.NewFromString(pushed); err != nil {
		return c, fmt.Errorf("campaign %d pushed budget: %w", c.ID, err)
	}
	return c, nil
}

func scanURL(row pgx.Row) (domain.URL, error) {
	var (
		u      domain.URL
		status string
	)
	err := row.Scan(&u.ID, &u.CampaignID, &u.Name, &u.TargetURL, &status, &u.Clicks, &u.ClickLimit, &u.BudgetCalculated, &u.CreatedAt, &u.UpdatedAt)
	u.Status = domain.URLStatus(status)
	return u, err
}

func collectCampaigns(rows pgx.Rows) ([]domain.Campaign, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

// ListControlledCampaigns returns campaigns with traffic control enabled.
func (s *Store) ListControlledCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE traffic_control_enabled ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// ListCampaigns returns every campaign.
func (s *Store) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectCampaigns(rows)
}

// GetCampaign returns a campaign by id.
func (s *Store) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(s.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaignURLs returns every URL of the campaign ordered by id.
func (s *Store) ListCampaignURLs(ctx context.Context, campaignID int64) ([]domain.URL, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+urlColumns+` FROM urls WHERE campaign_id = $1 ORDER BY id`, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.URL, error) {
		return scanURL(row)
	})
}

// ListChildCampaigns returns the child campaigns of a parent.
func (s *Store) ListChildCampaigns(ctx context.Context, parentID int64) ([]domain.ChildCampaign, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, parent_campaign_id, external_campaign_id, click_remaining_threshold
        FROM child_campaigns
        WHERE parent_campaign_id = $1
        ORDER BY click_remaining_threshold, id`, parentID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ChildCampaign, error) {
		var cc domain.ChildCampaign
		err := row.Scan(&cc.ID, &cc.ParentCampaignID, &cc.ExternalCampaignID, &cc.ClickRemainingThreshold)
		return cc, err
	})
}

// ListLedger returns the live ledger entries of the campaign.
func (s *Store) ListLedger(ctx context.Context, campaignID int64) ([]domain.BudgetLogEntry, error) {
	return (&Ledger{db: s.pool, now: s.now}).List(ctx, campaignID)
}
