package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/port"
	"traffic-controller/internal/core/syncguard"
	"traffic-controller/internal/telemetry"
)

// Controller is the campaign traffic controller. Each pass reads a
// campaign's persisted state, classifies its spend, performs the platform
// calls its state calls for and, only once they succeed, commits the new
// state in one auto-sync transaction.
type Controller struct {
	repo     port.CampaignRepository
	platform port.PlatformClient
	journal  port.BudgetLedger
	leases   *LeaseSet
	logger   *slog.Logger
	now      func() time.Time

	workers     int
	passTimeout time.Duration
}

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithJournal keeps l in line with the committed ledger after every pass.
func WithJournal(l port.BudgetLedger) ControllerOption {
	return func(c *Controller) { c.journal = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithWorkers bounds concurrent campaign passes.
func WithWorkers(n int) ControllerOption {
	return func(c *Controller) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithPassTimeout bounds a single campaign pass.
func WithPassTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.passTimeout = d
		}
	}
}

// WithLeases shares a lease set between controllers in one process.
func WithLeases(l *LeaseSet) ControllerOption {
	return func(c *Controller) { c.leases = l }
}

// NewController creates a controller. Defaults: 4 workers, 45s per pass.
func NewController(repo port.CampaignRepository, platform port.PlatformClient, logger *slog.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		repo:        repo,
		platform:    platform,
		leases:      NewLeaseSet(),
		logger:      logger,
		now:         time.Now,
		workers:     4,
		passTimeout: 45 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run drives passes from a single ticker until ctx is done. The first pass
// starts immediately.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info("traffic controller started", slog.Duration("interval", interval), slog.Int("workers", c.workers))
	for {
		_ = c.RunPass(ctx)
		select {
		case <-ctx.Done():
			c.logger.Info("traffic controller stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunPass reconciles every controlled campaign once, at most c.workers at a
// time. Per-campaign failures are logged and joined into the returned
// error; they never stop the other campaigns.
func (c *Controller) RunPass(ctx context.Context) error {
	campaigns, err := c.repo.ListControlledCampaigns(ctx)
	if err != nil {
		c.logger.Error("list campaigns", slog.Any("error", err))
		return fmt.Errorf("list campaigns: %w", err)
	}

	errs := make([]error, len(campaigns))
	var g errgroup.Group
	g.SetLimit(c.workers)
	for i := range campaigns {
		i, camp := i, campaigns[i]
		g.Go(func() error {
			errs[i] = c.guardedPass(ctx, camp)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// ReconcileCampaign runs one pass for a single campaign.
func (c *Controller) ReconcileCampaign(ctx context.Context, campaignID int64) error {
	camp, err := c.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	return c.guardedPass(ctx, *camp)
}

// guardedPass takes the lease and the pass deadline around pass.
func (c *Controller) guardedPass(ctx context.Context, camp domain.Campaign) error {
	release, ok := c.leases.TryAcquire(camp.ID)
	if !ok {
		c.logger.Debug("campaign pass skipped, lease held", slog.Int64("campaign_id", camp.ID))
		return nil
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, c.passTimeout)
	defer cancel()

	started := time.Now()
	err := c.pass(ctx, camp)
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, port.ErrMisconfigured):
		outcome = "fatal"
	case errors.Is(err, context.DeadlineExceeded):
		outcome = "timeout"
	default:
		outcome = "error"
	}
	telemetry.PassDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())

	if err != nil {
		c.logger.Error("campaign pass failed",
			slog.Int64("campaign_id", camp.ID),
			slog.String("state", camp.State.String()),
			slog.String("outcome", outcome),
			slog.Any("error", err),
		)
		return fmt.Errorf("campaign %d: %w", camp.ID, err)
	}
	return nil
}

// ForceActivate moves a campaign into force_activated. From then on every
// pass re-issues activate until ReleaseForceActivation is called.
func (c *Controller) ForceActivate(ctx context.Context, campaignID int64) error {
	return c.override(ctx, campaignID, func(camp *domain.Campaign) (domain.State, bool, error) {
		if camp.State == domain.StateForceActivated {
			return camp.State, false, nil
		}
		return domain.StateForceActivated, true, nil
	})
}

// ReleaseForceActivation hands a force-activated campaign back to threshold
// control in the active state.
func (c *Controller) ReleaseForceActivation(ctx context.Context, campaignID int64) error {
	return c.override(ctx, campaignID, func(camp *domain.Campaign) (domain.State, bool, error) {
		if camp.State != domain.StateForceActivated {
			return camp.State, false, port.ErrNotForceActivated
		}
		return domain.StateActive, true, nil
	})
}

func (c *Controller) override(ctx context.Context, campaignID int64, decide func(*domain.Campaign) (domain.State, bool, error)) error {
	release, ok := c.leases.TryAcquire(campaignID)
	if !ok {
		return port.ErrBusy
	}
	defer release()

	return c.repo.RunAutoSync(ctx, func(ctx context.Context, tx port.SyncTx, sc *syncguard.Scope) error {
		camp, err := tx.LockCampaign(ctx, sc, campaignID)
		if err != nil {
			return err
		}
		if !camp.Managed() {
			return port.ErrNotManaged
		}
		next, changed, err := decide(camp)
		if err != nil || !changed {
			return err
		}
		err = tx.SaveSync(ctx, sc, domain.SyncUpdate{
			CampaignID:            camp.ID,
			ExpectedState:         camp.State,
			State:                 next,
			DailySpent:            camp.DailySpent,
			PushedBudget:          camp.PushedBudget,
			LastBudgetUpdateTime:  camp.LastBudgetUpdateTime,
			HighSpendBudgetCalcAt: camp.HighSpendBudgetCalcAt,
		})
		if err != nil {
			return err
		}
		telemetry.Transitions.WithLabelValues(camp.State.String(), next.String()).Inc()
		c.logger.Info("campaign override",
			slog.Int64("campaign_id", camp.ID),
			slog.String("from", camp.State.String()),
			slog.String("to", next.String()),
		)
		return nil
	})
}
