package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/policy"
	"traffic-controller/internal/core/port"
	"traffic-controller/internal/core/syncguard"
	"traffic-controller/internal/telemetry"
)

// snapshot is everything a pass decides on. It is read before any platform
// call and re-validated against the locked campaign row at commit.
type snapshot struct {
	camp      domain.Campaign
	target    string
	urls      []domain.URL
	remaining int64
	spend     decimal.Decimal
	eval      policy.Evaluation
	ledgered  map[int64]bool
	now       time.Time
}

// outcome is the local write set of a pass. It is applied only after every
// platform call of the pass succeeded.
type outcome struct {
	next          domain.State
	pausedAt      *time.Time
	lastBudget    *time.Time
	highSpendCalc *time.Time
	pushed        decimal.Decimal

	clearLedger bool
	resetFlags  bool
	record      []policy.BudgetShare
	pushKind    string
}

func (s *snapshot) stay() outcome {
	return outcome{
		next:          s.camp.State,
		pausedAt:      s.camp.PausedAt,
		lastBudget:    s.camp.LastBudgetUpdateTime,
		highSpendCalc: s.camp.HighSpendBudgetCalcAt,
		pushed:        s.camp.PushedBudget,
	}
}

func (c *Controller) pass(ctx context.Context, camp domain.Campaign) error {
	if camp.Misconfigured() {
		telemetry.FatalCampaigns.Inc()
		c.logger.Error("campaign needs operator action",
			slog.Int64("campaign_id", camp.ID),
			slog.String("campaign", camp.Name),
			slog.Any("error", port.ErrMisconfigured),
		)
		return port.ErrMisconfigured
	}
	if !camp.Managed() {
		return nil
	}

	s, err := c.snapshot(ctx, camp)
	if err != nil {
		return err
	}

	out, err := c.step(ctx, s)
	if err != nil {
		return err
	}
	return c.commit(ctx, s, out)
}

func (c *Controller) snapshot(ctx context.Context, camp domain.Campaign) (*snapshot, error) {
	urls, err := c.repo.ListCampaignURLs(ctx, camp.ID)
	if err != nil {
		return nil, fmt.Errorf("list urls: %w", err)
	}
	children, err := c.repo.ListChildCampaigns(ctx, camp.ID)
	if err != nil {
		return nil, fmt.Errorf("list child campaigns: %w", err)
	}
	entries, err := c.repo.ListLedger(ctx, camp.ID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}

	s := &snapshot{
		camp:      camp,
		target:    *camp.ExternalCampaignID,
		urls:      urls,
		remaining: policy.RemainingClicks(urls),
		ledgered:  make(map[int64]bool, len(entries)),
		now:       c.now().UTC(),
	}
	if child := policy.SelectChild(children, s.remaining); child != nil {
		s.target = child.ExternalCampaignID
	}
	for _, e := range entries {
		s.ledgered[e.URLID] = true
	}

	err = c.call(ctx, "get_daily_spend", func(ctx context.Context) error {
		spend, err := c.platform.GetDailySpend(ctx, s.target, s.now)
		s.spend = spend
		return err
	})
	if err != nil {
		if camp.State != domain.StateForceActivated {
			return nil, err
		}
		// activation does not depend on spend; keep the last known value
		c.logger.Warn("daily spend unavailable, keeping last value",
			slog.Int64("campaign_id", camp.ID),
			slog.Any("error", err),
		)
		s.spend = camp.DailySpent
	}
	s.eval = policy.Evaluate(s.spend, camp.Thresholds)
	return s, nil
}

func (c *Controller) step(ctx context.Context, s *snapshot) (outcome, error) {
	switch s.camp.State {
	case domain.StateIdle:
		return c.stepIdle(ctx, s)
	case domain.StateActive:
		return c.stepActive(ctx, s)
	case domain.StatePaused:
		return c.stepPaused(ctx, s)
	case domain.StateHighSpendPaused:
		return c.stepHighSpendPaused(ctx, s)
	case domain.StateHighSpendBudgetUpdated:
		return c.stepBudgetUpdated(ctx, s)
	case domain.StateForceActivated:
		return c.stepForceActivated(ctx, s)
	default:
		return outcome{}, fmt.Errorf("campaign in unknown state %d", uint8(s.camp.State))
	}
}

func (c *Controller) stepIdle(ctx context.Context, s *snapshot) (outcome, error) {
	if s.remaining > s.eval.PauseThreshold {
		return c.activate(ctx, s)
	}
	return c.stepActive(ctx, s)
}

func (c *Controller) stepActive(ctx context.Context, s *snapshot) (outcome, error) {
	if s.remaining > s.eval.PauseThreshold {
		out := s.stay()
		out.next = domain.StateActive
		out.clearLedger = s.eval.Regime == domain.RegimeLowSpend && len(s.ledgered) > 0
		return out, nil
	}

	if err := c.call(ctx, "pause", func(ctx context.Context) error {
		return c.platform.Pause(ctx, s.target)
	}); err != nil {
		return outcome{}, err
	}

	out := s.stay()
	now := s.now
	out.pausedAt = &now
	if s.eval.Regime == domain.RegimeHighSpend {
		out.next = domain.StateHighSpendPaused
		out.highSpendCalc = &now
		out.resetFlags = true
		return out, nil
	}
	out.next = domain.StatePaused
	out.clearLedger = len(s.ledgered) > 0
	return out, nil
}

func (c *Controller) stepPaused(ctx context.Context, s *snapshot) (outcome, error) {
	if s.remaining >= s.eval.ActivateThreshold {
		return c.activate(ctx, s)
	}
	wait := policy.WaitPeriod(s.camp.PostPauseCheckMinutes, policy.DefaultPostPauseCheckMinutes)
	if out, waiting := s.waiting(s.camp.PausedAt, wait); waiting {
		return out, nil
	}

	if s.eval.Regime == domain.RegimeLowSpend {
		return c.activate(ctx, s)
	}
	out := s.stay()
	now := s.now
	out.next = domain.StateHighSpendPaused
	out.highSpendCalc = &now
	out.resetFlags = true
	return out, nil
}

func (c *Controller) stepHighSpendPaused(ctx context.Context, s *snapshot) (outcome, error) {
	if s.remaining >= s.eval.ActivateThreshold {
		return c.activate(ctx, s)
	}
	since := s.camp.HighSpendBudgetCalcAt
	if since == nil {
		since = s.camp.PausedAt
	}
	wait := policy.WaitPeriod(s.camp.HighSpendWaitMinutes, policy.DefaultHighSpendWaitMinutes)
	if out, waiting := s.waiting(since, wait); waiting {
		if out.highSpendCalc == nil {
			out.highSpendCalc = out.pausedAt
		}
		return out, nil
	}

	if s.eval.Regime == domain.RegimeLowSpend {
		return c.activate(ctx, s)
	}
	return c.pushBudget(ctx, s)
}

func (c *Controller) stepBudgetUpdated(ctx context.Context, s *snapshot) (outcome, error) {
	if s.eval.Regime == domain.RegimeLowSpend {
		out := s.stay()
		out.next = domain.StateActive
		out.pausedAt = nil
		out.clearLedger = len(s.ledgered) > 0
		return out, nil
	}
	return c.pushSupplemental(ctx, s)
}

func (c *Controller) stepForceActivated(ctx context.Context, s *snapshot) (outcome, error) {
	if err := c.call(ctx, "activate", func(ctx context.Context) error {
		return c.platform.Activate(ctx, s.target)
	}); err != nil {
		return outcome{}, err
	}
	return s.stay(), nil
}

// waiting reports whether the wait that began at since is still running.
// A missing start time starts the wait now.
func (s *snapshot) waiting(since *time.Time, wait time.Duration) (outcome, bool) {
	out := s.stay()
	if since == nil {
		now := s.now
		out.pausedAt = &now
		return out, true
	}
	return out, s.now.Before(since.Add(wait))
}

// activate re-opens traffic until the end of the day and moves the campaign
// to active. Leaving a pause in the low-spend regime ends the ledger epoch.
func (c *Controller) activate(ctx context.Context, s *snapshot) (outcome, error) {
	if err := c.call(ctx, "set_end_time", func(ctx context.Context) error {
		return c.platform.SetEndTime(ctx, s.target, endOfDay(s.now))
	}); err != nil {
		return outcome{}, err
	}
	if err := c.call(ctx, "activate", func(ctx context.Context) error {
		return c.platform.Activate(ctx, s.target)
	}); err != nil {
		return outcome{}, err
	}

	out := s.stay()
	out.next = domain.StateActive
	out.pausedAt = nil
	out.clearLedger = s.eval.Regime == domain.RegimeLowSpend && len(s.ledgered) > 0
	return out, nil
}

// pushBudget sets the daily budget to the outstanding clicks of every
// uncounted URL and re-opens traffic.
func (c *Controller) pushBudget(ctx context.Context, s *snapshot) (outcome, error) {
	perClick := policy.PricePerClick(s.camp.PricePerThousandClicks)
	cycleStart := s.camp.HighSpendBudgetCalcAt
	if cycleStart == nil {
		cycleStart = s.camp.PausedAt
	}
	candidates := policy.BudgetCandidates(s.urls, s.ledgered, nil)
	shares := make([]policy.BudgetShare, 0, len(candidates))
	for _, u := range candidates {
		shares = append(shares, policy.URLBudgetShare(u, perClick))
	}
	amount := policy.SumShares(shares)
	if amount.IsPositive() {
		if err := c.call(ctx, "set_budget", func(ctx context.Context) error {
			return c.platform.SetBudget(ctx, s.target, amount)
		}); err != nil {
			return outcome{}, err
		}
	}
	if err := c.call(ctx, "set_end_time", func(ctx context.Context) error {
		return c.platform.SetEndTime(ctx, s.target, endOfDay(s.now))
	}); err != nil {
		return outcome{}, err
	}
	if err := c.call(ctx, "activate", func(ctx context.Context) error {
		return c.platform.Activate(ctx, s.target)
	}); err != nil {
		return outcome{}, err
	}

	out := s.stay()
	now := s.now
	out.next = domain.StateHighSpendBudgetUpdated
	out.lastBudget = &now
	out.pushed = amount
	out.record = shares
	out.pushKind = "initial"
	out.highSpendCalc = cycleStart
	return out, nil
}

// pushSupplemental folds the outstanding clicks of URLs added since the
// budget cycle began into the pushed budget. URLs completed in the meantime
// are still ledgered exactly once.
func (c *Controller) pushSupplemental(ctx context.Context, s *snapshot) (outcome, error) {
	out := s.stay()
	since := s.camp.HighSpendBudgetCalcAt
	if since == nil {
		since = s.camp.LastBudgetUpdateTime
	}
	if since == nil {
		return out, nil
	}

	perClick := policy.PricePerClick(s.camp.PricePerThousandClicks)
	candidates := policy.BudgetCandidates(s.urls, s.ledgered, since)
	if len(candidates) == 0 {
		return out, nil
	}
	shares := make([]policy.BudgetShare, 0, len(candidates))
	for _, u := range candidates {
		shares = append(shares, policy.URLBudgetShare(u, perClick))
	}
	out.record = shares
	added := policy.SumShares(shares)
	if !added.IsPositive() {
		// completed URLs owe nothing but are still ledgered once
		return out, nil
	}
	amount := s.camp.PushedBudget.Add(added).Round(policy.AmountPlaces)

	if err := c.call(ctx, "set_budget", func(ctx context.Context) error {
		return c.platform.SetBudget(ctx, s.target, amount)
	}); err != nil {
		return outcome{}, err
	}

	now := s.now
	out.lastBudget = &now
	out.pushed = amount
	out.pushKind = "supplemental"
	return out, nil
}

// commit applies the outcome in one auto-sync transaction. The campaign row
// is re-locked and the pass is discarded if its state moved on meanwhile.
func (c *Controller) commit(ctx context.Context, s *snapshot, out outcome) error {
	var recorded []policy.BudgetShare
	err := c.repo.RunAutoSync(ctx, func(ctx context.Context, tx port.SyncTx, sc *syncguard.Scope) error {
		recorded = recorded[:0]
		cur, err := tx.LockCampaign(ctx, sc, s.camp.ID)
		if err != nil {
			return err
		}
		if cur.State != s.camp.State {
			return port.ErrStateConflict
		}

		ledger := tx.Ledger()
		if out.clearLedger {
			if err := ledger.Clear(ctx, s.camp.ID); err != nil {
				return fmt.Errorf("clear ledger: %w", err)
			}
		}
		if out.resetFlags {
			if _, err := tx.ResetBudgetCalculated(ctx, sc, s.camp.ID); err != nil {
				return err
			}
		}

		marked := make([]int64, 0, len(out.record))
		for _, share := range out.record {
			isNew, err := ledger.Record(ctx, s.camp.ID, share.URLID, share.Price)
			if err != nil {
				return fmt.Errorf("record url %d: %w", share.URLID, err)
			}
			if isNew {
				marked = append(marked, share.URLID)
				recorded = append(recorded, share)
			}
		}
		if len(marked) > 0 {
			if err := tx.MarkBudgetCalculated(ctx, sc, s.camp.ID, marked); err != nil {
				return err
			}
		}

		return tx.SaveSync(ctx, sc, domain.SyncUpdate{
			CampaignID:            s.camp.ID,
			ExpectedState:         s.camp.State,
			State:                 out.next,
			DailySpent:            s.spend,
			PushedBudget:          out.pushed,
			PausedAt:              out.pausedAt,
			LastBudgetUpdateTime:  out.lastBudget,
			HighSpendBudgetCalcAt: out.highSpendCalc,
		})
	})
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	c.syncJournal(ctx, s.camp.ID)

	if out.pushKind != "" {
		telemetry.BudgetPushes.WithLabelValues(out.pushKind).Inc()
		c.logger.Info("budget pushed",
			slog.Int64("campaign_id", s.camp.ID),
			slog.String("kind", out.pushKind),
			slog.String("amount", out.pushed.StringFixed(policy.AmountPlaces)),
			slog.Int("urls", len(recorded)),
		)
	}
	if out.next != s.camp.State {
		telemetry.Transitions.WithLabelValues(s.camp.State.String(), out.next.String()).Inc()
		c.logger.Info("campaign transition",
			slog.Int64("campaign_id", s.camp.ID),
			slog.String("from", s.camp.State.String()),
			slog.String("to", out.next.String()),
			slog.String("regime", s.eval.Regime.String()),
			slog.Int64("remaining_clicks", s.remaining),
			slog.String("daily_spent", s.spend.String()),
		)
	}
	return nil
}

// syncJournal brings the journal in line with the committed ledger. Live
// journal entries the ledger no longer has end the journal's epoch; entries
// it lacks are recorded. A failed write is retried on the next committed
// pass of the campaign.
func (c *Controller) syncJournal(ctx context.Context, campaignID int64) {
	if c.journal == nil {
		return
	}
	if err := c.reconcileJournal(ctx, campaignID); err != nil {
		c.logger.Warn("journal out of sync",
			slog.Int64("campaign_id", campaignID),
			slog.Any("error", err),
		)
	}
}

func (c *Controller) reconcileJournal(ctx context.Context, campaignID int64) error {
	want, err := c.repo.ListLedger(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("list ledger: %w", err)
	}
	have, err := c.journal.List(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("list journal: %w", err)
	}

	live := make(map[int64]bool, len(want))
	for _, e := range want {
		live[e.URLID] = true
	}
	present := make(map[int64]bool, len(have))
	for _, e := range have {
		if !live[e.URLID] {
			if err := c.journal.Clear(ctx, campaignID); err != nil {
				return fmt.Errorf("clear journal: %w", err)
			}
			clear(present)
			break
		}
		present[e.URLID] = true
	}

	for _, e := range want {
		if present[e.URLID] {
			continue
		}
		if _, err := c.journal.Record(ctx, campaignID, e.URLID, e.Price); err != nil {
			return fmt.Errorf("record url %d: %w", e.URLID, err)
		}
	}
	return nil
}

func (c *Controller) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	telemetry.PlatformCalls.WithLabelValues(op, telemetry.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("platform %s: %w", op, err)
	}
	return nil
}

// endOfDay is the last second of t's UTC day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
