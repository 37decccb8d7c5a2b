package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"traffic-controller/internal/adapter/ledgerfile"
	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/port"
	"traffic-controller/internal/core/port/mocks"
)

var t0 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(now time.Time) *testClock { return &testClock{now: now} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func timeEq(want time.Time) interface{} {
	return mock.MatchedBy(func(t time.Time) bool { return t.Equal(want) })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testCampaign pauses at 5000 remaining clicks and re-activates at 15000
// in both regimes, at 2.5 per thousand clicks.
func testCampaign(id int64, state domain.State) domain.Campaign {
	return domain.Campaign{
		ID:                     id,
		Name:                   "campaign",
		ExternalCampaignID:     ptr("ext-1"),
		TrafficControlEnabled:  true,
		State:                  state,
		PricePerThousandClicks: dec("2.5"),
		Thresholds: domain.Thresholds{
			LowSpendPauseClicks:     ptr(int64(5000)),
			LowSpendActivateClicks:  ptr(int64(15000)),
			HighSpendPauseClicks:    ptr(int64(5000)),
			HighSpendActivateClicks: ptr(int64(15000)),
		},
		PostPauseCheckMinutes: 2,
		HighSpendWaitMinutes:  11,
	}
}

func testURL(id, campaignID, limit, clicks int64, createdAt time.Time) domain.URL {
	return domain.URL{
		ID:         id,
		CampaignID: campaignID,
		TargetURL:  "https://example.com/landing",
		Status:     domain.URLStatusActive,
		Clicks:     clicks,
		ClickLimit: limit,
		CreatedAt:  createdAt,
	}
}

func newTestController(repo port.CampaignRepository, pl port.PlatformClient, clk *testClock, opts ...ControllerOption) *Controller {
	opts = append([]ControllerOption{WithClock(clk.Now), WithWorkers(2), WithPassTimeout(time.Second)}, opts...)
	return NewController(repo, pl, discardLogger(), opts...)
}

var endOfT0 = time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)

func TestLowSpendCycle(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("5"), nil)
	pl.EXPECT().Pause(mock.Anything, "ext-1").Return(nil).Once()

	ctrl := newTestController(repo, pl, clk)

	require.NoError(t, ctrl.RunPass(ctx))
	camp := repo.campaign(1)
	assert.Equal(t, domain.StatePaused, camp.State)
	require.NotNil(t, camp.PausedAt)
	assert.True(t, camp.PausedAt.Equal(t0))
	assert.Nil(t, camp.HighSpendBudgetCalcAt)
	assert.True(t, camp.DailySpent.Equal(dec("5")))

	// still inside the post-pause wait
	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))
	assert.Equal(t, domain.StatePaused, repo.campaign(1).State)

	pl.EXPECT().SetEndTime(mock.Anything, "ext-1", timeEq(endOfT0)).Return(nil).Once()
	pl.EXPECT().Activate(mock.Anything, "ext-1").Return(nil).Once()

	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))
	camp = repo.campaign(1)
	assert.Equal(t, domain.StateActive, camp.State)
	assert.Nil(t, camp.PausedAt)
	assert.True(t, camp.PushedBudget.IsZero())
	assert.Empty(t, repo.ledger(1))
}

func TestHighSpendCycle(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))

	journal, err := ledgerfile.New(t.TempDir(), clk.Now)
	require.NoError(t, err)

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("15.0"), nil)
	pl.EXPECT().Pause(mock.Anything, "ext-1").Return(nil).Once()

	ctrl := newTestController(repo, pl, clk, WithJournal(journal))

	require.NoError(t, ctrl.RunPass(ctx))
	camp := repo.campaign(1)
	assert.Equal(t, domain.StateHighSpendPaused, camp.State)
	require.NotNil(t, camp.HighSpendBudgetCalcAt)
	assert.True(t, camp.HighSpendBudgetCalcAt.Equal(t0))

	clk.Advance(10 * time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))
	assert.Equal(t, domain.StateHighSpendPaused, repo.campaign(1).State)

	pl.EXPECT().SetBudget(mock.Anything, "ext-1", decEq("10.0000")).Return(nil).Once()
	pl.EXPECT().SetEndTime(mock.Anything, "ext-1", timeEq(endOfT0)).Return(nil).Once()
	pl.EXPECT().Activate(mock.Anything, "ext-1").Return(nil).Once()

	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))

	camp = repo.campaign(1)
	assert.Equal(t, domain.StateHighSpendBudgetUpdated, camp.State)
	assert.True(t, camp.PushedBudget.Equal(dec("10")))
	require.NotNil(t, camp.LastBudgetUpdateTime)
	assert.True(t, camp.LastBudgetUpdateTime.Equal(t0.Add(11*time.Minute)))
	assert.True(t, repo.url(1, 1).BudgetCalculated)

	entries := repo.ledger(1)
	require.Len(t, entries, 1)
	assert.Equal(t, "1|10.0000|2026-03-02::10:11:00\n", entries[0].Line())

	mirrored, err := journal.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mirrored, 1)
	assert.Equal(t, entries[0].Line(), mirrored[0].Line())

	// nothing new to fold in
	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))
	assert.Len(t, repo.ledger(1), 1)
	assert.True(t, repo.campaign(1).PushedBudget.Equal(dec("10")))
}

func TestBudgetPushReplayAfterFailedCommit(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0.Add(20 * time.Minute))
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateHighSpendPaused)
	camp.PausedAt = ptr(t0)
	camp.HighSpendBudgetCalcAt = ptr(t0)
	repo.putCampaign(camp)
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))
	repo.failCommits = 1

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("15"), nil)
	pl.EXPECT().SetBudget(mock.Anything, "ext-1", decEq("10")).Return(nil).Times(2)
	pl.EXPECT().SetEndTime(mock.Anything, "ext-1", mock.Anything).Return(nil).Times(2)
	pl.EXPECT().Activate(mock.Anything, "ext-1").Return(nil).Times(2)

	ctrl := newTestController(repo, pl, clk)

	err := ctrl.RunPass(ctx)
	require.ErrorIs(t, err, errCommitFailed)
	assert.Equal(t, domain.StateHighSpendPaused, repo.campaign(1).State)
	assert.Empty(t, repo.ledger(1))
	assert.False(t, repo.url(1, 1).BudgetCalculated)

	require.NoError(t, ctrl.RunPass(ctx))
	require.NoError(t, ctrl.RunPass(ctx))

	assert.Equal(t, domain.StateHighSpendBudgetUpdated, repo.campaign(1).State)
	assert.True(t, repo.campaign(1).PushedBudget.Equal(dec("10")))
	assert.Len(t, repo.ledger(1), 1)
}

func TestCompletedURLCountedOnce(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0.Add(11 * time.Minute))
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateHighSpendPaused)
	camp.PausedAt = ptr(t0)
	camp.HighSpendBudgetCalcAt = ptr(t0)
	repo.putCampaign(camp)
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))
	done := testURL(2, 1, 500, 500, t0.Add(time.Minute))
	done.Status = domain.URLStatusComplete
	repo.putURL(done)

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("15"), nil)
	pl.EXPECT().SetBudget(mock.Anything, "ext-1", decEq("10")).Return(nil).Once()
	pl.EXPECT().SetEndTime(mock.Anything, "ext-1", mock.Anything).Return(nil).Once()
	pl.EXPECT().Activate(mock.Anything, "ext-1").Return(nil).Once()

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.RunPass(ctx))

	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))

	entries := repo.ledger(1)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[1].URLID)
	assert.True(t, entries[1].Price.IsZero())
	assert.True(t, repo.url(1, 2).BudgetCalculated)
}

func TestSupplementalURLPushedOnce(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0.Add(30 * time.Minute))
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateHighSpendBudgetUpdated)
	camp.PausedAt = ptr(t0)
	camp.HighSpendBudgetCalcAt = ptr(t0)
	camp.LastBudgetUpdateTime = ptr(t0.Add(11 * time.Minute))
	camp.PushedBudget = dec("10")
	repo.putCampaign(camp)

	counted := testURL(1, 1, 10000, 6000, t0.Add(-time.Hour))
	counted.BudgetCalculated = true
	repo.putURL(counted)
	repo.putLedger(1, domain.BudgetLogEntry{URLID: 1, Price: dec("10"), Timestamp: t0.Add(11 * time.Minute)})
	// only the 500 clicks still owed are charged
	repo.putURL(testURL(2, 1, 2000, 1500, t0.Add(20*time.Minute)))

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("15"), nil)
	pl.EXPECT().SetBudget(mock.Anything, "ext-1", decEq("11.25")).Return(nil).Once()

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.RunPass(ctx))

	camp = repo.campaign(1)
	assert.Equal(t, domain.StateHighSpendBudgetUpdated, camp.State)
	assert.True(t, camp.PushedBudget.Equal(dec("11.25")))
	assert.True(t, camp.LastBudgetUpdateTime.Equal(clk.Now()))
	assert.True(t, repo.url(1, 2).BudgetCalculated)
	assert.Len(t, repo.ledger(1), 2)

	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))
	assert.Len(t, repo.ledger(1), 2)
	assert.True(t, repo.campaign(1).PushedBudget.Equal(dec("11.25")))
}

func TestSupplementalCompletedURLLedgeredWithoutPush(t *testing.T) {
	clk := newTestClock(t0.Add(30 * time.Minute))
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateHighSpendBudgetUpdated)
	camp.HighSpendBudgetCalcAt = ptr(t0)
	camp.LastBudgetUpdateTime = ptr(t0.Add(11 * time.Minute))
	camp.PushedBudget = dec("10")
	repo.putCampaign(camp)
	done := testURL(2, 1, 700, 700, t0.Add(20*time.Minute))
	done.Status = domain.URLStatusComplete
	repo.putURL(done)

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("15"), nil)

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.RunPass(context.Background()))

	entries := repo.ledger(1)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].URLID)
	assert.True(t, repo.url(1, 2).BudgetCalculated)
	assert.True(t, repo.campaign(1).PushedBudget.Equal(dec("10")))
	assert.True(t, repo.campaign(1).LastBudgetUpdateTime.Equal(t0.Add(11*time.Minute)))
}

func TestBudgetUpdatedReturnsToActiveOnLowSpend(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0.Add(30 * time.Minute))
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateHighSpendBudgetUpdated)
	camp.HighSpendBudgetCalcAt = ptr(t0)
	camp.PushedBudget = dec("10")
	repo.putCampaign(camp)
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))
	repo.putLedger(1, domain.BudgetLogEntry{URLID: 1, Price: dec("10"), Timestamp: t0})

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("9.99"), nil)

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.RunPass(ctx))

	assert.Equal(t, domain.StateActive, repo.campaign(1).State)
	assert.Empty(t, repo.ledger(1))
}

func TestIdleCampaignActivates(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateIdle))
	repo.putURL(testURL(1, 1, 20000, 0, t0.Add(-time.Hour)))

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("1"), nil)
	pl.EXPECT().SetEndTime(mock.Anything, "ext-1", timeEq(endOfT0)).Return(nil).Once()
	pl.EXPECT().Activate(mock.Anything, "ext-1").Return(nil).Once()

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.ReconcileCampaign(context.Background(), 1))
	assert.Equal(t, domain.StateActive, repo.campaign(1).State)
}

func TestActiveLowSpendClearsLedger(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))
	repo.putURL(testURL(1, 1, 20000, 0, t0.Add(-time.Hour)))
	repo.putLedger(1, domain.BudgetLogEntry{URLID: 1, Price: dec("3"), Timestamp: t0.Add(-time.Hour)})

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("2"), nil)

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.RunPass(context.Background()))
	assert.Equal(t, domain.StateActive, repo.campaign(1).State)
	assert.Empty(t, repo.ledger(1))
	assert.True(t, repo.campaign(1).DailySpent.Equal(dec("2")))
}

func TestForceActivatedIsSink(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))
	repo.putURL(testURL(1, 1, 100, 0, t0.Add(-time.Hour)))

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("15"), nil)
	pl.EXPECT().Activate(mock.Anything, "ext-1").Return(nil).Times(2)

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.ForceActivate(ctx, 1))
	assert.Equal(t, domain.StateForceActivated, repo.campaign(1).State)

	for n := 0; n < 2; n++ {
		clk.Advance(time.Hour)
		require.NoError(t, ctrl.RunPass(ctx))
		assert.Equal(t, domain.StateForceActivated, repo.campaign(1).State)
	}

	require.NoError(t, ctrl.ReleaseForceActivation(ctx, 1))
	assert.Equal(t, domain.StateActive, repo.campaign(1).State)
	assert.ErrorIs(t, ctrl.ReleaseForceActivation(ctx, 1), port.ErrNotForceActivated)
}

func TestForceActivateRequiresManagedCampaign(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateIdle)
	camp.TrafficControlEnabled = false
	repo.putCampaign(camp)

	ctrl := newTestController(repo, mocks.NewMockPlatformClient(t), clk)
	assert.ErrorIs(t, ctrl.ForceActivate(context.Background(), 1), port.ErrNotManaged)
	assert.ErrorIs(t, ctrl.ForceActivate(context.Background(), 2), port.ErrNotFound)
}

func TestPlatformFailureLeavesStateUnchanged(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))

	boom := errors.New("platform unavailable")
	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("5"), nil)
	pl.EXPECT().Pause(mock.Anything, "ext-1").Return(boom).Once()

	ctrl := newTestController(repo, pl, clk)
	err := ctrl.RunPass(context.Background())
	require.ErrorIs(t, err, boom)

	camp := repo.campaign(1)
	assert.Equal(t, domain.StateActive, camp.State)
	assert.Nil(t, camp.PausedAt)
	assert.True(t, camp.DailySpent.IsZero())
	assert.Zero(t, repo.commits)
}

func TestSpendFetchFailureSkipsPass(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))

	boom := errors.New("timeout")
	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(decimal.Zero, boom)

	ctrl := newTestController(repo, pl, clk)
	require.ErrorIs(t, ctrl.ReconcileCampaign(context.Background(), 1), boom)
	assert.Zero(t, repo.commits)
}

func TestMisconfiguredCampaign(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	broken := testCampaign(1, domain.StateActive)
	broken.ExternalCampaignID = nil
	repo.putCampaign(broken)
	inert := testCampaign(2, domain.StateIdle)
	inert.ExternalCampaignID = nil
	inert.TrafficControlEnabled = false
	repo.putCampaign(inert)

	ctrl := newTestController(repo, mocks.NewMockPlatformClient(t), clk)
	assert.ErrorIs(t, ctrl.RunPass(context.Background()), port.ErrMisconfigured)
	assert.NoError(t, ctrl.ReconcileCampaign(context.Background(), 2))
	assert.Zero(t, repo.commits)
}

func TestRunPassSkipsLeasedCampaign(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))
	second := testCampaign(2, domain.StateActive)
	second.ExternalCampaignID = ptr("ext-2")
	repo.putCampaign(second)
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))
	repo.putURL(testURL(2, 2, 10000, 6000, t0.Add(-time.Hour)))

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-2", mock.Anything).Return(dec("5"), nil).Once()
	pl.EXPECT().Pause(mock.Anything, "ext-2").Return(nil).Once()

	leases := NewLeaseSet()
	release, ok := leases.TryAcquire(1)
	require.True(t, ok)
	defer release()

	ctrl := newTestController(repo, pl, clk, WithLeases(leases))
	require.NoError(t, ctrl.RunPass(context.Background()))

	assert.Equal(t, domain.StateActive, repo.campaign(1).State)
	assert.Equal(t, domain.StatePaused, repo.campaign(2).State)
	assert.ErrorIs(t, ctrl.ForceActivate(context.Background(), 1), port.ErrBusy)
}

func TestConcurrentStateChangeAbortsCommit(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("5"), nil)
	pl.EXPECT().Pause(mock.Anything, "ext-1").RunAndReturn(func(context.Context, string) error {
		c := repo.campaign(1)
		c.State = domain.StateForceActivated
		repo.putCampaign(c)
		return nil
	}).Once()

	ctrl := newTestController(repo, pl, clk)
	require.ErrorIs(t, ctrl.RunPass(context.Background()), port.ErrStateConflict)
	assert.Equal(t, domain.StateForceActivated, repo.campaign(1).State)
}

func TestChildCampaignIsTargeted(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	repo.putCampaign(testCampaign(1, domain.StateActive))
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))
	repo.data.children[1] = []domain.ChildCampaign{
		{ID: 2, ParentCampaignID: 1, ExternalCampaignID: "child-large", ClickRemainingThreshold: 5000},
		{ID: 1, ParentCampaignID: 1, ExternalCampaignID: "child-small", ClickRemainingThreshold: 3000},
	}

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "child-large", mock.Anything).Return(dec("5"), nil)
	pl.EXPECT().Pause(mock.Anything, "child-large").Return(nil).Once()

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.RunPass(context.Background()))
	assert.Equal(t, domain.StatePaused, repo.campaign(1).State)
}

func TestRunStopsWhenContextDone(t *testing.T) {
	clk := newTestClock(t0)
	ctrl := newTestController(newMemRepo(clk.Now), mocks.NewMockPlatformClient(t), clk)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		ctrl.Run(ctx, time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, 3, 2, 23, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))
	assert.Equal(t, time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC), endOfDay(in))
}

func TestForceActivatedActivatesWithoutSpendReport(t *testing.T) {
	clk := newTestClock(t0)
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateForceActivated)
	camp.DailySpent = dec("12")
	repo.putCampaign(camp)

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(decimal.Zero, errors.New("report api down"))
	pl.EXPECT().Activate(mock.Anything, "ext-1").Return(nil).Once()

	ctrl := newTestController(repo, pl, clk)
	require.NoError(t, ctrl.RunPass(context.Background()))

	camp = repo.campaign(1)
	assert.Equal(t, domain.StateForceActivated, camp.State)
	assert.True(t, camp.DailySpent.Equal(dec("12")))
}

var errJournalDown = errors.New("journal down")

// flakyJournal fails the first failRecords Record and failClears Clear calls.
type flakyJournal struct {
	*ledgerfile.Ledger
	failRecords int
	failClears  int
}

func (j *flakyJournal) Record(ctx context.Context, campaignID, urlID int64, price decimal.Decimal) (bool, error) {
	if j.failRecords > 0 {
		j.failRecords--
		return false, errJournalDown
	}
	return j.Ledger.Record(ctx, campaignID, urlID, price)
}

func (j *flakyJournal) Clear(ctx context.Context, campaignID int64) error {
	if j.failClears > 0 {
		j.failClears--
		return errJournalDown
	}
	return j.Ledger.Clear(ctx, campaignID)
}

func journalURLs(t *testing.T, j port.BudgetLedger, campaignID int64) map[int64]string {
	t.Helper()
	entries, err := j.List(context.Background(), campaignID)
	require.NoError(t, err)
	got := make(map[int64]string, len(entries))
	for _, e := range entries {
		got[e.URLID] = e.Price.StringFixed(4)
	}
	return got
}

func TestJournalCatchesUpAfterFailedRecord(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0.Add(11 * time.Minute))
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateHighSpendPaused)
	camp.PausedAt = ptr(t0)
	camp.HighSpendBudgetCalcAt = ptr(t0)
	repo.putCampaign(camp)
	repo.putURL(testURL(1, 1, 10000, 6000, t0.Add(-time.Hour)))

	files, err := ledgerfile.New(t.TempDir(), clk.Now)
	require.NoError(t, err)
	journal := &flakyJournal{Ledger: files, failRecords: 1}

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("15"), nil)
	pl.EXPECT().SetBudget(mock.Anything, "ext-1", decEq("10")).Return(nil).Once()
	pl.EXPECT().SetEndTime(mock.Anything, "ext-1", mock.Anything).Return(nil).Once()
	pl.EXPECT().Activate(mock.Anything, "ext-1").Return(nil).Once()

	ctrl := newTestController(repo, pl, clk, WithJournal(journal))

	require.NoError(t, ctrl.RunPass(ctx))
	assert.Equal(t, domain.StateHighSpendBudgetUpdated, repo.campaign(1).State)
	require.Len(t, repo.ledger(1), 1)
	assert.Empty(t, journalURLs(t, journal, 1))

	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))
	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))

	assert.Equal(t, map[int64]string{1: "10.0000"}, journalURLs(t, journal, 1))
	assert.Len(t, repo.ledger(1), 1)
}

func TestJournalDropsClearedEntriesAfterFailedClear(t *testing.T) {
	ctx := context.Background()
	clk := newTestClock(t0.Add(30 * time.Minute))
	repo := newMemRepo(clk.Now)
	camp := testCampaign(1, domain.StateHighSpendBudgetUpdated)
	camp.HighSpendBudgetCalcAt = ptr(t0)
	camp.PushedBudget = dec("10")
	repo.putCampaign(camp)
	repo.putURL(testURL(1, 1, 20000, 10000, t0.Add(-time.Hour)))
	repo.putLedger(1, domain.BudgetLogEntry{URLID: 1, Price: dec("25"), Timestamp: t0})

	files, err := ledgerfile.New(t.TempDir(), clk.Now)
	require.NoError(t, err)
	_, err = files.Record(ctx, 1, 1, dec("25"))
	require.NoError(t, err)
	journal := &flakyJournal{Ledger: files, failClears: 1}

	pl := mocks.NewMockPlatformClient(t)
	pl.EXPECT().GetDailySpend(mock.Anything, "ext-1", mock.Anything).Return(dec("2"), nil)

	ctrl := newTestController(repo, pl, clk, WithJournal(journal))

	require.NoError(t, ctrl.RunPass(ctx))
	assert.Equal(t, domain.StateActive, repo.campaign(1).State)
	assert.Empty(t, repo.ledger(1))
	assert.Equal(t, map[int64]string{1: "25.0000"}, journalURLs(t, journal, 1))

	clk.Advance(time.Minute)
	require.NoError(t, ctrl.RunPass(ctx))
	assert.Empty(t, journalURLs(t, journal, 1))
}
