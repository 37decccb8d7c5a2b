package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/policy"
	"traffic-controller/internal/core/port"
	"traffic-controller/internal/core/syncguard"
)

var errCommitFailed = errors.New("commit failed")

// memData is the persisted state of memRepo. Transactions work on a clone
// that replaces the stored copy only on commit.
type memData struct {
	campaigns map[int64]domain.Campaign
	urls      map[int64][]domain.URL
	children  map[int64][]domain.ChildCampaign
	ledger    map[int64][]domain.BudgetLogEntry
}

func (d *memData) clone() *memData {
	out := &memData{
		campaigns: make(map[int64]domain.Campaign, len(d.campaigns)),
		urls:      make(map[int64][]domain.URL, len(d.urls)),
		children:  make(map[int64][]domain.ChildCampaign, len(d.children)),
		ledger:    make(map[int64][]domain.BudgetLogEntry, len(d.ledger)),
	}
	for k, v := range d.campaigns {
		out.campaigns[k] = v
	}
	for k, v := range d.urls {
		out.urls[k] = slices.Clone(v)
	}
	for k, v := range d.children {
		out.children[k] = slices.Clone(v)
	}
	for k, v := range d.ledger {
		out.ledger[k] = slices.Clone(v)
	}
	return out
}

type memRepo struct {
	mu          sync.Mutex
	data        *memData
	now         func() time.Time
	failCommits int
	commits     int
}

func newMemRepo(now func() time.Time) *memRepo {
	return &memRepo{
		data: &memData{
			campaigns: map[int64]domain.Campaign{},
			urls:      map[int64][]domain.URL{},
			children:  map[int64][]domain.ChildCampaign{},
			ledger:    map[int64][]domain.BudgetLogEntry{},
		},
		now: now,
	}
}

func (r *memRepo) putCampaign(c domain.Campaign) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.campaigns[c.ID] = c
}

func (r *memRepo) putURL(u domain.URL) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.urls[u.CampaignID] = append(r.data.urls[u.CampaignID], u)
}

func (r *memRepo) putLedger(campaignID int64, e domain.BudgetLogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.ledger[campaignID] = append(r.data.ledger[campaignID], e)
}

func (r *memRepo) campaign(id int64) domain.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.campaigns[id]
}

func (r *memRepo) url(campaignID, id int64) domain.URL {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.data.urls[campaignID] {
		if u.ID == id {
			return u
		}
	}
	return domain.URL{}
}

func (r *memRepo) ledger(campaignID int64) []domain.BudgetLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.data.ledger[campaignID])
}

func (r *memRepo) ListControlledCampaigns(context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for _, c := range r.data.campaigns {
		if c.TrafficControlEnabled {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.Campaign) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r *memRepo) ListCampaigns(context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Campaign
	for _, c := range r.data.campaigns {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b domain.Campaign) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r *memRepo) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data.campaigns[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) ListCampaignURLs(_ context.Context, campaignID int64) ([]domain.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.data.urls[campaignID]), nil
}

func (r *memRepo) ListChildCampaigns(_ context.Context, parentID int64) ([]domain.ChildCampaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.data.children[parentID]), nil
}

func (r *memRepo) ListLedger(_ context.Context, campaignID int64) ([]domain.BudgetLogEntry, error) {
	return r.ledger(campaignID), nil
}

func (r *memRepo) RunAutoSync(ctx context.Context, fn func(ctx context.Context, tx port.SyncTx, s *syncguard.Scope) error) error {
	r.mu.Lock()
	work := r.data.clone()
	r.mu.Unlock()

	_, err := syncguard.RunAsAutoSync(ctx, nil, func(ctx context.Context, s *syncguard.Scope) (struct{}, error) {
		return struct{}{}, fn(ctx, &memTx{data: work, now: r.now}, s)
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCommits > 0 {
		r.failCommits--
		return errCommitFailed
	}
	r.data = work
	r.commits++
	return nil
}

type memTx struct {
	data *memData
	now  func() time.Time
}

func (tx *memTx) LockCampaign(_ context.Context, s *syncguard.Scope, id int64) (*domain.Campaign, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	c, ok := tx.data.campaigns[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return &c, nil
}

func (tx *memTx) SaveSync(_ context.Context, s *syncguard.Scope, upd domain.SyncUpdate) error {
	if err := s.Check(); err != nil {
		return err
	}
	c, ok := tx.data.campaigns[upd.CampaignID]
	if !ok {
		return port.ErrNotFound
	}
	if c.State != upd.ExpectedState {
		return port.ErrStateConflict
	}
	c.State = upd.State
	c.DailySpent = upd.DailySpent
	c.PushedBudget = upd.PushedBudget
	c.PausedAt = upd.PausedAt
	c.LastBudgetUpdateTime = upd.LastBudgetUpdateTime
	c.HighSpendBudgetCalcAt = upd.HighSpendBudgetCalcAt
	tx.data.campaigns[c.ID] = c
	return nil
}

func (tx *memTx) MarkBudgetCalculated(_ context.Context, s *syncguard.Scope, campaignID int64, urlIDs []int64) error {
	if err := s.Check(); err != nil {
		return err
	}
	urls := tx.data.urls[campaignID]
	for i := range urls {
		if slices.Contains(urlIDs, urls[i].ID) {
			urls[i].BudgetCalculated = true
		}
	}
	return nil
}

func (tx *memTx) ResetBudgetCalculated(_ context.Context, s *syncguard.Scope, campaignID int64) (int64, error) {
	if err := s.Check(); err != nil {
		return 0, err
	}
	live := map[int64]bool{}
	for _, e := range tx.data.ledger[campaignID] {
		live[e.URLID] = true
	}
	var n int64
	urls := tx.data.urls[campaignID]
	for i := range urls {
		if urls[i].BudgetCalculated && !live[urls[i].ID] {
			urls[i].BudgetCalculated = false
			n++
		}
	}
	return n, nil
}

func (tx *memTx) Ledger() port.BudgetLedger { return tx }

func (tx *memTx) Record(_ context.Context, campaignID, urlID int64, price decimal.Decimal) (bool, error) {
	for _, e := range tx.data.ledger[campaignID] {
		if e.URLID == urlID {
			return false, nil
		}
	}
	tx.data.ledger[campaignID] = append(tx.data.ledger[campaignID], domain.BudgetLogEntry{
		URLID:     urlID,
		Price:     price.Round(policy.AmountPlaces),
		Timestamp: tx.now().UTC().Truncate(time.Second),
	})
	return true, nil
}

func (tx *memTx) List(_ context.Context, campaignID int64) ([]domain.BudgetLogEntry, error) {
	return slices.Clone(tx.data.ledger[campaignID]), nil
}

func (tx *memTx) Clear(_ context.Context, campaignID int64) error {
	delete(tx.data.ledger, campaignID)
	return nil
}
