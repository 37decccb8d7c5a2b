package usecase

import "sync"

// LeaseSet hands out exclusive per-campaign claims so that two passes over
// the same campaign never overlap. A claim lasts until its release func is
// called; passes release it on return, and every pass runs under a deadline.
type LeaseSet struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

// NewLeaseSet returns an empty lease set.
func NewLeaseSet() *LeaseSet {
	return &LeaseSet{held: make(map[int64]struct{})}
}

// TryAcquire claims the campaign. It returns false when another pass holds
// it. The release func is idempotent.
func (l *LeaseSet) TryAcquire(campaignID int64) (release func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[campaignID]; busy {
		return nil, false
	}
	l.held[campaignID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, campaignID)
			l.mu.Unlock()
		})
	}, true
}

// Held reports whether the campaign is currently claimed.
func (l *LeaseSet) Held(campaignID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, busy := l.held[campaignID]
	return busy
}
