// Package ledgerfile stores budget ledgers as plain text files, one line per
// entry, in the same format the ledger read endpoint serves. Each campaign
// has a history file that only grows and an active file holding the entries
// of the current epoch; clearing truncates the active file.
package ledgerfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/policy"
)

// Ledger implements port.BudgetLedger on top of a directory.
type Ledger struct {
	dir string
	now func() time.Time

	mu    sync.Mutex
	cache map[int64]map[int64]bool // campaign -> live url ids
}

// New returns a ledger rooted at dir, creating it when missing.
func New(dir string, now func() time.Time) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Ledger{dir: dir, now: now, cache: make(map[int64]map[int64]bool)}, nil
}

func (l *Ledger) historyPath(campaignID int64) string {
	return filepath.Join(l.dir, fmt.Sprintf("campaign-%d.log", campaignID))
}

func (l *Ledger) activePath(campaignID int64) string {
	return filepath.Join(l.dir, fmt.Sprintf("campaign-%d.active.log", campaignID))
}

// Record appends the entry to the active file and then to the history file.
// The active file decides deduplication, so a crash between the two appends
// leaves at most a missing history line, never a double count.
func (l *Ledger) Record(ctx context.Context, campaignID, urlID int64, price decimal.Decimal) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	live, err := l.liveLocked(campaignID)
	if err != nil {
		return false, err
	}
	if live[urlID] {
		return false, nil
	}

	line := domain.BudgetLogEntry{
		URLID:     urlID,
		Price:     price.Round(policy.AmountPlaces),
		Timestamp: l.now(),
	}.Line()
	if err = appendLine(l.activePath(campaignID), line); err != nil {
		return false, err
	}
	live[urlID] = true
	if err = appendLine(l.historyPath(campaignID), line); err != nil {
		return true, err
	}
	return true, nil
}

// List returns the active entries in recording order.
func (l *Ledger) List(ctx context.Context, campaignID int64) ([]domain.BudgetLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return readEntries(l.activePath(campaignID))
}

// History returns every entry ever recorded for the campaign.
func (l *Ledger) History(ctx context.Context, campaignID int64) ([]domain.BudgetLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return readEntries(l.historyPath(campaignID))
}

// Clear truncates the active file, ending the epoch.
func (l *Ledger) Clear(ctx context.Context, campaignID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Truncate(l.activePath(campaignID), 0); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("truncate active ledger: %w", err)
	}
	l.cache[campaignID] = make(map[int64]bool)
	return nil
}

func (l *Ledger) liveLocked(campaignID int64) (map[int64]bool, error) {
	if live, ok := l.cache[campaignID]; ok {
		return live, nil
	}
	if err := terminateTornLine(l.activePath(campaignID)); err != nil {
		return nil, err
	}
	entries, err := readEntries(l.activePath(campaignID))
	if err != nil {
		return nil, err
	}
	live := make(map[int64]bool, len(entries))
	for _, e := range entries {
		live[e.URLID] = true
	}
	l.cache[campaignID] = live
	return live, nil
}

// appendLine writes line with a single write on an O_APPEND descriptor and
// syncs it before returning.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	if _, err = f.Write([]byte(line)); err != nil {
		_ = f.Close()
		return fmt.Errorf("append ledger: %w", err)
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync ledger: %w", err)
	}
	return f.Close()
}

// terminateTornLine ends a partially written last line so the next append
// starts on a line of its own.
func terminateTornLine(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.Size() == 0 {
		return err
	}
	last := make([]byte, 1)
	if _, err = f.ReadAt(last, st.Size()-1); err != nil {
		return fmt.Errorf("read ledger tail: %w", err)
	}
	if last[0] == '\n' {
		return nil
	}
	if _, err = f.WriteAt([]byte{'\n'}, st.Size()); err != nil {
		return fmt.Errorf("repair ledger tail: %w", err)
	}
	return f.Sync()
}

func readEntries(path string) ([]domain.BudgetLogEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	var entries []domain.BudgetLogEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if sc.Text() == "" {
			continue
		}
		e, err := domain.ParseBudgetLogLine(sc.Text())
		if err != nil {
			// a torn final line from a crash mid-write is dropped
			continue
		}
		entries = append(entries, e)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return entries, nil
}
