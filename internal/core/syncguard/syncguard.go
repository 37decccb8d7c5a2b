// Package syncguard marks spans of database writes as automatic
// reconciliation so that click counters set by hand cannot be overwritten by
// the controller, and so that the manual click path can refuse to run inside
// such a span.
//
// A *Scope is a capability: the only way to obtain one is RunAsAutoSync, and
// every automatic write path in the persistence adapters takes it as an
// argument.
package syncguard

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	// ErrScopeClosed is returned when a scope is used after RunAsAutoSync
	// returned.
	ErrScopeClosed = errors.New("auto-sync scope already closed")
	// ErrAutoSyncActive is returned by RequireManual inside an auto-sync
	// scope.
	ErrAutoSyncActive = errors.New("manual click update attempted inside automatic sync")
	// ErrNilScope is returned when an automatic write is attempted without a
	// scope.
	ErrNilScope = errors.New("automatic write requires an auto-sync scope")
)

// Marker installs the auto-sync marker where database-side logic can see
// it. The Postgres adapter sets a transaction-local setting, so the marker
// disappears with the transaction.
type Marker interface {
	MarkAutoSync(ctx context.Context) error
}

// MarkerFunc adapts a function to Marker.
type MarkerFunc func(ctx context.Context) error

// MarkAutoSync calls f.
func (f MarkerFunc) MarkAutoSync(ctx context.Context) error { return f(ctx) }

// Scope is a live auto-sync span.
type Scope struct {
	id     uuid.UUID
	closed atomic.Bool
}

// ID identifies the scope in logs.
func (s *Scope) ID() uuid.UUID { return s.id }

// Check reports whether the scope may still be used for writes.
func (s *Scope) Check() error {
	if s == nil {
		return ErrNilScope
	}
	if s.closed.Load() {
		return ErrScopeClosed
	}
	return nil
}

type scopeKey struct{}

// RunAsAutoSync runs fn inside a new auto-sync scope. The scope is closed on
// every exit path, including a panic in fn, which is re-raised.
func RunAsAutoSync[T any](ctx context.Context, m Marker, fn func(ctx context.Context, s *Scope) (T, error)) (T, error) {
	var zero T
	s := &Scope{id: uuid.New()}
	defer s.closed.Store(true)

	if m != nil {
		if err := m.MarkAutoSync(ctx); err != nil {
			return zero, err
		}
	}
	return fn(context.WithValue(ctx, scopeKey{}, s), s)
}

// FromContext returns the open auto-sync scope carried by ctx, if any.
func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	if !ok || s.Check() != nil {
		return nil, false
	}
	return s, true
}

// RequireManual fails when ctx belongs to an open auto-sync scope. Paths that
// validate and store externally supplied click values call it first.
func RequireManual(ctx context.Context) error {
	if _, ok := FromContext(ctx); ok {
		return ErrAutoSyncActive
	}
	return nil
}
