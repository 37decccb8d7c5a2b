package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/port"
	"traffic-controller/internal/core/syncguard"
)

// GetURL returns a URL by id.
func (s *Store) GetURL(ctx context.Context, id int64) (*domain.URL, error) {
	return s.urlRow(s.pool.QueryRow(ctx, `SELECT `+urlColumns+` FROM urls WHERE id = $1`, id))
}

// RegisterClick counts one click on an active URL and completes it when the
// limit is reached, in a single statement.
func (s *Store) RegisterClick(ctx context.Context, id int64) (*domain.URL, error) {
	return s.urlRow(s.pool.QueryRow(ctx, `
        UPDATE urls SET
            clicks = clicks + 1,
            status = CASE WHEN clicks + 1 >= click_limit THEN 'complete' ELSE status END,
            updated_at = now()
        WHERE id = $1 AND status = 'active' AND clicks < click_limit
        RETURNING `+urlColumns, id))
}

// SetClicks stores a manually entered click count. It refuses to run inside
// an auto-sync scope; the database trigger enforces the same rule for the
// transaction.
func (s *Store) SetClicks(ctx context.Context, id int64, clicks int64) (*domain.URL, error) {
	if err := syncguard.RequireManual(ctx); err != nil {
		return nil, err
	}
	return s.urlRow(s.pool.QueryRow(ctx, `
        UPDATE urls SET
            clicks = $2::bigint,
            status = CASE WHEN status = 'active' AND $2::bigint >= click_limit THEN 'complete' ELSE status END,
            updated_at = now()
        WHERE id = $1
        RETURNING `+urlColumns, id, clicks))
}

func (s *Store) urlRow(row pgx.Row) (*domain.URL, error) {
	u, err := scanURL(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
