package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/port"
	"traffic-controller/internal/core/syncguard"
	"traffic-controller/internal/telemetry"
)

// URLService handles redirects and manual click edits.
type URLService struct {
	repo   port.URLRepository
	logger *slog.Logger
}

func NewURLService(repo port.URLRepository, logger *slog.Logger) *URLService {
	return &URLService{repo: repo, logger: logger}
}

// Redirect counts a click on an active URL and returns its target.
func (s *URLService) Redirect(ctx context.Context, urlID int64) (string, error) {
	u, err := s.repo.RegisterClick(ctx, urlID)
	switch {
	case errors.Is(err, port.ErrNotFound):
		telemetry.Redirects.WithLabelValues("not_found").Inc()
		return "", err
	case err != nil:
		telemetry.Redirects.WithLabelValues("error").Inc()
		return "", err
	}

	telemetry.Redirects.WithLabelValues("ok").Inc()
	if u.Status == domain.URLStatusComplete {
		s.logger.Info("url completed", slog.Int64("url_id", u.ID), slog.Int64("campaign_id", u.CampaignID))
	}
	return u.TargetURL, nil
}

// UpdateClicks is the manual edit path. Fractions are truncated.
func (s *URLService) UpdateClicks(ctx context.Context, urlID int64, raw string) (*domain.URL, error) {
	if err := syncguard.RequireManual(ctx); err != nil {
		return nil, err
	}
	clicks, err := ParseClicks(raw)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.SetClicks(ctx, urlID, clicks)
	if err != nil {
		return nil, err
	}
	s.logger.Info("clicks updated manually", slog.Int64("url_id", urlID), slog.Int64("clicks", clicks))
	return u, nil
}

var maxClicks = decimal.NewFromInt(math.MaxInt64)

// ParseClicks validates a click count entered by a person. Fractions are
// truncated; counts that do not fit an int64 are rejected.
func ParseClicks(raw string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return 0, port.ErrInvalidClicks
	}
	d = d.Truncate(0)
	if d.GreaterThan(maxClicks) {
		return 0, port.ErrInvalidClicks
	}
	return d.IntPart(), nil
}
