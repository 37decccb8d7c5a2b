package usecase

import (
	"context"
	"fmt"

	"traffic-controller/internal/core/domain"
	"traffic-controller/internal/core/port"
)

// SyncStateService serves the read-only reconciliation view.
type SyncStateService struct {
	repo port.CampaignRepository
}

func NewSyncStateService(repo port.CampaignRepository) *SyncStateService {
	return &SyncStateService{repo: repo}
}

func (s *SyncStateService) SyncState(ctx context.Context, campaignID int64) (*domain.SyncState, error) {
	camp, err := s.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	st, err := s.build(ctx, camp)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *SyncStateService) ListSyncStates(ctx context.Context) ([]domain.SyncState, error) {
	campaigns, err := s.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SyncState, 0, len(campaigns))
	for i := range campaigns {
		st, err := s.build(ctx, &campaigns[i])
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *SyncStateService) build(ctx context.Context, camp *domain.Campaign) (domain.SyncState, error) {
	entries, err := s.repo.ListLedger(ctx, camp.ID)
	if err != nil {
		return domain.SyncState{}, fmt.Errorf("list ledger of campaign %d: %w", camp.ID, err)
	}
	if entries == nil {
		entries = []domain.BudgetLogEntry{}
	}
	return domain.SyncState{
		CampaignID:           camp.ID,
		Name:                 camp.Name,
		State:                camp.State,
		DailySpent:           camp.DailySpent,
		LastBudgetUpdateTime: camp.LastBudgetUpdateTime,
		LedgerEntries:        entries,
	}, nil
}
