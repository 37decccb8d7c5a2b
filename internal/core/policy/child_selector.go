package policy

import (
	"slices"

	"traffic-controller/internal/core/domain"
)

// SortChildren returns a copy of children ordered by ascending
// ClickRemainingThreshold. Equal thresholds keep their id order.
func SortChildren(children []domain.ChildCampaign) []domain.ChildCampaign {
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b domain.ChildCampaign) int {
		if a.ClickRemainingThreshold != b.ClickRemainingThreshold {
			if a.ClickRemainingThreshold < b.ClickRemainingThreshold {
				return -1
			}
			return 1
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return sorted
}

// SelectChild picks the child campaign that should receive traffic for the
// given remaining clicks: the first, in threshold order, whose threshold is
// not exceeded, or the largest bucket when every threshold is exceeded. It
// returns nil for an empty list, in which case the parent campaign is driven
// directly.
func SelectChild(children []domain.ChildCampaign, remainingClicks int64) *domain.ChildCampaign {
	if len(children) == 0 {
		return nil
	}
	sorted := SortChildren(children)
	for i := range sorted {
		if sorted[i].ClickRemainingThreshold >= remainingClicks {
			return &sorted[i]
		}
	}
	return &sorted[len(sorted)-1]
}
