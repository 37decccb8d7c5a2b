package domain

// ChildCampaign is an additional platform campaign that takes over a parent
// campaign's traffic once remaining clicks drop to its threshold.
type ChildCampaign struct {
	ID                      int64
	ParentCampaignID        int64
	ExternalCampaignID      string
	ClickRemainingThreshold int64
}
