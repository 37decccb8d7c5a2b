package domain

import "time"

// URLStatus is the delivery status of a tracked URL.
type URLStatus string

const (
	URLStatusActive   URLStatus = "active"
	URLStatusComplete URLStatus = "complete"
	URLStatusPaused   URLStatus = "paused"
)

// URL is a tracked redirect owned by exactly one campaign.
type URL struct {
	ID               int64
	CampaignID       int64
	Name             string
	TargetURL        string
	Status           URLStatus
	Clicks           int64
	ClickLimit       int64
	BudgetCalculated bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RemainingClicks is the number of clicks still owed by an active URL.
// URLs in any other status owe nothing.
func (u *URL) RemainingClicks() int64 {
	if u.Status != URLStatusActive || u.Clicks >= u.ClickLimit {
		return 0
	}
	return u.ClickLimit - u.Clicks
}
