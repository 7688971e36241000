package campaign

import "time"

type Campaign struct {
	ID            uint       `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Thumbnail     string     `json:"thumbnail"`
	TargetAmount  int64      `json:"target_amount"`
	CurrentAmount int64      `json:"current_amount"`
	IsFeatured    bool       `json:"is_featured"`
	IsActive      bool       `json:"is_active"`
	Deadline      *time.Time `json:"deadline"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Update is a progress post on a campaign's updates tab.
type Update struct {
	ID          uint      `json:"id"`
	CampaignID  uint      `json:"campaign_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Unlimited reports whether the campaign has no funding goal.
// A target of zero or below is the sentinel for unlimited.
func (c *Campaign) Unlimited() bool {
	return c.TargetAmount <= 0
}

// Progress returns the funding percentage capped at 100.
// Unlimited campaigns report 0 so callers never divide by zero.
func (c *Campaign) Progress() float64 {
	if c.Unlimited() {
		return 0
	}
	pct := float64(c.CurrentAmount) / float64(c.TargetAmount) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Expired reports whether the deadline has passed. Campaigns without
// a deadline never expire.
func (c *Campaign) Expired(now time.Time) bool {
	if c.Deadline == nil {
		return false
	}
	return now.After(*c.Deadline)
}
