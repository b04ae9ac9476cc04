package domain

import (
	"encoding/json"
	"time"
)

// CampaignStatus is the lifecycle state of a fundraising campaign.
type CampaignStatus string

const (
	CampaignActive CampaignStatus = "active"
	CampaignClosed CampaignStatus = "closed"
)

// Campaign categories offered by the create form.
const (
	CategoryHealth    = "health"
	CategoryEducation = "education"
	CategoryDisaster  = "disaster"
	CategoryOthers    = "others"
)

// Party is a populated reference to a user (campaign owner, donor).
type Party struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts either a bare id string or a populated object.
func (p *Party) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		p.Name = ""
		return json.Unmarshal(data, &p.ID)
	}
	type plain Party
	return json.Unmarshal(data, (*plain)(p))
}

// Campaign is a fundraising campaign. Donation records embed a partial copy
// (only the fields the backend chose to populate).
type Campaign struct {
	ID           string         `json:"_id"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	Category     string         `json:"category,omitempty"`
	GoalAmount   Money          `json:"goalAmount"`
	RaisedAmount Money          `json:"raisedAmount"`
	Status       CampaignStatus `json:"status,omitempty"`
	CreatedBy    *Party         `json:"createdBy,omitempty"`
	CreatedAt    time.Time      `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts either a bare campaign id or a populated object.
func (c *Campaign) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		*c = Campaign{}
		return json.Unmarshal(data, &c.ID)
	}
	type plain Campaign
	return json.Unmarshal(data, (*plain)(c))
}

// ProgressPercent is raised/goal as a percentage, capped at 100.
func (c Campaign) ProgressPercent() float64 {
	if c.GoalAmount <= 0 {
		return 0
	}
	return min(float64(c.RaisedAmount)/float64(c.GoalAmount)*100, 100)
}

// Active reports whether the campaign still accepts donations.
func (c Campaign) Active() bool {
	return c.Status == CampaignActive
}

// Funded reports whether the campaign reached its goal.
func (c Campaign) Funded() bool {
	return c.GoalAmount > 0 && c.RaisedAmount >= c.GoalAmount
}

// CampaignFilter narrows a campaign listing.
type CampaignFilter struct {
	Category string
	Search   string
	Limit    int
}
