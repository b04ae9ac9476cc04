package ports

import (
	"context"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

// DonorDashboard is the donor view: totals, supported campaigns, and a few
// campaigns to browse.
type DonorDashboard struct {
	Stats              domain.GlobalStats       `json:"stats"`
	SupportedCampaigns []domain.CampaignSummary `json:"supportedCampaigns"`
	RecentCampaigns    []domain.Campaign        `json:"recentCampaigns"`
	Donations          []domain.DonationRecord  `json:"donations"`
}

// NGODashboard is the NGO view.
type NGODashboard struct {
	Stats     domain.NGOStats   `json:"stats"`
	Campaigns []domain.Campaign `json:"campaigns"`
}

// AdminDashboard is shared by the admin and super admin variants.
type AdminDashboard struct {
	Stats     domain.AdminStats       `json:"stats"`
	Users     []domain.User           `json:"users"`
	Campaigns []domain.Campaign       `json:"campaigns"`
	Donations []domain.DonationRecord `json:"donations"`
	Average   domain.Money            `json:"averageDonation"`
}

// Dashboard is the role-resolved dashboard. Exactly one of the variant
// payloads is set.
type Dashboard struct {
	Variant domain.DashboardVariant `json:"variant"`
	Donor   *DonorDashboard         `json:"donor,omitempty"`
	NGO     *NGODashboard           `json:"ngo,omitempty"`
	Admin   *AdminDashboard         `json:"admin,omitempty"`
}

// CampaignDetail is a campaign with the donations made to it.
type CampaignDetail struct {
	Campaign  domain.Campaign         `json:"campaign"`
	Donations []domain.DonationRecord `json:"donations"`
}

// DashboardService assembles the views behind the companion server.
type DashboardService interface {
	ForSession(ctx context.Context) (*Dashboard, error)
	Donor(ctx context.Context) (*DonorDashboard, error)
	NGO(ctx context.Context) (*NGODashboard, error)
	Admin(ctx context.Context) (*AdminDashboard, error)

	Campaigns(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error)
	Campaign(ctx context.Context, id string) (*CampaignDetail, error)
	CreateCampaign(ctx context.Context, in CreateCampaignInput) (*domain.Campaign, error)
	SetCampaignStatus(ctx context.Context, id string, status domain.CampaignStatus) (*domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
	Donate(ctx context.Context, campaignID string, amount domain.Money) (*domain.DonationRecord, error)
}
