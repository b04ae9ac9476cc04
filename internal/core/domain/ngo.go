package domain

import "math"

// RecentDonationLimit caps the donations listed on the NGO dashboard.
const RecentDonationLimit = 5

// NGOStats is the NGO dashboard rollup.
type NGOStats struct {
	TotalRaised           Money            `json:"totalRaised"`
	TotalDonations        int              `json:"totalDonations"`
	TotalCampaigns        int              `json:"totalCampaigns"`
	ActiveCampaigns       int              `json:"activeCampaigns"`
	RecentDonations       []DonationRecord `json:"recentDonations"`
	LargestRecentDonation Money            `json:"largestRecentDonation"`
	SuccessRate           int              `json:"successRate"`
	AverageGoal           Money            `json:"averageGoal"`
}

// BuildNGOStats combines the backend donation rollup with the NGO's campaigns.
// Either input may be the zero value when its fetch failed.
func BuildNGOStats(donations NGODonationStats, campaigns []Campaign) NGOStats {
	stats := NGOStats{
		TotalRaised:     donations.TotalRaised,
		TotalDonations:  donations.TotalDonations,
		TotalCampaigns:  len(campaigns),
		RecentDonations: make([]DonationRecord, 0, RecentDonationLimit),
	}

	for i, d := range donations.Donations {
		if i == RecentDonationLimit {
			break
		}
		stats.RecentDonations = append(stats.RecentDonations, d)
		if d.Amount > stats.LargestRecentDonation {
			stats.LargestRecentDonation = d.Amount
		}
	}

	if len(campaigns) == 0 {
		return stats
	}

	var funded int
	var goals Money
	for _, c := range campaigns {
		if c.Active() {
			stats.ActiveCampaigns++
		}
		if c.Funded() {
			funded++
		}
		goals += c.GoalAmount
	}
	stats.SuccessRate = int(math.Round(float64(funded) / float64(len(campaigns)) * 100))
	stats.AverageGoal = Money(math.Round(float64(goals) / float64(len(campaigns))))
	return stats
}
