package domain

import (
	"sort"
	"time"
)

// CampaignSummary is one donor's contribution to a single campaign.
type CampaignSummary struct {
	Campaign       Campaign  `json:"campaign"`
	TotalDonated   Money     `json:"totalDonated"`
	DonationCount  int       `json:"donationCount"`
	LastDonationAt time.Time `json:"lastDonation"`
}

// GlobalStats summarises a whole donation list.
type GlobalStats struct {
	TotalDonated            Money `json:"totalDonated"`
	TotalDonations          int   `json:"totalDonations"`
	CampaignsSupportedCount int   `json:"campaignsSupported"`
}

// AggregateByCampaign groups donations by campaign id. Each summary carries the
// campaign reference of the first record seen for that campaign. The result is
// ordered by most recent donation first; groups with equal timestamps keep
// first-seen order.
func AggregateByCampaign(donations []DonationRecord) []CampaignSummary {
	index := make(map[string]int, len(donations))
	out := make([]CampaignSummary, 0)

	for _, d := range donations {
		i, ok := index[d.CampaignID()]
		if !ok {
			index[d.CampaignID()] = len(out)
			out = append(out, CampaignSummary{
				Campaign:       d.Campaign,
				TotalDonated:   d.Amount,
				DonationCount:  1,
				LastDonationAt: d.DonatedAt,
			})
			continue
		}
		s := &out[i]
		s.TotalDonated += d.Amount
		s.DonationCount++
		if d.DonatedAt.After(s.LastDonationAt) {
			s.LastDonationAt = d.DonatedAt
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].LastDonationAt.After(out[b].LastDonationAt)
	})
	return out
}

// AggregateGlobal totals a donation list.
func AggregateGlobal(donations []DonationRecord) GlobalStats {
	seen := make(map[string]struct{}, len(donations))
	var stats GlobalStats
	for _, d := range donations {
		stats.TotalDonated += d.Amount
		seen[d.CampaignID()] = struct{}{}
	}
	stats.TotalDonations = len(donations)
	stats.CampaignsSupportedCount = len(seen)
	return stats
}
