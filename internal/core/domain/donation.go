package domain

import "time"

// DonationRecord is a recorded (not charged) contribution as returned by the
// backend. The campaign and donor references arrive populated or as bare ids.
type DonationRecord struct {
	ID        string    `json:"_id"`
	Campaign  Campaign  `json:"campaignId"`
	Donor     Party     `json:"donorId"`
	Amount    Money     `json:"amount"`
	DonatedAt time.Time `json:"donatedAt"`
}

// CampaignID is the grouping key of the record.
func (d DonationRecord) CampaignID() string {
	return d.Campaign.ID
}

// SanitizeDonations drops records that cannot be attributed or counted: no id,
// no campaign reference, or a non-positive amount. It returns the kept records
// in input order and the number dropped.
func SanitizeDonations(in []DonationRecord) ([]DonationRecord, int) {
	out := make([]DonationRecord, 0, len(in))
	for _, d := range in {
		if d.ID == "" || d.CampaignID() == "" || d.Amount <= 0 {
			continue
		}
		out = append(out, d)
	}
	return out, len(in) - len(out)
}

// NGODonationStats is the backend's per-NGO donation rollup.
type NGODonationStats struct {
	TotalRaised    Money            `json:"totalRaised"`
	TotalDonations int              `json:"totalDonations"`
	Donations      []DonationRecord `json:"donations"`
}

// AdminStats is the platform-wide rollup shown to administrators.
type AdminStats struct {
	TotalUsers     int   `json:"totalUsers"`
	TotalDonors    int   `json:"totalDonors"`
	TotalNGOs      int   `json:"totalNGOs"`
	TotalAdmins    int   `json:"totalAdmins"`
	TotalCampaigns int   `json:"totalCampaigns"`
	TotalDonations int   `json:"totalDonations"`
	TotalAmount    Money `json:"totalAmount"`
}

// AverageDonation is TotalAmount / TotalDonations, zero when there are none.
func (s AdminStats) AverageDonation() Money {
	if s.TotalDonations <= 0 {
		return 0
	}
	return Money(int64(s.TotalAmount) / int64(s.TotalDonations))
}
