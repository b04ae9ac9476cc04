package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResolveDashboard(t *testing.T) {
	cases := map[Role]DashboardVariant{
		RoleDonor:      DashboardDonor,
		RoleNGO:        DashboardNGO,
		RoleAdmin:      DashboardAdmin,
		RoleSuperAdmin: DashboardSuperAdmin,
		"":             DashboardDonor,
		"moderator":    DashboardDonor,
		"NGO":          DashboardDonor,
	}
	for role, want := range cases {
		if got := ResolveDashboard(role); got != want {
			t.Errorf("ResolveDashboard(%q) = %q, want %q", role, got, want)
		}
	}
}

func TestCanAccess(t *testing.T) {
	if !CanAccess("", RoleDonor) {
		t.Fatalf("empty requirement should allow any role")
	}
	if !CanAccess(RoleNGO, RoleNGO) {
		t.Fatalf("matching role should be allowed")
	}
	if CanAccess(RoleNGO, RoleDonor) || CanAccess(RoleNGO, RoleSuperAdmin) {
		t.Fatalf("role comparison must be exact")
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleDonor, RoleNGO, RoleAdmin, RoleSuperAdmin} {
		if !r.Valid() {
			t.Fatalf("%q should be valid", r)
		}
	}
	if Role("guest").Valid() {
		t.Fatalf("guest should not be valid")
	}
}

func TestUserUnmarshal_AcceptsMongoID(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"_id":"abc","name":"Ann","email":"a@b.com","role":"ngo","verificationStatus":"pending"}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "abc" || u.Role != RoleNGO || u.VerificationStatus != "pending" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestDonationRecordUnmarshal(t *testing.T) {
	populated := `{"_id":"d1","campaignId":{"_id":"c1","title":"Water","goalAmount":1000,"raisedAmount":250.5},
		"donorId":{"_id":"u1","name":"Ann"},"amount":25.129,"donatedAt":"2025-03-01T10:00:00Z"}`
	var d DonationRecord
	if err := json.Unmarshal([]byte(populated), &d); err != nil {
		t.Fatalf("unmarshal populated: %v", err)
	}
	if d.CampaignID() != "c1" || d.Campaign.Title != "Water" || d.Donor.Name != "Ann" || d.Amount != 2513 {
		t.Fatalf("unexpected record: %+v", d)
	}

	bare := `{"_id":"d2","campaignId":"c9","donorId":"u2","amount":"10","donatedAt":"2025-03-01T10:00:00Z"}`
	if err := json.Unmarshal([]byte(bare), &d); err != nil {
		t.Fatalf("unmarshal bare: %v", err)
	}
	if d.CampaignID() != "c9" || d.Campaign.Title != "" || d.Donor.ID != "u2" || d.Amount != 1000 {
		t.Fatalf("unexpected record: %+v", d)
	}
}

func TestCampaignProgress(t *testing.T) {
	c := Campaign{GoalAmount: MoneyFromFloat(200), RaisedAmount: MoneyFromFloat(50)}
	if c.ProgressPercent() != 25 {
		t.Fatalf("expected 25%%, got %v", c.ProgressPercent())
	}
	c.RaisedAmount = MoneyFromFloat(500)
	if c.ProgressPercent() != 100 || !c.Funded() {
		t.Fatalf("expected capped, funded campaign")
	}
	if (Campaign{}).ProgressPercent() != 0 {
		t.Fatalf("zero goal should report zero progress")
	}
}

func TestMoney(t *testing.T) {
	m := MoneyFromFloat(1234.5)
	if m != 123450 {
		t.Fatalf("expected 123450 cents, got %d", m)
	}
	b, err := json.Marshal(m)
	if err != nil || string(b) != "1234.50" {
		t.Fatalf("unexpected json %s (%v)", b, err)
	}
	s := m.String()
	if !strings.Contains(s, "$") || !strings.Contains(s, "234.50") {
		t.Fatalf("unexpected currency rendering %q", s)
	}
}

func TestBuildNGOStats(t *testing.T) {
	donations := NGODonationStats{
		TotalRaised:    MoneyFromFloat(900),
		TotalDonations: 7,
	}
	for _, amt := range []float64{10, 300, 20, 40, 50, 999} {
		donations.Donations = append(donations.Donations, donation("d", "c", amt, t1))
	}
	campaigns := []Campaign{
		{ID: "a", Status: CampaignActive, GoalAmount: MoneyFromFloat(100), RaisedAmount: MoneyFromFloat(150)},
		{ID: "b", Status: CampaignClosed, GoalAmount: MoneyFromFloat(300), RaisedAmount: MoneyFromFloat(10)},
		{ID: "c", Status: CampaignActive, GoalAmount: MoneyFromFloat(200)},
	}

	got := BuildNGOStats(donations, campaigns)
	if got.TotalRaised != MoneyFromFloat(900) || got.TotalDonations != 7 {
		t.Fatalf("backend totals not carried: %+v", got)
	}
	if got.TotalCampaigns != 3 || got.ActiveCampaigns != 2 {
		t.Fatalf("unexpected campaign counts: %+v", got)
	}
	if len(got.RecentDonations) != RecentDonationLimit || got.LargestRecentDonation != MoneyFromFloat(300) {
		t.Fatalf("unexpected recent donations: %d, largest %v", len(got.RecentDonations), got.LargestRecentDonation)
	}
	if got.SuccessRate != 33 || got.AverageGoal != MoneyFromFloat(200) {
		t.Fatalf("unexpected rates: success %d, avg goal %v", got.SuccessRate, got.AverageGoal)
	}
}

func TestBuildNGOStats_Empty(t *testing.T) {
	got := BuildNGOStats(NGODonationStats{}, nil)
	if got.TotalCampaigns != 0 || got.SuccessRate != 0 || got.RecentDonations == nil {
		t.Fatalf("unexpected empty stats: %+v", got)
	}
}
