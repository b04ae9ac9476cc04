package domain

import (
	"math/rand"
	"testing"
	"time"
)

var (
	t1 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 = t1.Add(24 * time.Hour)
	t3 = t2.Add(24 * time.Hour)
)

func donation(id, campaignID string, dollars float64, at time.Time) DonationRecord {
	return DonationRecord{
		ID:        id,
		Campaign:  Campaign{ID: campaignID, Title: "campaign " + campaignID},
		Amount:    MoneyFromFloat(dollars),
		DonatedAt: at,
	}
}

func scenario() []DonationRecord {
	return []DonationRecord{
		donation("d1", "c1", 25, t1),
		donation("d2", "c1", 50, t3),
		donation("d3", "c2", 100, t2),
	}
}

func TestAggregateByCampaign_Scenario(t *testing.T) {
	got := AggregateByCampaign(scenario())

	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].Campaign.ID != "c1" || got[1].Campaign.ID != "c2" {
		t.Fatalf("unexpected order: %s, %s", got[0].Campaign.ID, got[1].Campaign.ID)
	}
	if got[0].TotalDonated != MoneyFromFloat(75) || got[0].DonationCount != 2 || !got[0].LastDonationAt.Equal(t3) {
		t.Fatalf("unexpected c1 summary: %+v", got[0])
	}
	if got[1].TotalDonated != MoneyFromFloat(100) || got[1].DonationCount != 1 || !got[1].LastDonationAt.Equal(t2) {
		t.Fatalf("unexpected c2 summary: %+v", got[1])
	}
}

func TestAggregateGlobal_Scenario(t *testing.T) {
	got := AggregateGlobal(scenario())
	want := GlobalStats{TotalDonated: MoneyFromFloat(175), TotalDonations: 3, CampaignsSupportedCount: 2}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	if got := AggregateByCampaign(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if got := AggregateGlobal([]DonationRecord{}); got != (GlobalStats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestAggregate_Consistency(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	campaigns := []string{"a", "b", "c", "d"}

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		var ds []DonationRecord
		var sum Money
		for i := 0; i < n; i++ {
			amt := float64(rng.Intn(100000)) / 100
			d := donation("x", campaigns[rng.Intn(len(campaigns))], amt, t1.Add(time.Duration(rng.Intn(1000))*time.Minute))
			ds = append(ds, d)
			sum += d.Amount
		}

		global := AggregateGlobal(ds)
		if global.TotalDonations != len(ds) {
			t.Fatalf("round %d: count %d != %d", round, global.TotalDonations, len(ds))
		}
		if global.TotalDonated != sum {
			t.Fatalf("round %d: total %v != %v", round, global.TotalDonated, sum)
		}

		var bySum Money
		var byCount int
		for _, s := range AggregateByCampaign(ds) {
			bySum += s.TotalDonated
			byCount += s.DonationCount
		}
		if bySum != global.TotalDonated || byCount != global.TotalDonations {
			t.Fatalf("round %d: per-campaign (%v, %d) disagrees with global (%v, %d)",
				round, bySum, byCount, global.TotalDonated, global.TotalDonations)
		}
	}
}

func TestAggregateByCampaign_PermutationInvariant(t *testing.T) {
	base := []DonationRecord{
		donation("d1", "c1", 10.10, t1),
		donation("d2", "c2", 20.20, t2),
		donation("d3", "c1", 30.30, t3),
		donation("d4", "c3", 0.01, t2.Add(time.Hour)),
		donation("d5", "c2", 5.55, t1),
	}
	want := summariesByID(AggregateByCampaign(base))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]DonationRecord(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := AggregateByCampaign(shuffled)
		if got[0].Campaign.ID != "c1" || got[1].Campaign.ID != "c3" || got[2].Campaign.ID != "c2" {
			t.Fatalf("order changed under permutation: %s %s %s", got[0].Campaign.ID, got[1].Campaign.ID, got[2].Campaign.ID)
		}
		for id, s := range summariesByID(got) {
			w := want[id]
			if s.TotalDonated != w.TotalDonated || s.DonationCount != w.DonationCount || !s.LastDonationAt.Equal(w.LastDonationAt) {
				t.Fatalf("summary %s changed under permutation: %+v vs %+v", id, s, w)
			}
		}
	}
}

func TestAggregateByCampaign_TiesKeepFirstSeenOrder(t *testing.T) {
	ds := []DonationRecord{
		donation("d1", "b", 1, t2),
		donation("d2", "a", 1, t2),
		donation("d3", "c", 1, t2),
	}
	got := AggregateByCampaign(ds)
	if got[0].Campaign.ID != "b" || got[1].Campaign.ID != "a" || got[2].Campaign.ID != "c" {
		t.Fatalf("expected first-seen order for equal timestamps, got %s %s %s",
			got[0].Campaign.ID, got[1].Campaign.ID, got[2].Campaign.ID)
	}
}

func TestAggregateByCampaign_KeepsFirstSeenReference(t *testing.T) {
	first := donation("d1", "c1", 1, t1)
	first.Campaign.Title = "first"
	second := donation("d2", "c1", 1, t2)
	second.Campaign.Title = "second"

	got := AggregateByCampaign([]DonationRecord{first, second})
	if got[0].Campaign.Title != "first" {
		t.Fatalf("expected first-seen campaign reference, got %q", got[0].Campaign.Title)
	}
}

func TestAggregate_SumIsOrderIndependent(t *testing.T) {
	ds := []DonationRecord{
		donation("d1", "c1", 0.1, t1),
		donation("d2", "c1", 0.2, t1),
		donation("d3", "c1", 0.3, t1),
	}
	reversed := []DonationRecord{ds[2], ds[1], ds[0]}

	if AggregateGlobal(ds).TotalDonated != MoneyFromFloat(0.6) {
		t.Fatalf("expected exact 0.60 total, got %v", AggregateGlobal(ds).TotalDonated)
	}
	if AggregateGlobal(ds) != AggregateGlobal(reversed) {
		t.Fatalf("total depends on order")
	}
}

func TestSanitizeDonations(t *testing.T) {
	ds := []DonationRecord{
		donation("d1", "c1", 10, t1),
		donation("", "c1", 10, t1),
		donation("d3", "", 10, t1),
		donation("d4", "c2", 0, t1),
		donation("d5", "c2", -3, t1),
		donation("d6", "c2", 1, t2),
	}
	kept, dropped := SanitizeDonations(ds)
	if dropped != 4 {
		t.Fatalf("expected 4 dropped, got %d", dropped)
	}
	if len(kept) != 2 || kept[0].ID != "d1" || kept[1].ID != "d6" {
		t.Fatalf("unexpected kept records: %+v", kept)
	}
}

func summariesByID(in []CampaignSummary) map[string]CampaignSummary {
	out := make(map[string]CampaignSummary, len(in))
	for _, s := range in {
		out[s.Campaign.ID] = s
	}
	return out
}
