package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

func (c *Client) DonorDonations(ctx context.Context) ([]domain.DonationRecord, error) {
	var out []domain.DonationRecord
	if err := c.do(ctx, "donations.donor", http.MethodGet, "/api/donations/donor", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CampaignDonations(ctx context.Context, campaignID string) ([]domain.DonationRecord, error) {
	var out []domain.DonationRecord
	path := "/api/donations/campaign/" + url.PathEscape(campaignID)
	if err := c.do(ctx, "donations.campaign", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) NGOStats(ctx context.Context) (*domain.NGODonationStats, error) {
	var out domain.NGODonationStats
	if err := c.do(ctx, "donations.ngo_stats", http.MethodGet, "/api/donations/ngo/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type donateRequest struct {
	CampaignID string       `json:"campaignId"`
	Amount     domain.Money `json:"amount"`
}

func (c *Client) Donate(ctx context.Context, campaignID string, amount domain.Money) (*domain.DonationRecord, error) {
	var out domain.DonationRecord
	body := donateRequest{CampaignID: campaignID, Amount: amount}
	if err := c.do(ctx, "donations.create", http.MethodPost, "/api/donations", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
