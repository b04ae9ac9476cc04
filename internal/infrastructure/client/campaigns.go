package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

func (c *Client) ListCampaigns(ctx context.Context, f domain.CampaignFilter) ([]domain.Campaign, error) {
	q := url.Values{}
	if f.Category != "" && f.Category != "all" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	var out []domain.Campaign
	if err := c.do(ctx, "campaigns.list", http.MethodGet, "/api/campaigns", q, nil, &out); err != nil {
		return nil, err
	}
	// The backend is not trusted to honour limit.
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (c *Client) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	var out domain.Campaign
	if err := c.do(ctx, "campaigns.get", http.MethodGet, "/api/campaigns/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) NGOCampaigns(ctx context.Context, ngoID string) ([]domain.Campaign, error) {
	var out []domain.Campaign
	if err := c.do(ctx, "campaigns.ngo", http.MethodGet, "/api/campaigns/ngo/"+url.PathEscape(ngoID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCampaign(ctx context.Context, in ports.CreateCampaignInput) (*domain.Campaign, error) {
	var out domain.Campaign
	if err := c.do(ctx, "campaigns.create", http.MethodPost, "/api/campaigns", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type statusRequest struct {
	Status domain.CampaignStatus `json:"status"`
}

func (c *Client) UpdateCampaignStatus(ctx context.Context, id string, status domain.CampaignStatus) (*domain.Campaign, error) {
	var out domain.Campaign
	path := "/api/campaigns/" + url.PathEscape(id)
	if err := c.do(ctx, "campaigns.update_status", http.MethodPut, path, nil, statusRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.do(ctx, "campaigns.delete", http.MethodDelete, "/api/campaigns/"+url.PathEscape(id), nil, nil, nil)
}
