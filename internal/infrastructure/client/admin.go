package client

import (
	"context"
	"net/http"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

func (c *Client) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var out domain.AdminStats
	if err := c.do(ctx, "admin.stats", http.MethodGet, "/api/admin/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, "admin.users", http.MethodGet, "/api/admin/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminDonations(ctx context.Context) ([]domain.DonationRecord, error) {
	var out []domain.DonationRecord
	if err := c.do(ctx, "admin.all_donations", http.MethodGet, "/api/admin/all-donations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
