package ports

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

// AuthResult is the payload returned by the login and register endpoints.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string      `validate:"required"`
	Email    string      `validate:"required,email"`
	Password string      `validate:"required,min=6"`
	Role     domain.Role `validate:"required,oneof=donor ngo admin super_admin"`
}

// LoginInput carries the login form.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// IdentityAPI is the remote identity surface used by the session lifecycle.
// Me authenticates with the explicit token rather than the current session.
type IdentityAPI interface {
	Me(ctx context.Context, token string) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
}

// CampaignLookup fetches a single campaign. Used for aggregation enrichment.
type CampaignLookup interface {
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
}

// CreateCampaignInput carries the create-campaign form.
type CreateCampaignInput struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Category    string       `json:"category" validate:"required,oneof=health education disaster others"`
	GoalAmount  domain.Money `json:"goalAmount" validate:"gt=0"`
}

// CampaignAPI is the remote campaign surface.
type CampaignAPI interface {
	CampaignLookup
	ListCampaigns(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error)
	NGOCampaigns(ctx context.Context, ngoID string) ([]domain.Campaign, error)
	CreateCampaign(ctx context.Context, in CreateCampaignInput) (*domain.Campaign, error)
	UpdateCampaignStatus(ctx context.Context, id string, status domain.CampaignStatus) (*domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
}

// DonationAPI is the remote donation surface.
type DonationAPI interface {
	DonorDonations(ctx context.Context) ([]domain.DonationRecord, error)
	CampaignDonations(ctx context.Context, campaignID string) ([]domain.DonationRecord, error)
	NGOStats(ctx context.Context) (*domain.NGODonationStats, error)
	Donate(ctx context.Context, campaignID string, amount domain.Money) (*domain.DonationRecord, error)
}

// AdminAPI is the remote administration surface.
type AdminAPI interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
	AdminUsers(ctx context.Context) ([]domain.User, error)
	AdminDonations(ctx context.Context) ([]domain.DonationRecord, error)
}

// DataAPI is the authorized data surface behind the dashboards.
type DataAPI interface {
	CampaignAPI
	DonationAPI
	AdminAPI
}

// BackendAPI is everything the client consumes from the remote API.
type BackendAPI interface {
	IdentityAPI
	DataAPI
}

// APIError is a non-2xx response from the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: status %d", e.Status)
	}
	return fmt.Sprintf("remote api: status %d: %s", e.Status, e.Message)
}

// ServerMessage returns the message the backend reported for err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// StatusOf returns the HTTP status carried by err, or 0 for transport errors.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 from the remote API.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the remote API.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
