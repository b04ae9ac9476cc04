package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

type meResponse struct {
	User *domain.User `json:"user"`
}

// Me verifies token and returns its user. The token is pinned on the request
// context rather than taken from the session.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var out meResponse
	if err := c.do(WithBearer(ctx, token), "auth.me", http.MethodGet, "/api/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil || out.User.ID == "" {
		return nil, errors.New("auth.me: response has no user")
	}
	return out.User, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	var out ports.AuthResult
	body := loginRequest{Email: in.Email, Password: in.Password}
	if err := c.do(ctx, "auth.login", http.MethodPost, "/api/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	var out ports.AuthResult
	body := registerRequest{Name: in.Name, Email: in.Email, Password: in.Password, Role: in.Role}
	if err := c.do(ctx, "auth.register", http.MethodPost, "/api/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
