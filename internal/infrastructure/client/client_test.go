package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
	"github.com/donatehub/donatehub-client/internal/core/service"
	"github.com/donatehub/donatehub-client/internal/infrastructure/db/memory"
	"github.com/donatehub/donatehub-client/internal/testbackend"
)

type fixture struct {
	backend *testbackend.Server
	auth    *Authorizer
	client  *Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := testbackend.New("test-secret", time.Hour, zerolog.Nop())
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	auth := NewAuthorizer(nil, nil)
	return &fixture{
		backend: backend,
		auth:    auth,
		client:  New(srv.URL, auth, 5*time.Second, nil, zerolog.Nop()),
	}
}

// signIn logs in through the client and hands the token to the authorizer the
// way the session service would.
func (f *fixture) signIn(t *testing.T, email, password string) *ports.AuthResult {
	t.Helper()
	res, err := f.client.Login(context.Background(), ports.LoginInput{Email: email, Password: password})
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	f.auth.OnSessionChange(domain.Session{Authenticated: true, User: res.User, Token: res.Token})
	return res
}

func TestClient_RegisterLoginMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.client.Register(ctx, ports.RegisterInput{Name: "Ann", Email: "ann@example.org", Password: "secret1", Role: domain.RoleDonor})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Token == "" || reg.User == nil || reg.User.Role != domain.RoleDonor {
		t.Fatalf("unexpected register result: %+v", reg)
	}

	_, err = f.client.Register(ctx, ports.RegisterInput{Name: "Ann", Email: "ann@example.org", Password: "secret1", Role: domain.RoleDonor})
	if ports.ServerMessage(err) != "User already exists" {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_, err = f.client.Login(ctx, ports.LoginInput{Email: "ann@example.org", Password: "wrong"})
	var apiErr *ports.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest || apiErr.Message != "Invalid credentials" {
		t.Fatalf("expected Invalid credentials, got %v", err)
	}

	u, err := f.client.Me(ctx, reg.Token)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if u.ID != reg.User.ID || u.Email != "ann@example.org" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := f.client.Me(ctx, "garbage"); !ports.IsUnauthorized(err) {
		t.Fatalf("expected 401 for a bad token, got %v", err)
	}
}

func TestClient_DonationFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ngo, _ := f.backend.SeedUser("Helping Hands", "ngo@example.org", "secret1", domain.RoleNGO)
	if _, err := f.backend.SeedUser("Ann", "ann@example.org", "secret1", domain.RoleDonor); err != nil {
		t.Fatalf("seed donor: %v", err)
	}

	f.signIn(t, "ngo@example.org", "secret1")
	created, err := f.client.CreateCampaign(ctx, ports.CreateCampaignInput{
		Title:       "Clean Water",
		Description: "Wells for 3 villages",
		Category:    domain.CategoryHealth,
		GoalAmount:  domain.MoneyFromFloat(1000),
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if created.CreatedBy == nil || created.CreatedBy.ID != ngo.ID || created.Status != domain.CampaignActive {
		t.Fatalf("unexpected campaign: %+v", created)
	}

	f.signIn(t, "ann@example.org", "secret1")
	if _, err := f.client.Donate(ctx, created.ID, domain.MoneyFromFloat(25.5)); err != nil {
		t.Fatalf("donate: %v", err)
	}
	if _, err := f.client.Donate(ctx, created.ID, domain.MoneyFromFloat(0.1)); err != nil {
		t.Fatalf("donate: %v", err)
	}

	mine, err := f.client.DonorDonations(ctx)
	if err != nil {
		t.Fatalf("donor donations: %v", err)
	}
	if len(mine) != 2 || mine[0].CampaignID() != created.ID || mine[0].Campaign.Title != "Clean Water" {
		t.Fatalf("unexpected donations: %+v", mine)
	}
	if got := domain.AggregateGlobal(mine).TotalDonated; got != 2560 {
		t.Fatalf("expected 2560 cents, got %d", got)
	}

	byCampaign, err := f.client.CampaignDonations(ctx, created.ID)
	if err != nil || len(byCampaign) != 2 || byCampaign[0].Donor.Name != "Ann" {
		t.Fatalf("unexpected campaign donations: %+v, %v", byCampaign, err)
	}

	got, err := f.client.GetCampaign(ctx, created.ID)
	if err != nil || got.RaisedAmount != 2560 {
		t.Fatalf("unexpected campaign: %+v, %v", got, err)
	}

	f.signIn(t, "ngo@example.org", "secret1")
	stats, err := f.client.NGOStats(ctx)
	if err != nil || stats.TotalDonations != 2 || stats.TotalRaised != 2560 {
		t.Fatalf("unexpected ngo stats: %+v, %v", stats, err)
	}
	own, err := f.client.NGOCampaigns(ctx, ngo.ID)
	if err != nil || len(own) != 1 {
		t.Fatalf("unexpected ngo campaigns: %+v, %v", own, err)
	}

	closed, err := f.client.UpdateCampaignStatus(ctx, created.ID, domain.CampaignClosed)
	if err != nil || closed.Status != domain.CampaignClosed {
		t.Fatalf("unexpected status update: %+v, %v", closed, err)
	}
	if err := f.client.DeleteCampaign(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.client.GetCampaign(ctx, created.ID); !ports.IsNotFound(err) {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
}

func TestClient_ListCampaignsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ngo, _ := f.backend.SeedUser("Helping Hands", "ngo@example.org", "secret1", domain.RoleNGO)
	f.backend.SeedCampaign(ngo, "School books", domain.CategoryEducation, 50000)
	f.backend.SeedCampaign(ngo, "Flood relief", domain.CategoryDisaster, 90000)
	f.backend.SeedCampaign(ngo, "Clinic", domain.CategoryHealth, 70000)

	all, err := f.client.ListCampaigns(ctx, domain.CampaignFilter{Category: "all"})
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 campaigns, got %d, %v", len(all), err)
	}
	if all[0].Title != "Clinic" {
		t.Fatalf("expected newest first, got %q", all[0].Title)
	}

	edu, _ := f.client.ListCampaigns(ctx, domain.CampaignFilter{Category: domain.CategoryEducation})
	if len(edu) != 1 || edu[0].Title != "School books" {
		t.Fatalf("unexpected category filter result: %+v", edu)
	}

	found, _ := f.client.ListCampaigns(ctx, domain.CampaignFilter{Search: "FLOOD"})
	if len(found) != 1 || found[0].Category != domain.CategoryDisaster {
		t.Fatalf("unexpected search result: %+v", found)
	}

	limited, _ := f.client.ListCampaigns(ctx, domain.CampaignFilter{Limit: 2})
	if len(limited) != 2 {
		t.Fatalf("expected 2 campaigns, got %d", len(limited))
	}
}

func TestClient_AdminEndpoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ngo, _ := f.backend.SeedUser("Helping Hands", "ngo@example.org", "secret1", domain.RoleNGO)
	donor, _ := f.backend.SeedUser("Ann", "ann@example.org", "secret1", domain.RoleDonor)
	_, _ = f.backend.SeedUser("Root", "root@example.org", "secret1", domain.RoleSuperAdmin)
	c := f.backend.SeedCampaign(ngo, "Clinic", domain.CategoryHealth, 70000)
	_, _ = f.backend.SeedDonation(c.ID, donor, 1000)
	_, _ = f.backend.SeedDonation(c.ID, donor, 3000)

	f.signIn(t, "ann@example.org", "secret1")
	if _, err := f.client.AdminStats(ctx); ports.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for a donor, got %v", err)
	}

	f.signIn(t, "root@example.org", "secret1")
	stats, err := f.client.AdminStats(ctx)
	if err != nil {
		t.Fatalf("admin stats: %v", err)
	}
	if stats.TotalUsers != 3 || stats.TotalDonations != 2 || stats.TotalAmount != 4000 || stats.AverageDonation() != 2000 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	users, err := f.client.AdminUsers(ctx)
	if err != nil || len(users) != 3 {
		t.Fatalf("unexpected users: %+v, %v", users, err)
	}
	all, err := f.client.AdminDonations(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("unexpected donations: %+v, %v", all, err)
	}
}

func TestClient_ProtectedEndpointWithoutSession(t *testing.T) {
	f := newFixture(t)
	if _, err := f.client.DonorDonations(context.Background()); !ports.IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
}

// The session service and the authorizer together: the header follows login,
// logout, and a restart that restores the persisted token.
func TestClient_SessionLifecycleEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.backend.SeedUser("Ann", "ann@example.org", "secret1", domain.RoleDonor); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := memory.NewTokenStore()
	sessions := service.NewSessionService(f.client, store, nil, zerolog.Nop())
	sessions.Subscribe(f.auth)
	sessions.Bootstrap(ctx)

	if res := sessions.Login(ctx, "ann@example.org", "wrong"); res.Success || res.Error != "Invalid credentials" {
		t.Fatalf("unexpected failed login result: %+v", res)
	}
	if res := sessions.Login(ctx, "ann@example.org", "secret1"); !res.Success {
		t.Fatalf("login failed: %+v", res)
	}
	if _, err := f.client.DonorDonations(ctx); err != nil {
		t.Fatalf("authorized call failed: %v", err)
	}

	// Restart: a fresh authorizer and service over the same persisted slot.
	restartedAuth := NewAuthorizer(nil, nil)
	restarted := New(f.client.baseURL, restartedAuth, 5*time.Second, nil, zerolog.Nop())
	again := service.NewSessionService(restarted, store, nil, zerolog.Nop())
	again.Subscribe(restartedAuth)
	if s := again.Bootstrap(ctx); !s.Authenticated || s.User.Email != "ann@example.org" {
		t.Fatalf("expected restored session, got %+v", s)
	}
	if restartedAuth.Token() == "" {
		t.Fatalf("restored token should be attached to requests")
	}

	again.Logout()
	if restartedAuth.Token() != "" {
		t.Fatalf("credential must be dropped on logout")
	}
	if _, err := restarted.DonorDonations(ctx); !ports.IsUnauthorized(err) {
		t.Fatalf("expected 401 after logout, got %v", err)
	}
	if tok, _ := store.Get(ctx); tok != "" {
		t.Fatalf("persisted slot should be empty, got %q", tok)
	}
}

func TestClient_ExpiredTokenRejectedAtBootstrap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _ := f.backend.SeedUser("Ann", "ann@example.org", "secret1", domain.RoleDonor)
	expired, err := f.backend.IssueToken(u, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	store := memory.NewTokenStore()
	_ = store.Set(ctx, expired)
	sessions := service.NewSessionService(f.client, store, nil, zerolog.Nop())

	if s := sessions.Bootstrap(ctx); s.Authenticated || s.Error != "Token invalid" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if tok, _ := store.Get(ctx); tok != "" {
		t.Fatalf("expired token should be erased")
	}
}
