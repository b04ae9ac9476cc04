// Package testbackend is an in-memory implementation of the DonateHub REST
// API. It backs the development server and the client's end-to-end tests.
package testbackend

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// Server is the development backend.
type Server struct {
	echo   *echo.Echo
	store  *store
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

// New builds a backend signing tokens with secret.
func New(secret string, ttl time.Duration, log zerolog.Logger) *Server {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	s := &Server{
		echo:   echo.New(),
		store:  newStore(),
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(echomw.Recover())
	s.routes()
	return s
}

// Handler exposes the API for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("dev backend listening")
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.GET("/me", s.me, s.authenticate)

	campaigns := api.Group("/campaigns")
	campaigns.GET("", s.listCampaigns)
	campaigns.GET("/:id", s.getCampaign)
	campaigns.GET("/ngo/:userId", s.ngoCampaigns, s.authenticate)
	campaigns.POST("", s.createCampaign, s.authenticate, allow(domain.RoleNGO))
	campaigns.PUT("/:id", s.updateCampaign, s.authenticate, allow(domain.RoleNGO, domain.RoleAdmin, domain.RoleSuperAdmin))
	campaigns.DELETE("/:id", s.deleteCampaign, s.authenticate, allow(domain.RoleNGO, domain.RoleAdmin, domain.RoleSuperAdmin))

	donations := api.Group("/donations")
	donations.POST("", s.donate, s.authenticate, allow(domain.RoleDonor))
	donations.GET("/donor", s.donorDonations, s.authenticate)
	donations.GET("/campaign/:id", s.campaignDonations)
	donations.GET("/ngo/stats", s.ngoStats, s.authenticate, allow(domain.RoleNGO))

	admin := api.Group("/admin", s.authenticate, allow(domain.RoleAdmin, domain.RoleSuperAdmin))
	admin.GET("/stats", s.adminStats)
	admin.GET("/users", s.adminUsers)
	admin.GET("/all-donations", s.allDonations)
}

// SeedUser registers an account directly, bypassing the HTTP surface.
func (s *Server) SeedUser(name, email, password string, role domain.Role) (domain.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	return s.store.addUser(name, email, hash, role)
}

// SeedCampaign creates an active campaign owned by owner.
func (s *Server) SeedCampaign(owner domain.User, title, category string, goal domain.Money) domain.Campaign {
	return s.store.addCampaign(owner, title, title, category, goal)
}

// SeedDonation records a donation directly.
func (s *Server) SeedDonation(campaignID string, donor domain.User, amount domain.Money) (domain.DonationRecord, error) {
	return s.store.donate(campaignID, donor.ID, amount)
}
