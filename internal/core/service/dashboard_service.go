package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
	"github.com/donatehub/donatehub-client/internal/pkg/validation"
)

// RecentCampaignLimit caps the campaigns suggested on the donor dashboard.
const RecentCampaignLimit = 6

// DashboardService assembles role dashboards and proxies campaign operations
// for the companion server. It reads the session but never mutates it except
// to log out when the backend rejects the held credential.
type DashboardService struct {
	api               ports.DataAPI
	session           ports.SessionService
	metrics           ports.Metrics
	validate          *validation.Validator
	enrichConcurrency int
	log               zerolog.Logger
}

func NewDashboardService(api ports.DataAPI, session ports.SessionService, metrics ports.Metrics, enrichConcurrency int, log zerolog.Logger) *DashboardService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &DashboardService{
		api:               api,
		session:           session,
		metrics:           metrics,
		validate:          validation.New(),
		enrichConcurrency: enrichConcurrency,
		log:               log,
	}
}

// ForSession builds the dashboard variant matching the signed-in role.
func (s *DashboardService) ForSession(ctx context.Context) (*ports.Dashboard, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	variant := domain.ResolveDashboard(sess.User.Role)
	out := &ports.Dashboard{Variant: variant}
	switch variant {
	case domain.DashboardNGO:
		out.NGO, err = s.NGO(ctx)
	case domain.DashboardAdmin, domain.DashboardSuperAdmin:
		out.Admin, err = s.Admin(ctx)
	default:
		out.Donor, err = s.Donor(ctx)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Donor builds the donor dashboard from the donor's own donation history.
func (s *DashboardService) Donor(ctx context.Context) (*ports.DonorDashboard, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	donations, err := s.api.DonorDonations(ctx)
	if err != nil {
		return nil, s.remoteErr(sess, "fetch donor donations", err)
	}
	donations = s.sanitize(donations)

	summaries := domain.AggregateByCampaign(donations)
	summaries = EnrichSummaries(ctx, s.api, summaries, s.enrichConcurrency, s.metrics, s.log)

	recent, err := s.api.ListCampaigns(ctx, domain.CampaignFilter{Limit: RecentCampaignLimit})
	if err != nil {
		if ports.IsUnauthorized(err) {
			return nil, s.remoteErr(sess, "fetch recent campaigns", err)
		}
		s.log.Warn().Err(err).Msg("recent campaigns unavailable")
		recent = []domain.Campaign{}
	}

	return &ports.DonorDashboard{
		Stats:              domain.AggregateGlobal(donations),
		SupportedCampaigns: summaries,
		RecentCampaigns:    nonNil(recent),
		Donations:          donations,
	}, nil
}

// NGO builds the NGO dashboard. The donation rollup and the campaign list are
// fetched independently; a failure of either leaves its half empty.
func (s *DashboardService) NGO(ctx context.Context) (*ports.NGODashboard, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	var (
		stats              *domain.NGODonationStats
		campaigns          []domain.Campaign
		statsErr, campsErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		stats, statsErr = s.api.NGOStats(ctx)
		return nil
	})
	g.Go(func() error {
		campaigns, campsErr = s.api.NGOCampaigns(ctx, sess.User.ID)
		return nil
	})
	_ = g.Wait()

	if ports.IsUnauthorized(statsErr) {
		return nil, s.remoteErr(sess, "fetch ngo stats", statsErr)
	}
	if ports.IsUnauthorized(campsErr) {
		return nil, s.remoteErr(sess, "fetch ngo campaigns", campsErr)
	}
	if statsErr != nil || stats == nil {
		s.log.Warn().Err(statsErr).Str("ngo_id", sess.User.ID).Msg("ngo donation stats unavailable")
		stats = &domain.NGODonationStats{}
	}
	if campsErr != nil || campaigns == nil {
		if campsErr != nil {
			s.log.Warn().Err(campsErr).Str("ngo_id", sess.User.ID).Msg("ngo campaigns unavailable")
		}
		campaigns = []domain.Campaign{}
	}

	return &ports.NGODashboard{
		Stats:     domain.BuildNGOStats(*stats, campaigns),
		Campaigns: campaigns,
	}, nil
}

// Admin builds the platform overview. All four fetches run concurrently and
// the first failure fails the dashboard.
func (s *DashboardService) Admin(ctx context.Context) (*ports.AdminDashboard, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	var (
		stats     *domain.AdminStats
		users     []domain.User
		campaigns []domain.Campaign
		donations []domain.DonationRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = s.api.AdminStats(gctx)
		return wrapOp("fetch admin stats", err)
	})
	g.Go(func() (err error) {
		users, err = s.api.AdminUsers(gctx)
		return wrapOp("fetch users", err)
	})
	g.Go(func() (err error) {
		campaigns, err = s.api.ListCampaigns(gctx, domain.CampaignFilter{})
		return wrapOp("fetch campaigns", err)
	})
	g.Go(func() (err error) {
		donations, err = s.api.AdminDonations(gctx)
		return wrapOp("fetch all donations", err)
	})
	if err := g.Wait(); err != nil {
		return nil, s.remoteErr(sess, "admin dashboard", err)
	}
	if stats == nil {
		stats = &domain.AdminStats{}
	}

	return &ports.AdminDashboard{
		Stats:     *stats,
		Users:     nonNil(users),
		Campaigns: nonNil(campaigns),
		Donations: s.sanitize(donations),
		Average:   stats.AverageDonation(),
	}, nil
}

// Campaigns lists public campaigns.
func (s *DashboardService) Campaigns(ctx context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	sess := s.session.Session()
	campaigns, err := s.api.ListCampaigns(ctx, filter)
	if err != nil {
		return nil, s.remoteErr(sess, "list campaigns", err)
	}
	return nonNil(campaigns), nil
}

// Campaign returns a campaign with its donations. Missing donations are not
// an error.
func (s *DashboardService) Campaign(ctx context.Context, id string) (*ports.CampaignDetail, error) {
	if id == "" {
		return nil, domain.ErrCampaignNotFound
	}
	sess := s.session.Session()
	c, err := s.api.GetCampaign(ctx, id)
	if err != nil {
		return nil, s.remoteErr(sess, "get campaign", err)
	}

	donations, err := s.api.CampaignDonations(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("campaign_id", id).Msg("campaign donations unavailable")
	}
	return &ports.CampaignDetail{Campaign: *c, Donations: s.sanitize(donations)}, nil
}

func (s *DashboardService) CreateCampaign(ctx context.Context, in ports.CreateCampaignInput) (*domain.Campaign, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Validate(&in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	c, err := s.api.CreateCampaign(ctx, in)
	if err != nil {
		return nil, s.remoteErr(sess, "create campaign", err)
	}
	s.log.Info().Str("campaign_id", c.ID).Msg("campaign created")
	return c, nil
}

func (s *DashboardService) SetCampaignStatus(ctx context.Context, id string, status domain.CampaignStatus) (*domain.Campaign, error) {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if status != domain.CampaignActive && status != domain.CampaignClosed {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	c, err := s.api.UpdateCampaignStatus(ctx, id, status)
	if err != nil {
		return nil, s.remoteErr(sess, "update campaign status", err)
	}
	return c, nil
}

func (s *DashboardService) DeleteCampaign(ctx context.Context, id string) error {
	sess, err := s.requireSession(ctx)
	if err != nil {
		return err
	}
	if err := s.api.DeleteCampaign(ctx, id); err != nil {
		return s.remoteErr(sess, "delete campaign", err)
	}
	s.log.Info().Str("campaign_id", id).Msg("campaign deleted")
	return nil
}

// Donate records a contribution. No money moves.
func (s *DashboardService) Donate(ctx context.Context, campaignID string, amount domain.Money) (*domain.DonationRecord, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if campaignID == "" {
		return nil, domain.ErrCampaignNotFound
	}
	sess, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.api.Donate(ctx, campaignID, amount)
	if err != nil {
		return nil, s.remoteErr(sess, "donate", err)
	}
	s.log.Info().Str("campaign_id", campaignID).Str("amount", amount.String()).Msg("donation recorded")
	return d, nil
}

// requireSession waits for the startup bootstrap and returns the session if
// it is authenticated.
func (s *DashboardService) requireSession(ctx context.Context) (domain.Session, error) {
	sess, err := s.session.WaitReady(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if !sess.Authenticated || sess.User == nil {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return sess, nil
}

// remoteErr translates a backend failure. A rejected credential ends the
// session the request was made under, and only that one: if the session has
// been replaced since, the newer one is left alone.
func (s *DashboardService) remoteErr(sess domain.Session, op string, err error) error {
	switch ports.StatusOf(err) {
	case http.StatusUnauthorized:
		if s.session.LogoutIf(sess.Token) {
			s.log.Info().Str("op", op).Msg("credential rejected by backend, logged out")
		}
		return domain.ErrSessionExpired
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, domain.ErrCampaignNotFound)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ports.ServerMessage(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *DashboardService) sanitize(in []domain.DonationRecord) []domain.DonationRecord {
	out, dropped := domain.SanitizeDonations(in)
	if dropped > 0 {
		s.metrics.DonationsDropped(dropped)
		s.log.Warn().Int("dropped", dropped).Msg("discarded malformed donation records")
	}
	return out
}

func wrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
