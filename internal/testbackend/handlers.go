package testbackend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid payload")
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		return message(c, http.StatusBadRequest, "Name, email and a password of at least 6 characters are required")
	}
	if req.Role == "" {
		req.Role = domain.RoleDonor
	}
	if !req.Role.Valid() {
		return message(c, http.StatusBadRequest, "Invalid role")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return message(c, http.StatusInternalServerError, "Server error")
	}
	u, err := s.store.addUser(req.Name, req.Email, hash, req.Role)
	if errors.Is(err, domain.ErrUserExists) {
		return message(c, http.StatusBadRequest, "User already exists")
	}
	if err != nil {
		return message(c, http.StatusInternalServerError, "Server error")
	}

	token, err := s.IssueToken(u, s.ttl)
	if err != nil {
		return message(c, http.StatusInternalServerError, "Server error")
	}
	s.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("user registered")
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: u})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid payload")
	}
	a, ok := s.store.accountByEmail(req.Email)
	if !ok || !checkPassword(a.passwordHash, req.Password) {
		return message(c, http.StatusBadRequest, "Invalid credentials")
	}
	token, err := s.IssueToken(a.user, s.ttl)
	if err != nil {
		return message(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: a.user})
}

func (s *Server) me(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]domain.User{"user": currentUser(c)})
}

func (s *Server) listCampaigns(c echo.Context) error {
	category := c.QueryParam("category")
	search := strings.ToLower(c.QueryParam("search"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out := s.store.listCampaigns(func(cp domain.Campaign, _ string) bool {
		if category != "" && category != "all" && cp.Category != category {
			return false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(cp.Title), search) &&
			!strings.Contains(strings.ToLower(cp.Description), search) {
			return false
		}
		return true
	}, limit)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getCampaign(c echo.Context) error {
	cp, _, ok := s.store.campaign(c.Param("id"))
	if !ok {
		return message(c, http.StatusNotFound, "Campaign not found")
	}
	return c.JSON(http.StatusOK, cp)
}

func (s *Server) ngoCampaigns(c echo.Context) error {
	owner := c.Param("userId")
	out := s.store.listCampaigns(func(_ domain.Campaign, ownerID string) bool {
		return ownerID == owner
	}, 0)
	return c.JSON(http.StatusOK, out)
}

type createCampaignRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	GoalAmount  domain.Money `json:"goalAmount"`
}

func (s *Server) createCampaign(c echo.Context) error {
	var req createCampaignRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid payload")
	}
	if req.Title == "" || req.GoalAmount <= 0 {
		return message(c, http.StatusBadRequest, "Title and a positive goal amount are required")
	}
	cp := s.store.addCampaign(currentUser(c), req.Title, req.Description, req.Category, req.GoalAmount)
	return c.JSON(http.StatusCreated, cp)
}

type statusRequest struct {
	Status domain.CampaignStatus `json:"status"`
}

func (s *Server) updateCampaign(c echo.Context) error {
	id := c.Param("id")
	if status, msg := s.ownerCheck(c, id); status != 0 {
		return message(c, status, msg)
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid payload")
	}
	if req.Status != domain.CampaignActive && req.Status != domain.CampaignClosed {
		return message(c, http.StatusBadRequest, "Invalid status")
	}
	cp, _ := s.store.setStatus(id, req.Status)
	return c.JSON(http.StatusOK, cp)
}

func (s *Server) deleteCampaign(c echo.Context) error {
	id := c.Param("id")
	if status, msg := s.ownerCheck(c, id); status != 0 {
		return message(c, status, msg)
	}
	s.store.deleteCampaign(id)
	return message(c, http.StatusOK, "Campaign deleted")
}

// ownerCheck returns a non-zero status when the caller may not modify the
// campaign. NGOs may only touch their own campaigns; admins may touch any.
func (s *Server) ownerCheck(c echo.Context, campaignID string) (int, string) {
	_, owner, ok := s.store.campaign(campaignID)
	if !ok {
		return http.StatusNotFound, "Campaign not found"
	}
	u := currentUser(c)
	if u.Role == domain.RoleNGO && owner != u.ID {
		return http.StatusForbidden, "Not authorized"
	}
	return 0, ""
}

type donateRequest struct {
	CampaignID string       `json:"campaignId"`
	Amount     domain.Money `json:"amount"`
}

func (s *Server) donate(c echo.Context) error {
	var req donateRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid payload")
	}
	if req.Amount <= 0 {
		return message(c, http.StatusBadRequest, "Amount must be greater than zero")
	}
	d, err := s.store.donate(req.CampaignID, currentUser(c).ID, req.Amount)
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound):
		return message(c, http.StatusNotFound, "Campaign not found")
	case errors.Is(err, domain.ErrForbidden):
		return message(c, http.StatusBadRequest, "Campaign is not accepting donations")
	case err != nil:
		return message(c, http.StatusInternalServerError, "Server error")
	}
	return c.JSON(http.StatusCreated, d)
}

func (s *Server) donorDonations(c echo.Context) error {
	donor := currentUser(c).ID
	return c.JSON(http.StatusOK, s.store.donationsWhere(func(d donation, _ string) bool {
		return d.donorID == donor
	}))
}

func (s *Server) campaignDonations(c echo.Context) error {
	id := c.Param("id")
	return c.JSON(http.StatusOK, s.store.donationsWhere(func(d donation, _ string) bool {
		return d.campaignID == id
	}))
}

func (s *Server) ngoStats(c echo.Context) error {
	ngo := currentUser(c).ID
	donations := s.store.donationsWhere(func(_ donation, owner string) bool {
		return owner == ngo
	})
	out := domain.NGODonationStats{TotalDonations: len(donations), Donations: donations}
	for _, d := range donations {
		out.TotalRaised += d.Amount
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) adminStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.stats())
}

func (s *Server) adminUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.users())
}

func (s *Server) allDonations(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.donationsWhere(func(donation, string) bool { return true }))
}
