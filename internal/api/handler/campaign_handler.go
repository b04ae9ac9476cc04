package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

type CampaignHandler struct {
	dashboards ports.DashboardService
}

func NewCampaignHandler(dashboards ports.DashboardService) *CampaignHandler {
	return &CampaignHandler{dashboards: dashboards}
}

type statusRequest struct {
	Status domain.CampaignStatus `json:"status" validate:"required,oneof=active closed"`
}

type donateRequest struct {
	Amount domain.Money `json:"amount" validate:"gt=0"`
}

// List returns public campaigns.
//
// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Param        category  query     string  false  "health, education, disaster, others or all"
// @Param        search    query     string  false  "Matches title and description"
// @Param        limit     query     int     false  "Maximum number of campaigns"
// @Success      200       {array}   domain.Campaign
// @Failure      400       {object}  map[string]string
// @Router       /campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	filter := domain.CampaignFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		filter.Limit = n
	}

	out, err := h.dashboards.Campaigns(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a campaign with its donations.
//
// @Summary      Campaign detail
// @Tags         campaigns
// @Produce      json
// @Param        id   path      string  true  "Campaign ID"
// @Success      200  {object}  ports.CampaignDetail
// @Failure      404  {object}  map[string]string
// @Router       /campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	out, err := h.dashboards.Campaign(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Create starts a campaign owned by the signed-in NGO.
//
// @Summary      Create campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        body  body      ports.CreateCampaignInput  true  "Campaign"
// @Success      201   {object}  domain.Campaign
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	var req ports.CreateCampaignInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	out, err := h.dashboards.CreateCampaign(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// SetStatus opens or closes a campaign.
//
// @Summary      Set campaign status
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Campaign ID"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  domain.Campaign
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /campaigns/{id}/status [put]
func (h *CampaignHandler) SetStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	out, err := h.dashboards.SetCampaignStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes a campaign.
//
// @Summary      Delete campaign
// @Tags         campaigns
// @Param        id   path  string  true  "Campaign ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	if err := h.dashboards.DeleteCampaign(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Donate records a donation to a campaign. No payment is processed.
//
// @Summary      Donate
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Campaign ID"
// @Param        body  body      donateRequest  true  "Amount in dollars"
// @Success      201   {object}  domain.DonationRecord
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /campaigns/{id}/donations [post]
func (h *CampaignHandler) Donate(c echo.Context) error {
	var req donateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	out, err := h.dashboards.Donate(c.Request().Context(), c.Param("id"), req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}
