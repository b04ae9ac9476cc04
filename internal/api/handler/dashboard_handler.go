package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/donatehub-client/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Get renders the dashboard for the signed-in role.
//
// @Summary      Role dashboard
// @Description  Donor, NGO, admin or super admin view, chosen from the session role.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  ports.Dashboard
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	d, err := h.dashboards.ForSession(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
