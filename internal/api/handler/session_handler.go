package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donatehub/donatehub-client/internal/core/domain"
	"github.com/donatehub/donatehub-client/internal/core/ports"
)

// SessionHandler exposes the client session to the UI.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// Get returns the current session. The bearer token is never included.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.Session
// @Router       /session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessions.Session())
}

// Login authenticates with email and password.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  ports.Result
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  ports.Result
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusUnauthorized
	}
	return c.JSON(status, res)
}

// Register creates an account and signs it in.
//
// @Summary      Register
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  ports.Result
// @Failure      400   {object}  ports.Result
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Role == "" {
		req.Role = domain.RoleDonor
	}

	res := h.sessions.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	status := http.StatusCreated
	if !res.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, res)
}

// Logout ends the session.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.Session
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout()
	return c.JSON(http.StatusOK, h.sessions.Session())
}
