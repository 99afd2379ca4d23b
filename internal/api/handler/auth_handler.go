package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizsites/website-builder/pkg/metrics"
	"github.com/bizsites/website-builder/internal/api/middleware"
	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

// NewAuthHandler builds an AuthHandler. secureCookie marks the session
// cookie Secure and should be true whenever the site is served over HTTPS.
func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

type currentUserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login authenticates an administrator, sets the session cookie and also
// returns the token for API clients.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AdminLoginsTotal.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.AdminLoginsTotal.WithLabelValues("ok").Inc()

	c.SetCookie(h.cookie(session.Token, session.ExpiresAt))
	return c.JSON(http.StatusOK, authResponse{Token: session.Token, ExpiresAt: session.ExpiresAt, User: session.User})
}

// Logout revokes the current session and clears the cookie.
//
// @Summary      Admin logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), s.SessionID, s.ExpiresAt); err != nil {
		return err
	}

	c.SetCookie(h.cookie("", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}

// CurrentUser reports who the session belongs to.
//
// @Summary      Current admin
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  currentUserResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user [get]
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, currentUserResponse{Username: s.Username, Role: s.Role})
}

func (h *AuthHandler) cookie(value string, expires time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		ck.MaxAge = -1
	}
	return ck
}
