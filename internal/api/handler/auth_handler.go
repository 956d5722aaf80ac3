package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
	"github.com/XploitFox/private-navigation-system/internal/core/ports"
)

// CookieConfig controls the refresh-token cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "refresh_token"
	}
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Login authenticates the admin and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, result.RefreshToken, result.RefreshExpiresIn)

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
		User:        result.User,
	})
}

// Refresh mints a new access token from the refresh cookie.
//
// @Summary      Refresh access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  refreshResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		token = cookie.Value
	}

	result, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return echo.NewHTTPError(http.StatusUnauthorized, "refresh token required")
		case errors.Is(err, domain.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "invalid refresh token")
		}
		return err
	}

	return c.JSON(http.StatusOK, refreshResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
	})
}

// Logout clears the refresh cookie. Already issued access tokens stay valid
// until they expire.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	profile, err := h.authService.Profile(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{User: profile})
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string, maxAgeSeconds int64) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAgeSeconds),
		Expires:  time.Now().Add(time.Duration(maxAgeSeconds) * time.Second).UTC(),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
