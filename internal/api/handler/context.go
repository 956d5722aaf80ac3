package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/XploitFox/private-navigation-system/internal/api/middleware"
	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Auth middleware. Its
// absence means the route was registered without the middleware.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || p.Username == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
