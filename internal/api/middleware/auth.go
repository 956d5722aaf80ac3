package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
	"github.com/XploitFox/private-navigation-system/internal/core/ports"
)

// PrincipalKey is the echo context key holding the authenticated domain.Principal.
const PrincipalKey = "principal"

type principalCtxKey struct{}

// Auth authenticates requests by bearer access token.
//   - no token: 401
//   - token present but invalid or expired: 403
//   - valid token: the principal is attached to the echo and request contexts.
func Auth(verifier ports.AccessTokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}

			principal, err := verifier.VerifyAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			c.Set(PrincipalKey, *principal)
			req := c.Request()
			c.SetRequest(req.WithContext(WithPrincipal(req.Context(), *principal)))

			return next(c)
		}
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the principal stored by Auth, if any.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(domain.Principal)
	return p, ok
}
