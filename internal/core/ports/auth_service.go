package ports

import (
	"context"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// LoginResult is returned by a successful login. RefreshToken must only be
// handed to the client inside an httpOnly cookie.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64 // access token lifetime, seconds
	RefreshExpiresIn int64 // refresh token lifetime, seconds
	User             domain.Profile
}

// RefreshResult carries a freshly minted access token.
type RefreshResult struct {
	AccessToken string
	ExpiresIn   int64
}

// AuthService drives the login / refresh / profile flows.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Refresh returns ErrUnauthorized for an empty token and ErrForbidden for
	// a token that fails verification.
	Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error)
	Profile(ctx context.Context, principal domain.Principal) (domain.Profile, error)
	BootstrapAdmin(ctx context.Context, username, password string) error
}
