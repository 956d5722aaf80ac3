package ports

import "github.com/XploitFox/private-navigation-system/internal/core/domain"

// AccessTokenVerifier is the slice of the token service the auth middleware needs.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*domain.Principal, error)
}

// TokenService issues and verifies the access/refresh credential pair.
// Verification failures are always domain.ErrInvalidToken.
type TokenService interface {
	AccessTokenVerifier
	IssueAccessToken(username string) (string, error)
	IssueRefreshToken(username string) (string, error)
	VerifyRefreshToken(token string) (*domain.Principal, error)
	AccessTTLSeconds() int64
	RefreshTTLSeconds() int64
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	HashPassword(plain string) (string, error)
	VerifyPassword(plain, hash string) bool
}
