package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/XploitFox/private-navigation-system/internal/metrics"
	"github.com/XploitFox/private-navigation-system/internal/core/domain"
	"github.com/XploitFox/private-navigation-system/internal/core/ports"
)

// AuthService implements login, refresh and the admin bootstrap.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

// Login checks the credentials and mints both tokens. Unknown users and wrong
// passwords produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.VerifyPassword(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	// last_login is best effort; the login itself already succeeded.
	if err := s.users.UpdateLastLogin(ctx, username, s.now().UTC()); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to update last login")
	}

	access, err := s.tokens.IssueAccessToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("login: issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("login: issue refresh token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.LoginResult{
		AccessToken:      access,
		RefreshToken:     refresh,
		ExpiresIn:        s.tokens.AccessTTLSeconds(),
		RefreshExpiresIn: s.tokens.RefreshTTLSeconds(),
		User:             user.Profile(),
	}, nil
}

// Refresh mints a new access token from a refresh token. The refresh token
// itself is not rotated.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (*ports.RefreshResult, error) {
	if refreshToken == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("missing").Inc()
		return nil, domain.ErrUnauthorized
	}

	principal, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrForbidden
	}

	access, err := s.tokens.IssueAccessToken(principal.Username)
	if err != nil {
		return nil, fmt.Errorf("refresh: issue access token: %w", err)
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return &ports.RefreshResult{
		AccessToken: access,
		ExpiresIn:   s.tokens.AccessTTLSeconds(),
	}, nil
}

// Profile returns the public profile of the principal. When the record cannot
// be found the token's username alone is returned.
func (s *AuthService) Profile(ctx context.Context, principal domain.Principal) (domain.Profile, error) {
	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Profile{Username: principal.Username}, nil
		}
		return domain.Profile{}, fmt.Errorf("profile: %w", err)
	}
	return user.Profile(), nil
}

// BootstrapAdmin creates the admin account if it does not exist yet.
// Running it again, or concurrently, is harmless.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("bootstrap admin: %w", domain.ErrInvalidCredentials)
	}

	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: hash password: %w", err)
	}

	err = s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	s.log.Info().Str("username", username).Msg("admin user initialized")
	return nil
}
