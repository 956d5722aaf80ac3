package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	DefaultAccessTTL  = 900 * time.Second
	DefaultRefreshTTL = 7776000 * time.Second
)

// TokenConfig holds the signing secrets and lifetimes of the credential pair.
// The two secrets are expected to differ.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type tokenClaims struct {
	Username string `json:"username"`
	Type     string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 access and refresh tokens.
type TokenService struct {
	cfg TokenConfig
	now func() time.Time
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &TokenService{cfg: cfg, now: time.Now}
}

// WithClock replaces the time source used for issuing and verifying.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) AccessTTLSeconds() int64  { return int64(s.cfg.AccessTTL / time.Second) }
func (s *TokenService) RefreshTTLSeconds() int64 { return int64(s.cfg.RefreshTTL / time.Second) }

func (s *TokenService) IssueAccessToken(username string) (string, error) {
	return s.issue(username, tokenTypeAccess, s.cfg.AccessSecret, s.cfg.AccessTTL)
}

func (s *TokenService) IssueRefreshToken(username string) (string, error) {
	return s.issue(username, tokenTypeRefresh, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
}

func (s *TokenService) VerifyAccessToken(token string) (*domain.Principal, error) {
	return s.verify(token, tokenTypeAccess, s.cfg.AccessSecret)
}

func (s *TokenService) VerifyRefreshToken(token string) (*domain.Principal, error) {
	return s.verify(token, tokenTypeRefresh, s.cfg.RefreshSecret)
}

func (s *TokenService) issue(username, typ, secret string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Username: username,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// verify never panics or leaks parser errors: every failure is ErrInvalidToken.
func (s *TokenService) verify(raw, typ, secret string) (*domain.Principal, error) {
	if raw == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Type != typ || claims.Username == "" {
		return nil, domain.ErrInvalidToken
	}

	p := &domain.Principal{Username: claims.Username}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}
