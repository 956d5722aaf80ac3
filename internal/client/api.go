package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// LoginResult is the body of a successful login.
type LoginResult struct {
	AccessToken string         `json:"accessToken"`
	ExpiresIn   int64          `json:"expiresIn"`
	User        domain.Profile `json:"user"`
}

type refreshResult struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Login signs in and keeps the session. Wrong credentials return ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body, err := jsonBody(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, err
	}

	var res LoginResult
	status, err := c.send(ctx, http.MethodPost, c.endpoint("/auth/login", nil), body, "", &res)
	if err != nil {
		if status == http.StatusUnauthorized {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	c.setSession(res.AccessToken, &res.User)
	return &res, nil
}

// Refresh exchanges the refresh cookie for a new access token.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	var res refreshResult
	status, err := c.send(ctx, http.MethodPost, c.endpoint("/auth/refresh", nil), nil, "", &res)
	if err != nil {
		if rejected(status) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	c.setSession(res.AccessToken, nil)
	return res.AccessToken, nil
}

// Logout clears the refresh cookie on the server and the local session. The
// local session is cleared even if the request fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.clearSession()
	_, err := c.send(ctx, http.MethodPost, c.endpoint("/auth/logout", nil), nil, "", nil)
	return err
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (domain.Profile, error) {
	var res struct {
		User domain.Profile `json:"user"`
	}
	if err := c.authed(ctx, http.MethodGet, "/auth/me", nil, nil, &res); err != nil {
		return domain.Profile{}, err
	}
	c.setSession(c.AccessToken(), &res.User)
	return res.User, nil
}

// Navigations lists the dashboard, optionally filtered by query.
func (c *Client) Navigations(ctx context.Context, query string) ([]domain.NavigationCategory, error) {
	var q url.Values
	if query != "" {
		q = url.Values{"q": {query}}
	}
	var res struct {
		Categories []domain.NavigationCategory `json:"categories"`
		Total      int                         `json:"total"`
	}
	if err := c.authed(ctx, http.MethodGet, "/navigations", q, nil, &res); err != nil {
		return nil, err
	}
	return res.Categories, nil
}

// SaveNavigations replaces the whole dashboard.
func (c *Client) SaveNavigations(ctx context.Context, categories []domain.NavigationCategory) error {
	if categories == nil {
		categories = []domain.NavigationCategory{}
	}
	req := struct {
		Categories []domain.NavigationCategory `json:"categories"`
	}{Categories: categories}
	return c.authed(ctx, http.MethodPost, "/navigations", nil, req, nil)
}

// Health calls the liveness probe.
func (c *Client) Health(ctx context.Context) error {
	var res struct {
		Success bool `json:"success"`
	}
	if _, err := c.send(ctx, http.MethodGet, c.endpoint("/health", nil), nil, "", &res); err != nil {
		return err
	}
	if !res.Success {
		return errors.New("client: health check reported failure")
	}
	return nil
}

func jsonBody(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("client: encode request: %w", err)
	}
	return b, nil
}
