// Package client is a Go client for the navigation API. It keeps the access
// token in memory and the refresh token in a cookie jar, and renews the access
// token transparently when a call is rejected.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// ErrUnauthorized means the session is gone: the access token was rejected and
// it could not be renewed. Local session state has been cleared.
var ErrUnauthorized = errors.New("client: unauthorized")

// APIError is a non-2xx response other than an authentication failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the API under baseURL. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
	user        *domain.Profile
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. A cookie jar is attached if
// it has none, since the refresh token only travels as a cookie.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute", baseURL)
	}

	c := &Client{baseURL: u, http: &http.Client{Timeout: defaultTimeout}}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// AccessToken returns the in-memory access token, empty when signed out.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// User returns the signed-in user, or nil.
func (c *Client) User() *domain.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Client) setSession(token string, user *domain.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
	if user != nil {
		u := *user
		c.user = &u
	}
}

func (c *Client) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.user = nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/api" + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// send performs a single request. A nil out discards the body.
func (c *Client) send(ctx context.Context, method, target string, body []byte, token string, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("client: %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &env) == nil && env.Error != "" {
			msg = env.Error
		}
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("client: decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func rejected(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// authed sends a bearer request. When the server rejects the token it renews
// it once through the refresh cookie and replays the request once. Any
// further rejection clears the session and yields ErrUnauthorized.
func (c *Client) authed(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = jsonBody(in); err != nil {
			return err
		}
	}
	target := c.endpoint(path, query)

	status, err := c.send(ctx, method, target, body, c.AccessToken(), out)
	if err == nil || !rejected(status) {
		return err
	}

	if _, err := c.Refresh(ctx); err != nil {
		c.clearSession()
		if errors.Is(err, ErrUnauthorized) {
			return ErrUnauthorized
		}
		return err
	}

	status, err = c.send(ctx, method, target, body, c.AccessToken(), out)
	if err != nil && rejected(status) {
		c.clearSession()
		return ErrUnauthorized
	}
	return err
}
