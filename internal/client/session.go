package client

import (
	"context"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// SessionState is the outcome of RestoreSession.
type SessionState int

const (
	Anonymous SessionState = iota
	Authenticated
)

func (s SessionState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session describes who the client is acting as.
type Session struct {
	State       SessionState
	User        domain.Profile
	AccessToken string
}

// RestoreSession tries to resume a previous session from the refresh cookie.
// Any failure yields an anonymous session with local state cleared; it is a
// normal outcome, not an error.
func (c *Client) RestoreSession(ctx context.Context) Session {
	if _, err := c.Refresh(ctx); err != nil {
		c.clearSession()
		return Session{State: Anonymous}
	}

	user, err := c.Me(ctx)
	if err != nil {
		c.clearSession()
		return Session{State: Anonymous}
	}

	return Session{State: Authenticated, User: user, AccessToken: c.AccessToken()}
}
