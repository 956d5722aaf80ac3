package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XploitFox/private-navigation-system/internal/core/domain"
)

// fakeAPI accepts exactly one access token at a time and hands out the next
// one on refresh while the refresh cookie is present.
type fakeAPI struct {
	validToken   atomic.Value
	nextToken    string
	refreshOK    bool
	refreshCalls atomic.Int32
	navCalls     atomic.Int32
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, code int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}
	bearerOK := func(r *http.Request) bool {
		tok, _ := f.validToken.Load().(string)
		return tok != "" && r.Header.Get("Authorization") == "Bearer "+tok
	}

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "r1", Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, map[string]any{
			"accessToken": "t1", "expiresIn": 900,
			"user": map[string]string{"username": req.Username},
		})
	})
	mux.HandleFunc("POST /api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		if _, err := r.Cookie("refresh_token"); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "refresh token required"})
			return
		}
		if !f.refreshOK {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid refresh token"})
			return
		}
		f.validToken.Store(f.nextToken)
		writeJSON(w, http.StatusOK, map[string]any{"accessToken": f.nextToken, "expiresIn": 900})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !bearerOK(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "access token required"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]string{"username": "admin"}})
	})
	mux.HandleFunc("GET /api/navigations", func(w http.ResponseWriter, r *http.Request) {
		f.navCalls.Add(1)
		if !bearerOK(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "access token required"})
			return
		}
		cats := domain.DefaultNavigations()
		writeJSON(w, http.StatusOK, map[string]any{"categories": cats, "total": len(cats)})
	})
	mux.HandleFunc("POST /api/navigations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok"})
	})
	return mux
}

func newFake(t *testing.T, f *fakeAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestLogin(t *testing.T) {
	f := &fakeAPI{}
	f.validToken.Store("t1")
	c := newFake(t, f)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.AccessToken())

	res, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "t1", res.AccessToken)
	assert.Equal(t, "t1", c.AccessToken())
	require.NotNil(t, c.User())
	assert.Equal(t, "admin", c.User().Username)

	cats, err := c.Navigations(ctx, "")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Development", cats[0].Name)
	assert.Equal(t, int32(0), f.refreshCalls.Load())
}

func TestAuthedCall_RefreshesOnceAndReplays(t *testing.T) {
	f := &fakeAPI{nextToken: "t2", refreshOK: true}
	f.validToken.Store("t1")
	c := newFake(t, f)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	// The server rotates its accepted token, so t1 is now rejected.
	f.validToken.Store("expired")
	cats, err := c.Navigations(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cats, 2)
	assert.Equal(t, int32(1), f.refreshCalls.Load())
	assert.Equal(t, int32(2), f.navCalls.Load())
	assert.Equal(t, "t2", c.AccessToken())
}

func TestAuthedCall_FailedRefreshClearsSession(t *testing.T) {
	f := &fakeAPI{refreshOK: false}
	f.validToken.Store("t1")
	c := newFake(t, f)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	f.validToken.Store("other")
	_, err = c.Navigations(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), f.refreshCalls.Load())
	assert.Equal(t, int32(1), f.navCalls.Load())
	assert.Empty(t, c.AccessToken())
	assert.Nil(t, c.User())
}

func TestAuthedCall_SecondRejectionDoesNotLoop(t *testing.T) {
	// Refresh succeeds but hands out a token the server still refuses.
	f := &fakeAPI{nextToken: "t2", refreshOK: true}
	f.validToken.Store("t1")
	c := newFake(t, f)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	f.nextToken = "rejected-anyway"
	f.validToken.Store("nothing-matches")
	c.http.Transport = rewriteRefresh{base: http.DefaultTransport, f: f}

	_, err = c.Navigations(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), f.refreshCalls.Load())
	assert.Equal(t, int32(2), f.navCalls.Load())
	assert.Empty(t, c.AccessToken())
}

// rewriteRefresh invalidates whatever token refresh just issued.
type rewriteRefresh struct {
	base http.RoundTripper
	f    *fakeAPI
}

func (rt rewriteRefresh) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := rt.base.RoundTrip(r)
	if err == nil && r.URL.Path == "/api/auth/refresh" {
		rt.f.validToken.Store("nothing-matches")
	}
	return resp, err
}

func TestAPIErrorIsReturnedAsIs(t *testing.T) {
	f := &fakeAPI{}
	f.validToken.Store("t1")
	c := newFake(t, f)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)

	err = c.SaveNavigations(ctx, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "internal server error", apiErr.Message)
	assert.Equal(t, int32(0), f.refreshCalls.Load())
}

func TestRestoreSession(t *testing.T) {
	ctx := context.Background()

	t.Run("no cookie is anonymous", func(t *testing.T) {
		f := &fakeAPI{nextToken: "t2", refreshOK: true}
		c := newFake(t, f)

		s := c.RestoreSession(ctx)
		assert.Equal(t, Anonymous, s.State)
		assert.Empty(t, c.AccessToken())
	})

	t.Run("valid cookie is authenticated", func(t *testing.T) {
		f := &fakeAPI{nextToken: "t2", refreshOK: true}
		f.validToken.Store("t1")
		c := newFake(t, f)
		_, err := c.Login(ctx, "admin", "secret")
		require.NoError(t, err)
		c.clearSession()

		s := c.RestoreSession(ctx)
		assert.Equal(t, Authenticated, s.State)
		assert.Equal(t, "admin", s.User.Username)
		assert.Equal(t, "t2", s.AccessToken)
	})

	t.Run("rejected cookie is anonymous", func(t *testing.T) {
		f := &fakeAPI{refreshOK: false}
		f.validToken.Store("t1")
		c := newFake(t, f)
		_, err := c.Login(ctx, "admin", "secret")
		require.NoError(t, err)

		s := c.RestoreSession(ctx)
		assert.Equal(t, Anonymous, s.State)
		assert.Nil(t, c.User())
	})
}

func TestLogoutDropsCookie(t *testing.T) {
	f := &fakeAPI{nextToken: "t2", refreshOK: true}
	f.validToken.Store("t1")
	c := newFake(t, f)
	ctx := context.Background()

	_, err := c.Login(ctx, "admin", "secret")
	require.NoError(t, err)
	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.AccessToken())

	_, err = c.Refresh(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestHealth(t *testing.T) {
	c := newFake(t, &fakeAPI{})
	require.NoError(t, c.Health(context.Background()))
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("/api")
	require.Error(t, err)
}
