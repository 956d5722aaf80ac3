package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XploitFox/private-navigation-system/internal/infrastructure/db/jsonstore"
)

func newTestBackend(t *testing.T) (*DocumentBackend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewDocumentBackend(client, "test:"), mr
}

func TestDocumentBackend_LoadMissing(t *testing.T) {
	b, _ := newTestBackend(t)
	_, err := b.Load(context.Background(), "users")
	require.ErrorIs(t, err, jsonstore.ErrNotFound)
}

func TestDocumentBackend_SaveLoad(t *testing.T) {
	b, mr := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "users", []byte(`{"users":[]}`)))
	data, err := b.Load(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(data))

	raw, err := mr.Get("test:users")
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, raw)
	assert.Zero(t, mr.TTL("test:users"))
}

func TestDocumentBackend_CreateDoesNotOverwrite(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Create(ctx, "navigations", []byte(`{"navigations":[]}`)))
	require.NoError(t, b.Create(ctx, "navigations", []byte(`{"navigations":null}`)))

	data, err := b.Load(ctx, "navigations")
	require.NoError(t, err)
	assert.Equal(t, `{"navigations":[]}`, string(data))
}

func TestDocumentBackend_PingFailsWhenDown(t *testing.T) {
	b, mr := newTestBackend(t)
	require.NoError(t, b.Ping(context.Background()))

	mr.Close()
	require.Error(t, b.Ping(context.Background()))
}

func TestDocumentBackend_DefaultPrefix(t *testing.T) {
	b := NewDocumentBackend(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "")
	assert.Equal(t, DefaultKeyPrefix+"users", b.key("users"))
}

func TestDocumentBackend_BacksNavigationRepository(t *testing.T) {
	b, mr := newTestBackend(t)
	repo := jsonstore.NewNavigationRepository(b, zerolog.Nop())
	ctx := context.Background()

	cats, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.True(t, mr.Exists("test:navigations"))

	mr.Set("test:navigations", "{broken")
	cats, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), Config{Addr: addr})
	require.Error(t, err)
}
