package mongo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XploitFox/private-navigation-system/internal/infrastructure/db/jsonstore"
)

// newTestBackend connects to MONGO_TEST_URI and uses a throwaway database.
func newTestBackend(t *testing.T) *DocumentBackend {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	db, disconnect, err := Connect(ctx, Config{
		URI:      uri,
		Database: fmt.Sprintf("navdash_test_%d", time.Now().UnixNano()),
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = disconnect(context.Background())
	})
	return NewDocumentBackend(db)
}

func TestDocumentBackend_RoundTrip(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	_, err := b.Load(ctx, "users")
	require.ErrorIs(t, err, jsonstore.ErrNotFound)

	require.NoError(t, b.Create(ctx, "users", []byte(`{"users":[]}`)))
	require.NoError(t, b.Create(ctx, "users", []byte(`{"users":null}`)))
	data, err := b.Load(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(data))

	require.NoError(t, b.Save(ctx, "users", []byte(`{"users":[{"username":"admin"}]}`)))
	data, err = b.Load(ctx, "users")
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[{"username":"admin"}]}`, string(data))

	require.NoError(t, b.Ping(ctx))
}

func TestDocumentBackend_ConcurrentCreate(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, b.Create(ctx, "navigations", []byte(fmt.Sprintf(`{"n":%d}`, i))))
		}(i)
	}
	wg.Wait()

	_, err := b.Load(ctx, "navigations")
	require.NoError(t, err)
}

func TestConnect_InvalidURI(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{URI: "not-a-uri", Database: "x", Timeout: time.Second})
	require.Error(t, err)
}
