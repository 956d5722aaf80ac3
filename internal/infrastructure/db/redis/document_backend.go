package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/XploitFox/private-navigation-system/internal/infrastructure/db/jsonstore"
)

const DefaultKeyPrefix = "navdash:doc:"

// DocumentBackend stores each collection as a JSON string under <prefix><collection>.
// Keys never expire.
type DocumentBackend struct {
	client *redis.Client
	prefix string
}

var _ jsonstore.Backend = (*DocumentBackend)(nil)

// NewDocumentBackend wraps client. An empty prefix falls back to DefaultKeyPrefix.
func NewDocumentBackend(client *redis.Client, prefix string) *DocumentBackend {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &DocumentBackend{client: client, prefix: prefix}
}

func (b *DocumentBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	data, err := b.client.Get(ctx, b.key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, jsonstore.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (b *DocumentBackend) Save(ctx context.Context, collection string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := b.client.Set(ctx, b.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Create uses SETNX so concurrent first reads seed the document only once.
func (b *DocumentBackend) Create(ctx context.Context, collection string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := b.client.SetNX(ctx, b.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	return nil
}

func (b *DocumentBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *DocumentBackend) key(collection string) string {
	return b.prefix + collection
}
