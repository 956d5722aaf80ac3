package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/XploitFox/private-navigation-system/internal/infrastructure/db/jsonstore"
)

const collectionDocuments = "documents"

// DocumentBackend keeps every logical collection as one record in the
// "documents" collection, keyed by name. The JSON text is stored verbatim.
type DocumentBackend struct {
	db  *mongo.Database
	col *mongo.Collection
}

var _ jsonstore.Backend = (*DocumentBackend)(nil)

func NewDocumentBackend(db *mongo.Database) *DocumentBackend {
	return &DocumentBackend{db: db, col: db.Collection(collectionDocuments)}
}

type documentRecord struct {
	ID        string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (b *DocumentBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec documentRecord
	if err := b.col.FindOne(ctx, bson.M{"_id": collection}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, jsonstore.ErrNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return []byte(rec.Payload), nil
}

func (b *DocumentBackend) Save(ctx context.Context, collection string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec := documentRecord{ID: collection, Payload: string(data), UpdatedAt: time.Now().UTC()}
	_, err := b.col.ReplaceOne(ctx, bson.M{"_id": collection}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// Create upserts with $setOnInsert so an existing document is never touched.
func (b *DocumentBackend) Create(ctx context.Context, collection string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{
		"payload":    string(data),
		"updated_at": time.Now().UTC(),
	}}
	_, err := b.col.UpdateOne(ctx, bson.M{"_id": collection}, update, options.Update().SetUpsert(true))
	if err != nil {
		// Two concurrent upserts on the same _id: the loser sees a duplicate key.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (b *DocumentBackend) Ping(ctx context.Context) error {
	if err := b.db.Client().Ping(ctx, nil); err != nil {
		return err
	}
	return b.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
