package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/donatehub/donatehub-client/internal/core/ports"
)

const tokenCollection = "client_session"

// TokenStore keeps the bearer token in a single document keyed by
// ports.TokenKey.
type TokenStore struct {
	coll *mongo.Collection
}

func NewTokenStore(db *mongo.Database) *TokenStore {
	opts := options.Collection().SetWriteConcern(writeconcern.Majority())
	return &TokenStore{coll: db.Collection(tokenCollection, opts)}
}

type tokenDoc struct {
	ID        string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	var doc tokenDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": ports.TokenKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find token: %w", err)
	}
	return doc.Value, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": ports.TokenKey},
		bson.M{"$set": bson.M{"value": token, "updated_at": time.Now().UTC().Unix()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": ports.TokenKey}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *TokenStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
