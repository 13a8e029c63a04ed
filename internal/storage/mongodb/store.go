// Package mongodb implements the session store using MongoDB
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/egelke/dssp-client/internal/storage"
)

// Store implements storage.SessionStore using MongoDB
type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	sessions *mongo.Collection
}

// Config holds MongoDB connection settings
type Config struct {
	URI        string
	Database   string
	Collection string
}

// NewStore creates a new MongoDB session store
func NewStore(ctx context.Context, cfg *Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	collection := cfg.Collection
	if collection == "" {
		collection = "sessions"
	}

	s := &Store{
		client:   client,
		db:       db,
		sessions: db.Collection(collection),
	}

	if err := s.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("creating indexes: %w", err)
	}

	return s, nil
}

func (s *Store) createIndexes(ctx context.Context) error {
	// TTL index: MongoDB removes the record once the security context
	// expired and the download can no longer succeed
	_, err := s.sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiresOn", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("creating session indexes: %w", err)
	}
	return nil
}

func (s *Store) PutSession(ctx context.Context, record *storage.SessionRecord) error {
	_, err := s.sessions.ReplaceOne(ctx,
		bson.M{"_id": record.ID},
		record,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("storing session %s: %w", record.ID, err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*storage.SessionRecord, error) {
	var record storage.SessionRecord
	err := s.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return &record, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.sessions.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.sessions.DeleteMany(ctx, bson.M{"expiresOn": bson.M{"$lt": now}})
	if err != nil {
		return 0, fmt.Errorf("purging expired sessions: %w", err)
	}
	return result.DeletedCount, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
