package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/iudanet/passkeeper/internal/server/storage"
)

// CollectionName совпадает с коллекцией исходного Node.js сервиса,
// чтобы существующие данные читались без переноса
const CollectionName = "passwords"

// Storage represents MongoDB storage implementation
type Storage struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ storage.CredentialStorage = (*Storage)(nil)

// New connects to MongoDB, ensures indexes and returns the storage
func New(ctx context.Context, uri, database string) (*Storage, error) {
	if database == "" {
		return nil, fmt.Errorf("mongo database name is required")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := &Storage{
		client:     client,
		collection: client.Database(database).Collection(CollectionName),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

// ensureIndexes создает индексы по владельцу и по паре (владелец, website).
// Индекс по паре не уникальный: дубликаты сайта у одного владельца разрешены
func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "website", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Ping checks the connection to the primary
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *Storage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Collection returns the underlying collection for testing purposes
func (s *Storage) Collection() *mongo.Collection {
	return s.collection
}
