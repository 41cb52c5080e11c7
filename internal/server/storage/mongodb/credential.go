package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iudanet/passkeeper/internal/models"
	"github.com/iudanet/passkeeper/internal/server/storage"
)

// credentialDocument keeps the field names of existing "passwords" collections
type credentialDocument struct {
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
	ID        bson.RawValue `bson:"_id"`
	OwnerID   string        `bson:"userId"`
	Website   string        `bson:"website"`
	Username  string        `bson:"username"`
	Password  string        `bson:"password"`
}

func (d *credentialDocument) toModel() *models.CredentialRecord {
	return &models.CredentialRecord{
		ID:        documentID(d.ID),
		OwnerID:   d.OwnerID,
		Website:   d.Website,
		Username:  d.Username,
		Secret:    d.Password,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// documentID приводит _id к строке: новые записи хранят UUID строкой,
// записи исходного сервиса - ObjectID
func documentID(raw bson.RawValue) string {
	if oid, ok := raw.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := raw.StringValueOK(); ok {
		return s
	}
	return raw.String()
}

// idFilter строит фильтр по id и владельцу. Строка из 24 hex символов
// дополнительно сопоставляется с ObjectID legacy документов
func idFilter(ownerID, id string) bson.M {
	filter := bson.M{"userId": ownerID, "_id": id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		filter["_id"] = bson.M{"$in": bson.A{id, oid}}
	}
	return filter
}

// CreateRecord stores a new record
func (s *Storage) CreateRecord(ctx context.Context, record *models.CredentialRecord) error {
	if err := storage.CheckWritable(record); err != nil {
		return err
	}

	doc := bson.D{
		{Key: "_id", Value: record.ID},
		{Key: "userId", Value: record.OwnerID},
		{Key: "website", Value: record.Website},
		{Key: "username", Value: record.Username},
		{Key: "password", Value: record.Secret},
		{Key: "createdAt", Value: record.CreatedAt.UTC()},
		{Key: "updatedAt", Value: record.UpdatedAt.UTC()},
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return storage.ErrRecordExists
		}
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by ID, filtered by owner
func (s *Storage) GetRecord(ctx context.Context, ownerID, id string) (*models.CredentialRecord, error) {
	var doc credentialDocument

	err := s.collection.FindOne(ctx, idFilter(ownerID, id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return doc.toModel(), nil
}

// ListRecords retrieves all records of the owner, newest first
func (s *Storage) ListRecords(ctx context.Context, ownerID string) ([]*models.CredentialRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	var docs []credentialDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	records := make([]*models.CredentialRecord, 0, len(docs))
	for i := range docs {
		records = append(records, docs[i].toModel())
	}

	return records, nil
}

// UpdateRecord replaces the mutable fields of the record matching id and owner
func (s *Storage) UpdateRecord(ctx context.Context, record *models.CredentialRecord) error {
	if err := storage.CheckWritable(record); err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"website":   record.Website,
		"username":  record.Username,
		"password":  record.Secret,
		"updatedAt": record.UpdatedAt.UTC(),
	}}

	result, err := s.collection.UpdateOne(ctx, idFilter(record.OwnerID, record.ID), update)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

// DeleteRecord removes the record matching id and owner
func (s *Storage) DeleteRecord(ctx context.Context, ownerID, id string) error {
	result, err := s.collection.DeleteOne(ctx, idFilter(ownerID, id))
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if result.DeletedCount == 0 {
		return storage.ErrRecordNotFound
	}

	return nil
}

// ForEachRecord calls fn for every stored record
func (s *Storage) ForEachRecord(ctx context.Context, fn func(*models.CredentialRecord) error) error {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return fmt.Errorf("failed to query records: %w", err)
	}
	defer func() {
		_ = cursor.Close(context.Background())
	}()

	for cursor.Next(ctx) {
		var doc credentialDocument
		if err := cursor.Decode(&doc); err != nil {
			return fmt.Errorf("failed to decode record: %w", err)
		}
		if err := fn(doc.toModel()); err != nil {
			return err
		}
	}

	if err := cursor.Err(); err != nil {
		return fmt.Errorf("cursor iteration error: %w", err)
	}

	return nil
}
