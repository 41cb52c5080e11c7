package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/passkeeper/internal/models"
	"github.com/iudanet/passkeeper/internal/server/storage"
)

// CreateRecord stores a new record and indexes it under its owner
func (s *Storage) CreateRecord(ctx context.Context, record *models.CredentialRecord) error {
	if err := storage.CheckWritable(record); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		credentials := tx.Bucket(bucketCredentials)
		if credentials.Get([]byte(record.ID)) != nil {
			return storage.ErrRecordExists
		}

		if err := putRecord(credentials, record); err != nil {
			return err
		}

		owner, err := tx.Bucket(bucketOwners).CreateBucketIfNotExists([]byte(record.OwnerID))
		if err != nil {
			return fmt.Errorf("failed to create owner index: %w", err)
		}
		if err := owner.Put([]byte(record.ID), []byte{}); err != nil {
			return fmt.Errorf("failed to index record: %w", err)
		}

		return nil
	})
}

// GetRecord retrieves a record by ID, filtered by owner
func (s *Storage) GetRecord(ctx context.Context, ownerID, id string) (*models.CredentialRecord, error) {
	var record *models.CredentialRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		record, err = getOwned(tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// ListRecords retrieves all records of the owner, newest first
func (s *Storage) ListRecords(ctx context.Context, ownerID string) ([]*models.CredentialRecord, error) {
	records := make([]*models.CredentialRecord, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		owner := tx.Bucket(bucketOwners).Bucket([]byte(ownerID))
		if owner == nil {
			return nil
		}

		credentials := tx.Bucket(bucketCredentials)
		return owner.ForEach(func(k, _ []byte) error {
			record, err := decodeRecord(credentials.Get(k))
			if err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})

	return records, nil
}

// UpdateRecord replaces the mutable fields of the record matching id and owner
func (s *Storage) UpdateRecord(ctx context.Context, record *models.CredentialRecord) error {
	if err := storage.CheckWritable(record); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		existing, err := getOwned(tx, record.OwnerID, record.ID)
		if err != nil {
			return err
		}

		existing.Website = record.Website
		existing.Username = record.Username
		existing.Secret = record.Secret
		existing.UpdatedAt = record.UpdatedAt.UTC()

		return putRecord(tx.Bucket(bucketCredentials), existing)
	})
}

// DeleteRecord removes the record matching id and owner
func (s *Storage) DeleteRecord(ctx context.Context, ownerID, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := getOwned(tx, ownerID, id); err != nil {
			return err
		}

		if err := tx.Bucket(bucketCredentials).Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete record: %w", err)
		}
		if err := tx.Bucket(bucketOwners).Bucket([]byte(ownerID)).Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete owner index: %w", err)
		}

		return nil
	})
}

// ForEachRecord calls fn for every stored record.
// Records are read in one read transaction and fn is called after it is closed,
// so fn may write to the storage.
func (s *Storage) ForEachRecord(ctx context.Context, fn func(*models.CredentialRecord) error) error {
	var records []*models.CredentialRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCredentials).ForEach(func(_, v []byte) error {
			record, err := decodeRecord(v)
			if err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(record); err != nil {
			return err
		}
	}

	return nil
}

// getOwned читает запись и проверяет владельца; чужая запись неотличима от отсутствующей
func getOwned(tx *bbolt.Tx, ownerID, id string) (*models.CredentialRecord, error) {
	data := tx.Bucket(bucketCredentials).Get([]byte(id))
	if data == nil {
		return nil, storage.ErrRecordNotFound
	}

	record, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != ownerID {
		return nil, storage.ErrRecordNotFound
	}

	return record, nil
}

func putRecord(bucket *bbolt.Bucket, record *models.CredentialRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := bucket.Put([]byte(record.ID), data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

func decodeRecord(data []byte) (*models.CredentialRecord, error) {
	if data == nil {
		return nil, fmt.Errorf("dangling owner index entry")
	}

	record := &models.CredentialRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return record, nil
}
