package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/passkeeper/internal/server/storage"
)

var (
	// BoltDB bucket names
	bucketCredentials = []byte("credentials")
	bucketOwners      = []byte("owners") // owners/<owner_id>/<record_id> -> nil
)

// Storage represents BoltDB storage implementation.
// Single-file embedded store for deployments without a database server.
type Storage struct {
	db *bbolt.DB
}

var _ storage.CredentialStorage = (*Storage)(nil)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB; таймаут нужен, чтобы не висеть на файле, заблокированном другим процессом
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Ping checks that the database file is open
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketCredentials) == nil {
			return fmt.Errorf("credentials bucket not found")
		}
		return nil
	})
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCredentials); err != nil {
			return fmt.Errorf("failed to create credentials bucket: %w", err)
		}

		if _, err := tx.CreateBucketIfNotExists(bucketOwners); err != nil {
			return fmt.Errorf("failed to create owners bucket: %w", err)
		}

		return nil
	})
}
