package storage

import (
	"context"

	"github.com/iudanet/passkeeper/internal/crypto"
	"github.com/iudanet/passkeeper/internal/models"
)

//go:generate go tool moq -out storage_mock.go . CredentialStorage

// CredentialStorage defines interface for credential record persistence.
// Records are stored with their secret already encoded; implementations never
// see plaintext and must reject records that fail CheckWritable.
type CredentialStorage interface {
	// CreateRecord stores a new record
	// Returns ErrRecordExists if a record with the same ID exists
	CreateRecord(ctx context.Context, record *models.CredentialRecord) error

	// GetRecord retrieves a record by ID, filtered by owner
	// Returns ErrRecordNotFound if the record doesn't exist or belongs to another owner
	GetRecord(ctx context.Context, ownerID, id string) (*models.CredentialRecord, error)

	// ListRecords retrieves all records of the owner, newest first
	// Returns empty slice if no records found
	ListRecords(ctx context.Context, ownerID string) ([]*models.CredentialRecord, error)

	// UpdateRecord replaces website, username, secret and updated_at of the record
	// matching both record.ID and record.OwnerID as a single atomic write
	// Returns ErrRecordNotFound if nothing matches
	UpdateRecord(ctx context.Context, record *models.CredentialRecord) error

	// DeleteRecord removes the record matching both id and owner
	// Returns ErrRecordNotFound if nothing matches
	DeleteRecord(ctx context.Context, ownerID, id string) error

	// ForEachRecord calls fn for every record of every owner.
	// Iteration stops at the first error returned by fn.
	ForEachRecord(ctx context.Context, fn func(*models.CredentialRecord) error) error

	// Ping checks that the backing store is reachable
	Ping(ctx context.Context) error

	// Close releases the underlying resources
	Close() error
}

// CheckWritable validates a record right before it is persisted
func CheckWritable(record *models.CredentialRecord) error {
	if record.OwnerID == "" {
		return ErrMissingOwner
	}
	if !crypto.IsEncoded(record.Secret) {
		return ErrPlaintextSecret
	}
	return nil
}
