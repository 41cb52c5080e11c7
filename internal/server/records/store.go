// Package records keeps credential secrets encrypted at rest.
//
// Every write goes through Store.prepare, which encodes the secret before the
// record reaches storage, and every read for delivery goes through DecryptSecret.
// Storage backends never see a plaintext secret.
package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/passkeeper/internal/crypto"
	"github.com/iudanet/passkeeper/internal/models"
	"github.com/iudanet/passkeeper/internal/server/metrics"
	"github.com/iudanet/passkeeper/internal/server/storage"
)

// ErrEncryptFailed means the secret could not be encoded; the write was not performed
var ErrEncryptFailed = errors.New("failed to encrypt secret")

// SecretCodec переводит секрет в хранимую форму и обратно.
// Реализуется *crypto.Cipher.
type SecretCodec interface {
	Encode(plaintext string) (string, error)
	Decode(encoded string) (string, error)
}

// Patch describes a write. Nil fields keep their stored value.
type Patch struct {
	Website  *string
	Username *string
	Secret   *string
}

// Store is the credential record store: persistence plus the encryption pipeline
type Store struct {
	storage storage.CredentialStorage
	codec   SecretCodec
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// Option configures Store
type Option func(*Store)

// WithMetrics enables metric collection
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock overrides time source (used in tests)
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a record store. The codec is created once at startup and shared
// by all requests; it must not change for the lifetime of the process.
func NewStore(logger *slog.Logger, st storage.CredentialStorage, codec SecretCodec, opts ...Option) *Store {
	s := &Store{
		storage: st,
		codec:   codec,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create encodes the secret and persists a new record owned by ownerID.
// The returned record carries the stored (encoded) secret.
func (s *Store) Create(ctx context.Context, ownerID, website, username, secret string) (*models.CredentialRecord, error) {
	now := s.now().UTC()
	record := &models.CredentialRecord{
		ID:        s.newID(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.prepare(record, Patch{Website: &website, Username: &username, Secret: &secret}, ""); err != nil {
		s.metrics.ObserveRecordOp("create", err)
		return nil, err
	}

	err := s.storage.CreateRecord(ctx, record)
	s.metrics.ObserveRecordOp("create", err)
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	return record, nil
}

// Get returns the stored record of ownerID
func (s *Store) Get(ctx context.Context, ownerID, id string) (*models.CredentialRecord, error) {
	record, err := s.storage.GetRecord(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// List returns the stored records of ownerID, newest first
func (s *Store) List(ctx context.Context, ownerID string) ([]*models.CredentialRecord, error) {
	records, err := s.storage.ListRecords(ctx, ownerID)
	s.metrics.ObserveRecordOp("list", err)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Apply loads the record of ownerID, applies patch and persists it in one
// single-document write. The secret is re-encoded only when it changes.
func (s *Store) Apply(ctx context.Context, ownerID, id string, patch Patch) (*models.CredentialRecord, error) {
	existing, err := s.storage.GetRecord(ctx, ownerID, id)
	if err != nil {
		s.metrics.ObserveRecordOp("update", err)
		return nil, fmt.Errorf("update record: %w", err)
	}

	record := existing.Clone()
	if err := s.prepare(record, patch, existing.Secret); err != nil {
		s.metrics.ObserveRecordOp("update", err)
		return nil, err
	}
	record.UpdatedAt = s.now().UTC()

	err = s.storage.UpdateRecord(ctx, record)
	s.metrics.ObserveRecordOp("update", err)
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}

	return record, nil
}

// Delete removes the record of ownerID
func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	err := s.storage.DeleteRecord(ctx, ownerID, id)
	s.metrics.ObserveRecordOp("delete", err)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// DecryptSecret returns the plaintext of the stored secret.
// A secret that cannot be decoded yields a sentinel instead of an error,
// so one bad record does not fail a whole list.
func (s *Store) DecryptSecret(record *models.CredentialRecord) string {
	plaintext, err := s.codec.Decode(record.Secret)
	if err == nil {
		return plaintext
	}

	reason := "decryption_failed"
	if errors.Is(err, crypto.ErrUnrecognizedFormat) {
		reason = "unrecognized_format"
	}
	s.metrics.DecodeFailure(reason)
	s.logger.Warn("failed to decode stored secret",
		slog.String("record_id", record.ID),
		slog.String("user_id", record.OwnerID),
		slog.String("reason", reason),
	)

	return plaintext
}

// Reveal returns a copy of the record with the secret decrypted
func (s *Store) Reveal(record *models.CredentialRecord) *models.CredentialRecord {
	out := record.Clone()
	out.Secret = s.DecryptSecret(record)
	return out
}

// prepare applies patch to record. This is the only place where a secret is
// turned into its stored form: a new value is encoded, a value equal to the
// currently stored encoded secret is kept as is.
func (s *Store) prepare(record *models.CredentialRecord, patch Patch, storedSecret string) error {
	if patch.Website != nil {
		record.Website = *patch.Website
	}
	if patch.Username != nil {
		record.Username = *patch.Username
	}

	if patch.Secret == nil {
		return nil
	}

	if storedSecret != "" && *patch.Secret == storedSecret && crypto.IsEncoded(storedSecret) {
		record.Secret = storedSecret
		return nil
	}

	secret := *patch.Secret
	if storedSecret != "" && crypto.IsSentinel(secret) {
		// Клиент вернул sentinel, который получил при чтении: хранимое значение не трогаем
		if decoded, err := s.codec.Decode(storedSecret); err != nil && decoded == secret {
			if crypto.IsEncoded(storedSecret) {
				record.Secret = storedSecret
				return nil
			}
			// legacy открытый текст шифруем как есть
			secret = storedSecret
		}
	}

	encoded, err := s.codec.Encode(secret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncryptFailed, err)
	}
	record.Secret = encoded

	return nil
}
