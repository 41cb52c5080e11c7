// Package credentials is the access-controlled record service: the only entry
// point through which callers list, create, update and delete their credential records.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/passkeeper/internal/models"
	"github.com/iudanet/passkeeper/internal/server/records"
	"github.com/iudanet/passkeeper/internal/server/storage"
	"github.com/iudanet/passkeeper/internal/validation"
)

var (
	// ErrUnauthorized is returned when no caller identity was resolved
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the record does not exist or belongs to another owner
	ErrNotFound = errors.New("record not found")
)

// Service enforces owner-scoping and returns records with plaintext secrets
type Service struct {
	store  *records.Store
	logger *slog.Logger
}

// NewService creates a new credentials service
func NewService(logger *slog.Logger, store *records.Store) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// List returns all records of the caller with decrypted secrets
func (s *Service) List(ctx context.Context, caller models.Identity) ([]*models.CredentialRecord, error) {
	if err := authorize(caller); err != nil {
		return nil, err
	}

	stored, err := s.store.List(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.CredentialRecord, 0, len(stored))
	for _, record := range stored {
		out = append(out, s.store.Reveal(record))
	}

	return out, nil
}

// Create validates input and stores a new record owned by the caller
func (s *Service) Create(ctx context.Context, caller models.Identity, in validation.CredentialInput) (*models.CredentialRecord, error) {
	if err := authorize(caller); err != nil {
		return nil, err
	}

	in, err := validation.ValidateCredential(in)
	if err != nil {
		return nil, err
	}

	// Владелец всегда берется из идентичности, а не из запроса
	record, err := s.store.Create(ctx, caller.ID, in.Website, in.Username, in.Secret)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Credential created",
		slog.String("user_id", caller.ID),
		slog.String("record_id", record.ID),
	)

	return s.store.Reveal(record), nil
}

// Update replaces website, username and secret of the caller's record
func (s *Service) Update(ctx context.Context, caller models.Identity, id string, in validation.CredentialInput) (*models.CredentialRecord, error) {
	if err := authorize(caller); err != nil {
		return nil, err
	}

	in, err := validation.ValidateCredential(in)
	if err != nil {
		return nil, err
	}

	record, err := s.store.Apply(ctx, caller.ID, id, records.Patch{
		Website:  &in.Website,
		Username: &in.Username,
		Secret:   &in.Secret,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}

	s.logger.Info("Credential updated",
		slog.String("user_id", caller.ID),
		slog.String("record_id", record.ID),
	)

	return s.store.Reveal(record), nil
}

// Delete removes the caller's record. Deleting twice yields ErrNotFound.
func (s *Service) Delete(ctx context.Context, caller models.Identity, id string) error {
	if err := authorize(caller); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, caller.ID, id); err != nil {
		return mapNotFound(err)
	}

	s.logger.Info("Credential deleted",
		slog.String("user_id", caller.ID),
		slog.String("record_id", id),
	)

	return nil
}

func authorize(caller models.Identity) error {
	if caller.ID == "" {
		return ErrUnauthorized
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, storage.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
