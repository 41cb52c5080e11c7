// Package storagetest contains a behavioral test suite shared by all
// storage.CredentialStorage backends.
package storagetest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passkeeper/internal/models"
	"github.com/iudanet/passkeeper/internal/server/storage"
)

// Factory returns a fresh, empty storage. Cleanup is registered via t.Cleanup.
type Factory func(t *testing.T) storage.CredentialStorage

// EncodedSecret returns a value in encoded form. It is not real ciphertext;
// backends only check the format.
func EncodedSecret(seed int) string {
	return fmt.Sprintf("%032x.%032x", seed, seed+1)
}

// NewRecord builds a record ready to be persisted
func NewRecord(ownerID, website string, createdAt time.Time) *models.CredentialRecord {
	return &models.CredentialRecord{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Website:   website,
		Username:  "user-" + website,
		Secret:    EncodedSecret(len(website)),
		CreatedAt: createdAt.UTC().Truncate(time.Second),
		UpdatedAt: createdAt.UTC().Truncate(time.Second),
	}
}

// Run executes the suite against backends produced by newStorage
func Run(t *testing.T, newStorage Factory) {
	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newStorage(t)) })
	t.Run("CreateDuplicateID", func(t *testing.T) { testCreateDuplicateID(t, newStorage(t)) })
	t.Run("RejectsPlaintext", func(t *testing.T) { testRejectsPlaintext(t, newStorage(t)) })
	t.Run("ListOwnerScoped", func(t *testing.T) { testListOwnerScoped(t, newStorage(t)) })
	t.Run("ListEmpty", func(t *testing.T) { testListEmpty(t, newStorage(t)) })
	t.Run("UpdateOwnerScoped", func(t *testing.T) { testUpdateOwnerScoped(t, newStorage(t)) })
	t.Run("DeleteOwnerScoped", func(t *testing.T) { testDeleteOwnerScoped(t, newStorage(t)) })
	t.Run("ForEachRecord", func(t *testing.T) { testForEachRecord(t, newStorage(t)) })
	t.Run("Ping", func(t *testing.T) { require.NoError(t, newStorage(t).Ping(context.Background())) })
}

func testCreateAndGet(t *testing.T, s storage.CredentialStorage) {
	ctx := context.Background()
	record := NewRecord("owner-a", "github.com", time.Now())

	require.NoError(t, s.CreateRecord(ctx, record))

	got, err := s.GetRecord(ctx, "owner-a", record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.OwnerID, got.OwnerID)
	assert.Equal(t, record.Website, got.Website)
	assert.Equal(t, record.Username, got.Username)
	assert.Equal(t, record.Secret, got.Secret)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt), "created_at: want %v, got %v", record.CreatedAt, got.CreatedAt)

	_, err = s.GetRecord(ctx, "owner-b", record.ID)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound, "чужая запись должна выглядеть как несуществующая")

	_, err = s.GetRecord(ctx, "owner-a", uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func testCreateDuplicateID(t *testing.T, s storage.CredentialStorage) {
	ctx := context.Background()
	record := NewRecord("owner-a", "example.com", time.Now())

	require.NoError(t, s.CreateRecord(ctx, record))
	assert.ErrorIs(t, s.CreateRecord(ctx, record), storage.ErrRecordExists)
}

func testRejectsPlaintext(t *testing.T, s storage.CredentialStorage) {
	ctx := context.Background()

	plain := NewRecord("owner-a", "example.com", time.Now())
	plain.Secret = "hunter2"
	assert.ErrorIs(t, s.CreateRecord(ctx, plain), storage.ErrPlaintextSecret)

	noOwner := NewRecord("", "example.com", time.Now())
	assert.ErrorIs(t, s.CreateRecord(ctx, noOwner), storage.ErrMissingOwner)

	stored := NewRecord("owner-a", "example.com", time.Now())
	require.NoError(t, s.CreateRecord(ctx, stored))

	update := stored.Clone()
	update.Secret = "new plaintext"
	assert.ErrorIs(t, s.UpdateRecord(ctx, update), storage.ErrPlaintextSecret)

	got, err := s.GetRecord(ctx, "owner-a", stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Secret, got.Secret)

	records, err := s.ListRecords(ctx, "owner-a")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func testListOwnerScoped(t *testing.T, s storage.CredentialStorage) {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, website := range []string{"a.com", "b.com", "c.com"} {
		require.NoError(t, s.CreateRecord(ctx, NewRecord("owner-a", website, base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, s.CreateRecord(ctx, NewRecord("owner-b", "b-only.com", base)))

	records, err := s.ListRecords(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, records, 3)

	for _, r := range records {
		assert.Equal(t, "owner-a", r.OwnerID)
	}
	// Новые записи первыми
	assert.Equal(t, "c.com", records[0].Website)
	assert.Equal(t, "a.com", records[2].Website)

	records, err = s.ListRecords(ctx, "owner-b")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b-only.com", records[0].Website)

	// Префикс владельца не должен совпадать
	records, err = s.ListRecords(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func testListEmpty(t *testing.T, s storage.CredentialStorage) {
	records, err := s.ListRecords(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func testUpdateOwnerScoped(t *testing.T, s storage.CredentialStorage) {
	ctx := context.Background()
	original := NewRecord("owner-a", "old.com", time.Now().Add(-time.Minute))
	require.NoError(t, s.CreateRecord(ctx, original))

	// Попытка чужого владельца
	foreign := original.Clone()
	foreign.OwnerID = "owner-b"
	foreign.Website = "hijacked.com"
	foreign.Secret = EncodedSecret(999)
	assert.ErrorIs(t, s.UpdateRecord(ctx, foreign), storage.ErrRecordNotFound)

	got, err := s.GetRecord(ctx, "owner-a", original.ID)
	require.NoError(t, err)
	assert.Equal(t, "old.com", got.Website)
	assert.Equal(t, original.Secret, got.Secret)

	// Обновление владельцем заменяет все поля
	updated := original.Clone()
	updated.Website = "new.com"
	updated.Username = "bob"
	updated.Secret = EncodedSecret(42)
	updated.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.UpdateRecord(ctx, updated))

	// Повторное обновление теми же значениями остается успешным
	require.NoError(t, s.UpdateRecord(ctx, updated))

	got, err = s.GetRecord(ctx, "owner-a", original.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.com", got.Website)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, EncodedSecret(42), got.Secret)
	assert.Equal(t, "owner-a", got.OwnerID)
	assert.True(t, original.CreatedAt.Equal(got.CreatedAt), "created_at не должен меняться")

	missing := NewRecord("owner-a", "missing.com", time.Now())
	assert.ErrorIs(t, s.UpdateRecord(ctx, missing), storage.ErrRecordNotFound)
}

func testDeleteOwnerScoped(t *testing.T, s storage.CredentialStorage) {
	ctx := context.Background()
	record := NewRecord("owner-a", "delete.com", time.Now())
	require.NoError(t, s.CreateRecord(ctx, record))

	assert.ErrorIs(t, s.DeleteRecord(ctx, "owner-b", record.ID), storage.ErrRecordNotFound)
	_, err := s.GetRecord(ctx, "owner-a", record.ID)
	require.NoError(t, err, "запись не должна удаляться чужим владельцем")

	require.NoError(t, s.DeleteRecord(ctx, "owner-a", record.ID))
	assert.ErrorIs(t, s.DeleteRecord(ctx, "owner-a", record.ID), storage.ErrRecordNotFound)

	_, err = s.GetRecord(ctx, "owner-a", record.ID)
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func testForEachRecord(t *testing.T, s storage.CredentialStorage) {
	ctx := context.Background()
	const total = 250

	want := make(map[string]bool, total)
	for i := 0; i < total; i++ {
		owner := fmt.Sprintf("owner-%d", i%3)
		record := NewRecord(owner, fmt.Sprintf("site-%03d.com", i), time.Now())
		require.NoError(t, s.CreateRecord(ctx, record))
		want[record.ID] = true
	}

	seen := make(map[string]bool, total)
	err := s.ForEachRecord(ctx, func(r *models.CredentialRecord) error {
		assert.False(t, seen[r.ID], "запись %s встретилась дважды", r.ID)
		seen[r.ID] = true

		// Запись во время обхода не должна блокировать хранилище
		r.Website = strings.ToUpper(r.Website)
		return s.UpdateRecord(ctx, r)
	})
	require.NoError(t, err)
	assert.Equal(t, want, seen)

	stop := fmt.Errorf("stop")
	calls := 0
	err = s.ForEachRecord(ctx, func(*models.CredentialRecord) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
