package records

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passkeeper/internal/crypto"
	"github.com/iudanet/passkeeper/internal/models"
	"github.com/iudanet/passkeeper/internal/server/metrics"
	"github.com/iudanet/passkeeper/internal/server/storage"
	"github.com/iudanet/passkeeper/internal/server/storage/sqlstore"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCipher(t *testing.T) *crypto.Cipher {
	t.Helper()
	c, err := crypto.NewCipher("records-test-secret")
	require.NoError(t, err)
	return c
}

// setupStore creates a record store on top of in-memory SQLite
func setupStore(t *testing.T, opts ...Option) (*Store, *sqlstore.Storage) {
	t.Helper()

	st, err := sqlstore.New(context.Background(), sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return NewStore(discardLogger(), st, testCipher(t), opts...), st
}

func strPtr(s string) *string { return &s }

func TestStore_CreateEncodesSecret(t *testing.T) {
	ctx := context.Background()
	s, st := setupStore(t)

	record, err := s.Create(ctx, "u1", "github.com", "dev", "Tr0ub4dor")
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "u1", record.OwnerID)
	assert.True(t, crypto.IsEncoded(record.Secret))
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)

	stored, err := st.GetRecord(ctx, "u1", record.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{32}\.[0-9a-f]+$`, stored.Secret)
	assert.NotContains(t, stored.Secret, "Tr0ub4dor")
	assert.Equal(t, "Tr0ub4dor", s.DecryptSecret(stored))
}

func TestStore_Apply(t *testing.T) {
	ctx := context.Background()

	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := created
	s, _ := setupStore(t, WithClock(func() time.Time { return clock }))

	record, err := s.Create(ctx, "u1", "old.com", "alice", "oldpass")
	require.NoError(t, err)

	t.Run("replaces all fields", func(t *testing.T) {
		clock = created.Add(time.Hour)

		updated, err := s.Apply(ctx, "u1", record.ID, Patch{
			Website:  strPtr("new.com"),
			Username: strPtr("bob"),
			Secret:   strPtr("newpass"),
		})
		require.NoError(t, err)
		assert.Equal(t, "new.com", updated.Website)
		assert.Equal(t, "bob", updated.Username)
		assert.Equal(t, "newpass", s.DecryptSecret(updated))
		assert.NotEqual(t, record.Secret, updated.Secret)
		assert.True(t, created.Equal(updated.CreatedAt))
		assert.True(t, clock.Equal(updated.UpdatedAt))
	})

	t.Run("keeps secret when not in patch", func(t *testing.T) {
		before, err := s.Get(ctx, "u1", record.ID)
		require.NoError(t, err)

		updated, err := s.Apply(ctx, "u1", record.ID, Patch{Website: strPtr("renamed.com")})
		require.NoError(t, err)
		assert.Equal(t, before.Secret, updated.Secret)
		assert.Equal(t, "renamed.com", updated.Website)
	})

	t.Run("stored encoded value is not encoded twice", func(t *testing.T) {
		before, err := s.Get(ctx, "u1", record.ID)
		require.NoError(t, err)

		updated, err := s.Apply(ctx, "u1", record.ID, Patch{Secret: strPtr(before.Secret)})
		require.NoError(t, err)
		assert.Equal(t, before.Secret, updated.Secret)
		assert.Equal(t, "newpass", s.DecryptSecret(updated))
	})

	t.Run("foreign owner is not found", func(t *testing.T) {
		_, err := s.Apply(ctx, "u2", record.ID, Patch{Website: strPtr("hijacked.com")})
		assert.ErrorIs(t, err, storage.ErrRecordNotFound)

		got, err := s.Get(ctx, "u1", record.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed.com", got.Website)
	})
}

func TestStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	a, err := s.Create(ctx, "u1", "a.com", "alice", "p1")
	require.NoError(t, err)
	_, err = s.Create(ctx, "u2", "b.com", "bob", "p2")
	require.NoError(t, err)

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	assert.ErrorIs(t, s.Delete(ctx, "u2", a.ID), storage.ErrRecordNotFound)
	require.NoError(t, s.Delete(ctx, "u1", a.ID))
	assert.ErrorIs(t, s.Delete(ctx, "u1", a.ID), storage.ErrRecordNotFound)

	list, err = s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_DecryptSecret(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, _ := setupStore(t, WithMetrics(metrics.New(reg)))

	other, err := crypto.NewCipher("another-secret")
	require.NoError(t, err)
	foreign, err := other.Encode("p@ss")
	require.NoError(t, err)

	own, err := s.codec.Encode("p@ss")
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{name: "encoded", secret: own, want: "p@ss"},
		{name: "legacy plaintext", secret: "plain-old-password", want: crypto.SentinelUnrecognizedFormat},
		{name: "uppercase hex", secret: "ABCDEF0123456789ABCDEF0123456789.00", want: crypto.SentinelUnrecognizedFormat},
		{name: "truncated ciphertext", secret: own[:len(own)-2], want: crypto.SentinelDecryptionFailed},
		{name: "other key", secret: foreign, want: crypto.SentinelDecryptionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &models.CredentialRecord{ID: "r1", OwnerID: "u1", Secret: tt.secret}
			assert.Equal(t, tt.want, s.DecryptSecret(record))

			revealed := s.Reveal(record)
			assert.Equal(t, tt.want, revealed.Secret)
			assert.Equal(t, tt.secret, record.Secret, "Reveal не должен менять исходную запись")
		})
	}

	// Одна серия на каждую причину
	count, err := testutil.GatherAndCount(reg, "passkeeper_secret_decode_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "ожидаются обе причины в метке reason")
}

// counterValue возвращает значение счетчика без меток
func counterValue(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()

	families, err := g.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.NotEmpty(t, mf.GetMetric())
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

// failingCodec не может зашифровать значение
type failingCodec struct{ *crypto.Cipher }

func (failingCodec) Encode(string) (string, error) {
	return "", errors.New("entropy source unavailable")
}

func TestStore_EncodeFailureAbortsWrite(t *testing.T) {
	ctx := context.Background()
	stored := &models.CredentialRecord{
		ID:      "r1",
		OwnerID: "u1",
		Website: "a.com",
		Secret:  "00000000000000000000000000000000.00000000000000000000000000000000",
	}

	mock := &storage.CredentialStorageMock{
		CreateRecordFunc: func(context.Context, *models.CredentialRecord) error {
			t.Fatal("storage must not be called")
			return nil
		},
		GetRecordFunc: func(context.Context, string, string) (*models.CredentialRecord, error) {
			return stored.Clone(), nil
		},
		UpdateRecordFunc: func(context.Context, *models.CredentialRecord) error {
			t.Fatal("storage must not be called")
			return nil
		},
	}

	s := NewStore(discardLogger(), mock, failingCodec{testCipher(t)})

	_, err := s.Create(ctx, "u1", "a.com", "alice", "p")
	assert.ErrorIs(t, err, ErrEncryptFailed)

	_, err = s.Apply(ctx, "u1", "r1", Patch{Secret: strPtr("new")})
	assert.ErrorIs(t, err, ErrEncryptFailed)

	// Без секрета в патче шифрование не требуется
	mock.UpdateRecordFunc = func(context.Context, *models.CredentialRecord) error { return nil }
	updated, err := s.Apply(ctx, "u1", "r1", Patch{Website: strPtr("b.com")})
	require.NoError(t, err)
	assert.Equal(t, stored.Secret, updated.Secret)

	assert.Empty(t, mock.CreateRecordCalls())
	assert.Len(t, mock.UpdateRecordCalls(), 1)
}

func TestStore_StorageErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection refused")

	mock := &storage.CredentialStorageMock{
		CreateRecordFunc: func(_ context.Context, record *models.CredentialRecord) error {
			assert.True(t, crypto.IsEncoded(record.Secret), "в хранилище не должен попадать открытый текст")
			return storeErr
		},
		ListRecordsFunc: func(context.Context, string) ([]*models.CredentialRecord, error) {
			return nil, storeErr
		},
		GetRecordFunc: func(context.Context, string, string) (*models.CredentialRecord, error) {
			return nil, storage.ErrRecordNotFound
		},
	}

	s := NewStore(discardLogger(), mock, testCipher(t))

	_, err := s.Create(ctx, "u1", "a.com", "alice", "p")
	assert.ErrorIs(t, err, storeErr)
	require.Len(t, mock.CreateRecordCalls(), 1)
	assert.Equal(t, "u1", mock.CreateRecordCalls()[0].Record.OwnerID)

	_, err = s.List(ctx, "u1")
	assert.ErrorIs(t, err, storeErr)

	_, err = s.Apply(ctx, "u1", "missing", Patch{Secret: strPtr("x")})
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
	assert.Empty(t, mock.UpdateRecordCalls())
}

func TestStore_EncryptLegacy(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	s, st := setupStore(t, WithMetrics(metrics.New(reg)))

	encoded, err := s.Create(ctx, "u1", "new.com", "alice", "already-encoded")
	require.NoError(t, err)

	// Legacy строки пишем напрямую через bun, в обход проверки формата
	now := time.Now().UTC()
	for _, id := range []string{"legacy-1", "legacy-2"} {
		_, err := st.DB().ExecContext(ctx,
			"INSERT INTO credentials (id, owner_id, website, username, secret, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, "u1", id+".com", "old", "plain-"+id, now, now,
		)
		require.NoError(t, err)
	}

	t.Run("dry run writes nothing", func(t *testing.T) {
		summary, err := s.EncryptLegacy(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, Summary{Checked: 3, Skipped: 1, Encrypted: 2, DryRun: true}, summary)

		got, err := st.GetRecord(ctx, "u1", "legacy-1")
		require.NoError(t, err)
		assert.Equal(t, "plain-legacy-1", got.Secret)
	})

	t.Run("encrypts in place", func(t *testing.T) {
		summary, err := s.EncryptLegacy(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, Summary{Checked: 3, Skipped: 1, Encrypted: 2}, summary)
		assert.InDelta(t, 2, counterValue(t, reg, "passkeeper_legacy_secrets_encrypted_total"), 0)

		for _, id := range []string{"legacy-1", "legacy-2"} {
			got, err := st.GetRecord(ctx, "u1", id)
			require.NoError(t, err)
			assert.True(t, crypto.IsEncoded(got.Secret))
			assert.Equal(t, "plain-"+id, s.DecryptSecret(got))
		}

		got, err := st.GetRecord(ctx, "u1", encoded.ID)
		require.NoError(t, err)
		assert.Equal(t, encoded.Secret, got.Secret)
	})

	t.Run("second run skips everything", func(t *testing.T) {
		summary, err := s.EncryptLegacy(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, Summary{Checked: 3, Skipped: 3}, summary)
	})
}
