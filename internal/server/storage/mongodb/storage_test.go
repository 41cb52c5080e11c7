package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iudanet/passkeeper/internal/server/storage"
	"github.com/iudanet/passkeeper/internal/server/storage/storagetest"
)

// setupTestStorage подключается к MongoDB из PASSKEEPER_TEST_MONGO_URI
// и использует отдельную базу на каждый тест
func setupTestStorage(t *testing.T) storage.CredentialStorage {
	t.Helper()

	uri := os.Getenv("PASSKEEPER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PASSKEEPER_TEST_MONGO_URI is not set")
	}

	ctx := context.Background()
	database := "passkeeper_test_" + uuid.NewString()[:8]

	s, err := New(ctx, uri, database)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Collection().Database().Drop(context.Background())
		_ = s.Close()
	})

	return s
}

func TestMongoDB(t *testing.T) {
	storagetest.Run(t, setupTestStorage)
}

func TestLegacyObjectIDDocuments(t *testing.T) {
	s := setupTestStorage(t).(*Storage)
	ctx := context.Background()

	// Документ в формате исходного сервиса: ObjectID и открытый пароль
	oid := primitive.NewObjectID()
	now := time.Now().UTC().Truncate(time.Millisecond)
	_, err := s.Collection().InsertOne(ctx, bson.M{
		"_id":       oid,
		"userId":    "user_legacy",
		"website":   "legacy.com",
		"username":  "old",
		"password":  "plaintext",
		"createdAt": now,
		"updatedAt": now,
	})
	require.NoError(t, err)

	records, err := s.ListRecords(ctx, "user_legacy")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, oid.Hex(), records[0].ID)
	assert.Equal(t, "plaintext", records[0].Secret)

	got, err := s.GetRecord(ctx, "user_legacy", oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, "legacy.com", got.Website)

	got.Secret = storagetest.EncodedSecret(7)
	require.NoError(t, s.UpdateRecord(ctx, got))

	require.NoError(t, s.DeleteRecord(ctx, "user_legacy", oid.Hex()))
	_, err = s.GetRecord(ctx, "user_legacy", oid.Hex())
	assert.ErrorIs(t, err, storage.ErrRecordNotFound)
}

func TestDocumentID(t *testing.T) {
	oid := primitive.NewObjectID()

	filter := idFilter("owner", oid.Hex())
	assert.Equal(t, "owner", filter["userId"])
	assert.Equal(t, bson.M{"$in": bson.A{oid.Hex(), oid}}, filter["_id"])

	filter = idFilter("owner", "not-an-object-id")
	assert.Equal(t, "not-an-object-id", filter["_id"])
}
