package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passkeeper/internal/models"
)

var testSecret = []byte("test-jwt-secret")

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestNewResolver(t *testing.T) {
	_, err := NewResolver(Config{})
	assert.Error(t, err)

	r, err := NewResolver(Config{SkipVerify: true})
	require.NoError(t, err)
	assert.True(t, r.SkipVerify())

	_, err = NewResolver(Config{Secret: testSecret})
	assert.NoError(t, err)
}

func TestResolve_Verified(t *testing.T) {
	r, err := NewResolver(Config{Secret: testSecret, Issuer: "passkeeper"})
	require.NoError(t, err)

	valid, err := r.Issue("user_123", "dev@example.com", time.Hour)
	require.NoError(t, err)

	now := time.Now()

	tests := []struct {
		name    string
		token   string
		want    models.Identity
		wantErr error
	}{
		{
			name:  "issued token",
			token: valid,
			want:  models.Identity{ID: "user_123", Email: "dev@example.com"},
		},
		{
			name:    "empty",
			token:   "",
			wantErr: ErrMissingToken,
		},
		{
			name:    "garbage",
			token:   "not.a.jwt",
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{
				Subject: "user_123", Issuer: "passkeeper",
			}),
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired",
			token: signed(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{
				Subject: "user_123", Issuer: "passkeeper", ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			}),
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong issuer",
			token: signed(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{
				Subject: "user_123", Issuer: "someone-else",
			}),
			wantErr: ErrInvalidToken,
		},
		{
			name: "other algorithm",
			token: signed(t, jwt.SigningMethodHS512, testSecret, jwt.RegisteredClaims{
				Subject: "user_123", Issuer: "passkeeper",
			}),
			wantErr: ErrInvalidToken,
		},
		{
			name: "no subject",
			token: signed(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{
				Issuer: "passkeeper",
			}),
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_SkipVerify(t *testing.T) {
	r, err := NewResolver(Config{SkipVerify: true})
	require.NoError(t, err)

	// Токен внешнего IdP с email в списке адресов, подписан неизвестным ключом
	token := signed(t, jwt.SigningMethodHS256, []byte("idp-key"), Claims{
		EmailAddresses: []emailAddress{{EmailAddress: "first@example.com"}, {EmailAddress: "second@example.com"}},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user_2abc",
		},
	})

	got, err := r.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: "user_2abc", Email: "first@example.com"}, got)

	noSub := signed(t, jwt.SigningMethodHS256, []byte("idp-key"), jwt.RegisteredClaims{Issuer: "idp"})
	_, err = r.Resolve(noSub)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = r.Resolve("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = r.Issue("user", "", time.Hour)
	assert.Error(t, err, "без секрета токен не выпустить")
}

func TestIssue(t *testing.T) {
	r, err := NewResolver(Config{Secret: testSecret})
	require.NoError(t, err)

	_, err = r.Issue("", "", time.Hour)
	assert.Error(t, err)

	token, err := r.Issue("user_1", "", 0)
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return testSecret, nil })
	require.NoError(t, err)
	assert.Equal(t, DefaultIssuer, claims.Issuer)
	assert.Nil(t, claims.ExpiresAt)

	// Без Issuer в конфиге проверка issuer не выполняется
	got, err := r.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", got.ID)
	assert.Empty(t, got.Email)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "empty", header: "", wantErr: ErrMissingToken},
		{name: "no token", header: "Bearer ", wantErr: ErrMissingToken},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidToken},
		{name: "no scheme", header: "abc.def.ghi", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	_, ok = FromContext(WithIdentity(context.Background(), models.Identity{}))
	assert.False(t, ok, "пустой ID не считается идентичностью")

	ctx := WithIdentity(context.Background(), models.Identity{ID: "u1", Email: "a@b.c"})
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", got.ID)
}
