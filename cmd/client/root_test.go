package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passkeeper/internal/crypto"
	"github.com/iudanet/passkeeper/internal/server"
	"github.com/iudanet/passkeeper/internal/server/credentials"
	"github.com/iudanet/passkeeper/internal/server/identity"
	"github.com/iudanet/passkeeper/internal/server/records"
	"github.com/iudanet/passkeeper/internal/server/storage/sqlstore"
)

// startServer поднимает настоящий API поверх in-memory SQLite
func startServer(t *testing.T) (string, *identity.Resolver) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlstore.New(context.Background(), sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cipher, err := crypto.NewCipher("client-cmd-test")
	require.NoError(t, err)

	resolver, err := identity.NewResolver(identity.Config{Secret: []byte("jwt")})
	require.NoError(t, err)

	srv := server.New(logger, server.Config{Version: "test"}, server.Deps{
		Service:  credentials.NewService(logger, records.NewStore(logger, st, cipher)),
		Store:    st,
		Resolver: resolver,
	})
	t.Cleanup(srv.Close)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts.URL, resolver
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClient_EndToEnd(t *testing.T) {
	url, resolver := startServer(t)
	token, err := resolver.Issue("u1", "", time.Minute)
	require.NoError(t, err)
	t.Setenv("PASSKEEPER_TOKEN", token)

	// Пароль читается из stdin, так как это не терминал
	out, err := execute(t, "Tr0ub4dor\n", "--server", url, "add", "--website", "github.com", "--username", "dev")
	require.NoError(t, err)
	assert.Contains(t, out, "Credential saved successfully")

	id := regexp.MustCompile(`ID: (\S+)`).FindStringSubmatch(out)
	require.Len(t, id, 2)

	out, err = execute(t, "", "--server", url, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "github.com")
	assert.NotContains(t, out, "Tr0ub4dor")

	out, err = execute(t, "", "--server", url, "list", "--show")
	require.NoError(t, err)
	assert.Contains(t, out, "Tr0ub4dor")

	// Пустой ввод сохраняет текущие значения
	_, err = execute(t, "\n\n", "--server", url, "update", id[1], "--password", "n3w")
	require.NoError(t, err)

	out, err = execute(t, "", "--server", url, "show", id[1])
	require.NoError(t, err)
	assert.Contains(t, out, "Website:  github.com")
	assert.Contains(t, out, "Password: n3w")

	_, err = execute(t, "", "--server", url, "delete", "--force", id[1])
	require.NoError(t, err)

	out, err = execute(t, "", "--server", url, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No credentials found.")
}

func TestClient_TokenRequired(t *testing.T) {
	url, _ := startServer(t)
	t.Setenv("PASSKEEPER_TOKEN", "")

	_, err := execute(t, "", "--server", url, "list")
	assert.ErrorContains(t, err, "bearer token is required")
}

func TestClient_InvalidToken(t *testing.T) {
	url, _ := startServer(t)

	_, err := execute(t, "", "--server", url, "--token", "garbage", "list")
	assert.ErrorContains(t, err, "unauthorized")
}

func TestClient_Status(t *testing.T) {
	url, _ := startServer(t)

	out, err := execute(t, "", "--server", url, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:  ok")
	assert.Contains(t, out, "Version: test")
}
