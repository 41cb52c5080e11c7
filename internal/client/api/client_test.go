package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passkeeper/pkg/api"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, resp api.Response) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

// TestClient_List проверяет получение списка и передачу токена
func TestClient_List(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/passwords", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		writeEnvelope(t, w, http.StatusOK, api.Response{
			Success: true,
			Message: "Passwords fetched successfully",
			Data: []api.CredentialRecord{
				{ID: "r1", UserID: "u1", Website: "github.com", Username: "dev", Password: "p", CreatedAt: now, UpdatedAt: now},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "token-123")

	records, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)
	assert.Equal(t, "github.com", records[0].Website)
	assert.True(t, now.Equal(records[0].CreatedAt))
}

// TestClient_CreateUpdateDelete проверяет тела и пути запросов записи
func TestClient_CreateUpdateDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/passwords":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var req api.CredentialRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeEnvelope(t, w, http.StatusCreated, api.Response{Success: true, Data: api.CredentialRecord{
				ID: "new", Website: req.Website, Username: req.Username, Password: req.Password,
			}})
		case r.Method == http.MethodPut && r.URL.Path == "/api/passwords/new":
			var req api.CredentialRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeEnvelope(t, w, http.StatusOK, api.Response{Success: true, Data: api.CredentialRecord{
				ID: "new", Website: req.Website, Username: req.Username, Password: req.Password,
			}})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/passwords/new":
			writeEnvelope(t, w, http.StatusOK, api.Response{Success: true, Message: "Password deleted successfully"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	ctx := context.Background()

	created, err := client.Create(ctx, api.CredentialRequest{Website: "a.com", Username: "alice", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, "p1", created.Password)

	updated, err := client.Update(ctx, "new", api.CredentialRequest{Website: "b.com", Username: "bob", Password: "p2"})
	require.NoError(t, err)
	assert.Equal(t, "b.com", updated.Website)

	require.NoError(t, client.Delete(ctx, "new"))
}

// TestClient_Errors проверяет разбор ошибок сервера
func TestClient_Errors(t *testing.T) {
	tests := []struct {
		wantIs      error
		name        string
		body        string
		expectedMsg string
		statusCode  int
	}{
		{
			name:        "unauthorized",
			statusCode:  http.StatusUnauthorized,
			body:        `{"success":false,"message":"Invalid token","error":"Unauthorized"}`,
			wantIs:      ErrUnauthorized,
			expectedMsg: "Invalid token",
		},
		{
			name:        "not found",
			statusCode:  http.StatusNotFound,
			body:        `{"success":false,"message":"Password not found","error":"Not Found"}`,
			wantIs:      ErrNotFound,
			expectedMsg: "Password not found",
		},
		{
			name:        "bad request",
			statusCode:  http.StatusBadRequest,
			body:        `{"success":false,"message":"All fields (website, username, password) are required"}`,
			expectedMsg: "server error (400): All fields",
		},
		{
			name:        "plain text error",
			statusCode:  http.StatusBadGateway,
			body:        "Bad Gateway",
			expectedMsg: "request failed with status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "t")
			_, err := client.Create(context.Background(), api.CredentialRequest{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedMsg)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

// TestClient_Health проверяет health check без конверта
func TestClient_Health(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(status)
		resp := api.HealthResponse{Status: "ok", Version: "1.0.0"}
		if status != http.StatusOK {
			resp.Status = "unavailable"
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", health.Version)

	status = http.StatusServiceUnavailable
	health, err = client.Health(context.Background())
	require.Error(t, err)
	assert.Equal(t, "unavailable", health.Status)
}
