package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/passkeeper/internal/client/iocli"
	"github.com/iudanet/passkeeper/internal/crypto"
	"github.com/iudanet/passkeeper/pkg/api"
)

// newMockIO собирает весь вывод в буфер, ответы на вопросы берутся по порядку
func newMockIO(out *bytes.Buffer, answers ...string) *iocli.IOMock {
	next := func(prompt string) (string, error) {
		if len(answers) == 0 {
			return "", fmt.Errorf("unexpected prompt %q", prompt)
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(out, format, a...)
		},
		WriteFunc: func(p []byte) (int, error) {
			return out.Write(p)
		},
		ReadInputFunc:    next,
		ReadPasswordFunc: next,
	}
}

func sampleRecords() []api.CredentialRecord {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []api.CredentialRecord{
		{ID: "r1", UserID: "u1", Website: "github.com", Username: "dev", Password: "Tr0ub4dor", CreatedAt: ts, UpdatedAt: ts},
		{ID: "r2", UserID: "u1", Website: "mail.com", Username: "me", Password: "hunter2", CreatedAt: ts, UpdatedAt: ts},
	}
}

func listing(records []api.CredentialRecord) func(context.Context) ([]api.CredentialRecord, error) {
	return func(context.Context) ([]api.CredentialRecord, error) {
		return records, nil
	}
}

func TestCli_RunList(t *testing.T) {
	tests := []struct {
		name     string
		records  []api.CredentialRecord
		contains []string
		absent   []string
		show     bool
	}{
		{
			name:     "empty list",
			records:  nil,
			contains: []string{"Saved Credentials", "No credentials found."},
		},
		{
			name:     "masked passwords",
			records:  sampleRecords(),
			contains: []string{"github.com", "mail.com", maskedPassword, "Total: 2 credential(s)"},
			absent:   []string{"Tr0ub4dor", "hunter2"},
		},
		{
			name:     "shown passwords",
			records:  sampleRecords(),
			show:     true,
			contains: []string{"Tr0ub4dor", "hunter2"},
			absent:   []string{maskedPassword},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := New(newMockIO(&out), &PasswordClientMock{ListFunc: listing(tt.records)})

			require.NoError(t, c.RunList(context.Background(), tt.show))

			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func TestCli_RunList_Error(t *testing.T) {
	var out bytes.Buffer
	c := New(newMockIO(&out), &PasswordClientMock{
		ListFunc: func(context.Context) ([]api.CredentialRecord, error) {
			return nil, errors.New("unauthorized")
		},
	})

	err := c.RunList(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestCli_RunAdd(t *testing.T) {
	t.Run("prompts for missing fields", func(t *testing.T) {
		var out bytes.Buffer
		mockIO := newMockIO(&out, "example.com", "s3cret")
		client := &PasswordClientMock{
			CreateFunc: func(_ context.Context, req api.CredentialRequest) (*api.CredentialRecord, error) {
				return &api.CredentialRecord{ID: "new-id", Website: req.Website}, nil
			},
		}

		c := New(mockIO, client)
		require.NoError(t, c.RunAdd(context.Background(), Input{Username: "alice"}))

		calls := client.CreateCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, api.CredentialRequest{Website: "example.com", Username: "alice", Password: "s3cret"}, calls[0].Req)

		// Пароль запрашивается без эха
		require.Len(t, mockIO.ReadPasswordCalls(), 1)
		require.Len(t, mockIO.ReadInputCalls(), 1)
		assert.Equal(t, "Website: ", mockIO.ReadInputCalls()[0].Prompt)
		assert.Contains(t, out.String(), "ID: new-id")
	})

	t.Run("empty answer rejected", func(t *testing.T) {
		var out bytes.Buffer
		client := &PasswordClientMock{}

		c := New(newMockIO(&out, "   "), client)
		err := c.RunAdd(context.Background(), Input{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "website cannot be empty")
		assert.Empty(t, client.CreateCalls())
	})

	t.Run("server error", func(t *testing.T) {
		var out bytes.Buffer
		client := &PasswordClientMock{
			CreateFunc: func(context.Context, api.CredentialRequest) (*api.CredentialRecord, error) {
				return nil, errors.New("server error (400): All fields (website, username, password) are required")
			},
		}

		c := New(newMockIO(&out), client)
		err := c.RunAdd(context.Background(), Input{Website: "a", Username: "b", Password: "c"})
		assert.ErrorContains(t, err, "failed to save credential")
	})
}

func TestCli_RunUpdate(t *testing.T) {
	var out bytes.Buffer
	// Пустой ввод сохраняет текущее значение
	mockIO := newMockIO(&out, "", "")
	client := &PasswordClientMock{
		ListFunc: listing(sampleRecords()),
		UpdateFunc: func(_ context.Context, id string, req api.CredentialRequest) (*api.CredentialRecord, error) {
			return &api.CredentialRecord{ID: id}, nil
		},
	}

	c := New(mockIO, client)
	require.NoError(t, c.RunUpdate(context.Background(), "r1", Input{Username: "new-user"}))

	calls := client.UpdateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "r1", calls[0].ID)
	assert.Equal(t, api.CredentialRequest{Website: "github.com", Username: "new-user", Password: "Tr0ub4dor"}, calls[0].Req)
	assert.Equal(t, "Website [github.com]: ", mockIO.ReadInputCalls()[0].Prompt)

	// Неизвестный ID
	err := c.RunUpdate(context.Background(), "missing", Input{})
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestCli_RunUpdate_UnreadablePassword(t *testing.T) {
	records := sampleRecords()
	records[0].Password = crypto.SentinelUnrecognizedFormat

	tests := []struct {
		name     string
		answers  []string
		in       Input
		wantErr  bool
		wantPass string
	}{
		{name: "empty answer is rejected", answers: []string{"", "", ""}, wantErr: true},
		{name: "new password from prompt", answers: []string{"", "", "n3w-pass"}, wantPass: "n3w-pass"},
		{name: "new password from flag", answers: []string{"", ""}, in: Input{Password: "fl4g-pass"}, wantPass: "fl4g-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			mockIO := newMockIO(&out, tt.answers...)
			client := &PasswordClientMock{
				ListFunc: listing(records),
				UpdateFunc: func(_ context.Context, id string, req api.CredentialRequest) (*api.CredentialRecord, error) {
					return &api.CredentialRecord{ID: id}, nil
				},
			}

			c := New(mockIO, client)
			err := c.RunUpdate(context.Background(), "r1", tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, client.UpdateCalls())
				assert.Contains(t, out.String(), "unreadable")
				return
			}
			require.NoError(t, err)

			calls := client.UpdateCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, api.CredentialRequest{Website: "github.com", Username: "dev", Password: tt.wantPass}, calls[0].Req)
			for _, call := range mockIO.ReadPasswordCalls() {
				assert.Equal(t, "Password: ", call.Prompt)
				assert.NotContains(t, call.Prompt, crypto.SentinelUnrecognizedFormat)
			}
		})
	}
}

func TestCli_RunDelete(t *testing.T) {
	tests := []struct {
		name        string
		answers     []string
		force       bool
		wantDeleted bool
	}{
		{name: "confirmed", answers: []string{"yes"}, wantDeleted: true},
		{name: "short confirmation", answers: []string{"Y"}, wantDeleted: true},
		{name: "cancelled", answers: []string{"no"}},
		{name: "forced", force: true, wantDeleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			client := &PasswordClientMock{
				ListFunc:   listing(sampleRecords()),
				DeleteFunc: func(context.Context, string) error { return nil },
			}

			c := New(newMockIO(&out, tt.answers...), client)
			require.NoError(t, c.RunDelete(context.Background(), "r2", tt.force))

			if tt.wantDeleted {
				require.Len(t, client.DeleteCalls(), 1)
				assert.Equal(t, "r2", client.DeleteCalls()[0].ID)
			} else {
				assert.Empty(t, client.DeleteCalls())
				assert.Contains(t, out.String(), "Deletion cancelled.")
			}
			if tt.force {
				assert.Empty(t, client.ListCalls())
			}
		})
	}
}

func TestCli_RunShow(t *testing.T) {
	var out bytes.Buffer
	c := New(newMockIO(&out), &PasswordClientMock{ListFunc: listing(sampleRecords())})

	require.NoError(t, c.RunShow(context.Background(), "r2"))

	text := out.String()
	assert.Contains(t, text, "Website:  mail.com")
	assert.Contains(t, text, "Password: hunter2")
	assert.False(t, strings.Contains(text, "github.com"))

	assert.ErrorIs(t, c.RunShow(context.Background(), "nope"), ErrCredentialNotFound)
}

func TestCli_RunStatus(t *testing.T) {
	var out bytes.Buffer
	client := &PasswordClientMock{
		HealthFunc: func(context.Context) (*api.HealthResponse, error) {
			return &api.HealthResponse{Status: "ok", Version: "1.2.3"}, nil
		},
	}

	c := New(newMockIO(&out), client)
	require.NoError(t, c.RunStatus(context.Background(), "http://localhost:3000"))
	assert.Contains(t, out.String(), "Status:  ok")
	assert.Contains(t, out.String(), "Version: 1.2.3")

	client.HealthFunc = func(context.Context) (*api.HealthResponse, error) {
		return nil, errors.New("connection refused")
	}
	assert.ErrorContains(t, c.RunStatus(context.Background(), "http://localhost:3000"), "not available")
}
