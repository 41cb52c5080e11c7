// Package cli реализует команды консольного клиента поверх HTTP API
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/passkeeper/internal/client/iocli"
	"github.com/iudanet/passkeeper/internal/crypto"
	"github.com/iudanet/passkeeper/pkg/api"
)

//go:generate go tool moq -out client_mock.go . PasswordClient

// PasswordClient операции сервера, используемые командами
type PasswordClient interface {
	List(ctx context.Context) ([]api.CredentialRecord, error)
	Create(ctx context.Context, req api.CredentialRequest) (*api.CredentialRecord, error)
	Update(ctx context.Context, id string, req api.CredentialRequest) (*api.CredentialRecord, error)
	Delete(ctx context.Context, id string) error
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// ErrCredentialNotFound запись с указанным ID отсутствует в списке пользователя
var ErrCredentialNotFound = errors.New("credential not found")

type Cli struct {
	io     iocli.IO
	client PasswordClient
}

func New(io iocli.IO, client PasswordClient) *Cli {
	return &Cli{
		io:     io,
		client: client,
	}
}

// Input значения полей из флагов; пустые поля запрашиваются интерактивно
type Input struct {
	Website  string
	Username string
	Password string
}

// find ищет запись среди записей пользователя (отдельного GET по ID у API нет)
func (c *Cli) find(ctx context.Context, id string) (*api.CredentialRecord, error) {
	records, err := c.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCredentialNotFound, id)
}

// prompt запрашивает значение, если оно не задано.
// current показывается в подсказке и используется при пустом вводе.
func (c *Cli) prompt(value, label, current string, secret bool) (string, error) {
	if value != "" {
		return value, nil
	}

	text := label + ": "
	if current != "" && !secret {
		text = fmt.Sprintf("%s [%s]: ", label, current)
	} else if current != "" {
		text = label + " (leave empty to keep): "
	}

	var (
		answer string
		err    error
	)
	if secret {
		answer, err = c.io.ReadPassword(text)
	} else {
		answer, err = c.io.ReadInput(text)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}

	if answer == "" {
		answer = current
	}
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%s cannot be empty", strings.ToLower(label))
	}
	return answer, nil
}

func (c *Cli) readInput(in Input, current *api.CredentialRecord) (api.CredentialRequest, error) {
	var cur api.CredentialRecord
	if current != nil {
		cur = *current
	}

	website, err := c.prompt(in.Website, "Website", cur.Website, false)
	if err != nil {
		return api.CredentialRequest{}, err
	}
	username, err := c.prompt(in.Username, "Username", cur.Username, false)
	if err != nil {
		return api.CredentialRequest{}, err
	}
	currentPassword := cur.Password
	if crypto.IsSentinel(currentPassword) {
		// Сервер не смог прочитать пароль: sentinel нельзя отправлять обратно как значение
		if in.Password == "" {
			c.io.Printf("Stored password is unreadable (%s), enter a new one\n", currentPassword)
		}
		currentPassword = ""
	}
	password, err := c.prompt(in.Password, "Password", currentPassword, true)
	if err != nil {
		return api.CredentialRequest{}, err
	}

	return api.CredentialRequest{
		Website:  website,
		Username: username,
		Password: password,
	}, nil
}
