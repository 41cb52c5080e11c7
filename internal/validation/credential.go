package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxWebsiteLen максимальная длина website (в символах)
	MaxWebsiteLen = 255
	// MaxUsernameLen максимальная длина username (в символах)
	MaxUsernameLen = 255
	// MaxSecretLen максимальная длина пароля в байтах
	MaxSecretLen = 4096
)

var (
	// ErrEmptyField означает, что обязательное поле пустое
	ErrEmptyField = errors.New("field is required")
	// ErrFieldTooLong означает, что поле превышает допустимую длину
	ErrFieldTooLong = errors.New("field is too long")
)

// Error описывает ошибку валидации конкретного поля
type Error struct {
	Err   error
	Field string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CredentialInput входные данные для создания и обновления записи
type CredentialInput struct {
	Website  string
	Username string
	Secret   string
}

// Normalize возвращает копию с обрезанными пробелами в Website и Username.
// Secret сохраняется как есть.
func (in CredentialInput) Normalize() CredentialInput {
	return CredentialInput{
		Website:  strings.TrimSpace(in.Website),
		Username: strings.TrimSpace(in.Username),
		Secret:   in.Secret,
	}
}

// ValidateCredential нормализует и проверяет входные данные.
// Все три поля обязательны и не могут состоять только из пробелов.
func ValidateCredential(in CredentialInput) (CredentialInput, error) {
	in = in.Normalize()

	if in.Website == "" {
		return in, &Error{Field: "website", Err: ErrEmptyField}
	}
	if utf8.RuneCountInString(in.Website) > MaxWebsiteLen {
		return in, &Error{Field: "website", Err: ErrFieldTooLong}
	}

	if in.Username == "" {
		return in, &Error{Field: "username", Err: ErrEmptyField}
	}
	if utf8.RuneCountInString(in.Username) > MaxUsernameLen {
		return in, &Error{Field: "username", Err: ErrFieldTooLong}
	}

	if strings.TrimSpace(in.Secret) == "" {
		return in, &Error{Field: "password", Err: ErrEmptyField}
	}
	if len(in.Secret) > MaxSecretLen {
		return in, &Error{Field: "password", Err: ErrFieldTooLong}
	}

	return in, nil
}
