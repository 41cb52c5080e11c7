package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// FallbackCipherSecret используется только при cipher.allow_default_secret.
// Записи, зашифрованные им, защищены не лучше открытого текста.
const FallbackCipherSecret = "passkeeper-insecure-default-secret"

// ErrMissingCipherSecret is returned when no cipher secret is configured and none can be prompted for
var ErrMissingCipherSecret = errors.New("cipher.secret is not set (use PASSKEEPER_CIPHER_SECRET)")

// SecretPrompter reads a secret without echo
type SecretPrompter func(prompt string) (string, error)

// ResolveCipherSecret returns the secret the record key is derived from.
// Order: configured value, interactive prompt (when prompt is not nil), fallback constant
// when explicitly allowed. The result must be identical across restarts.
func ResolveCipherSecret(logger *slog.Logger, c CipherConfig, prompt SecretPrompter) (string, error) {
	if c.Secret != "" {
		return c.Secret, nil
	}

	if prompt != nil {
		secret, err := prompt("Cipher secret: ")
		if err != nil {
			return "", fmt.Errorf("failed to read cipher secret: %w", err)
		}
		if strings.TrimSpace(secret) == "" {
			return "", ErrMissingCipherSecret
		}
		return secret, nil
	}

	if c.AllowDefaultSecret {
		logger.Warn("cipher.secret is not set, using the built-in fallback secret; stored passwords are NOT protected")
		return FallbackCipherSecret, nil
	}

	return "", ErrMissingCipherSecret
}

// TerminalPrompter returns a prompter reading from stdin, or nil when stdin is not a terminal
func TerminalPrompter() SecretPrompter {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	return func(prompt string) (string, error) {
		fmt.Fprint(os.Stderr, prompt)
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr) // перевод строки после скрытого ввода
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
}
