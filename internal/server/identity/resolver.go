// Package identity resolves a bearer token into the caller identity.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/passkeeper/internal/models"
)

var (
	// ErrMissingToken is returned when the request carries no bearer token
	ErrMissingToken = errors.New("authorization token required")

	// ErrInvalidToken is returned when the token cannot be parsed, fails verification or has no subject
	ErrInvalidToken = errors.New("invalid token")
)

// DefaultIssuer используется, если issuer не задан в конфигурации
const DefaultIssuer = "passkeeper"

// Claims представляет JWT claims, из которых строится Identity.
// EmailAddresses поддерживает формат токенов внешнего IdP,
// где email лежит в списке адресов, а не в поле email.
type Claims struct {
	Email          string         `json:"email,omitempty"`
	EmailAddresses []emailAddress `json:"email_addresses,omitempty"`
	jwt.RegisteredClaims
}

type emailAddress struct {
	EmailAddress string `json:"email_address"`
}

// Config содержит конфигурацию для проверки токенов
type Config struct {
	Secret []byte
	Issuer string
	// SkipVerify отключает проверку подписи: токен только декодируется.
	// Только для разработки.
	SkipVerify bool
}

// Resolver turns bearer tokens into identities
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver. A secret is required unless SkipVerify is set.
func NewResolver(cfg Config) (*Resolver, error) {
	if !cfg.SkipVerify && len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret is required when signature verification is enabled")
	}
	return &Resolver{cfg: cfg}, nil
}

// SkipVerify reports whether signatures are ignored
func (r *Resolver) SkipVerify() bool {
	return r.cfg.SkipVerify
}

// Resolve validates the token and returns the caller identity
func (r *Resolver) Resolve(tokenString string) (models.Identity, error) {
	if tokenString == "" {
		return models.Identity{}, ErrMissingToken
	}

	claims := &Claims{}

	if r.cfg.SkipVerify {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	} else {
		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
		if r.cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(r.cfg.Issuer))
		}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return r.cfg.Secret, nil
		}, opts...)
		if err != nil {
			return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		if !token.Valid {
			return models.Identity{}, ErrInvalidToken
		}
	}

	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return models.Identity{ID: claims.Subject, Email: claims.email()}, nil
}

func (c *Claims) email() string {
	if c.Email != "" {
		return c.Email
	}
	if len(c.EmailAddresses) > 0 {
		return c.EmailAddresses[0].EmailAddress
	}
	return ""
}

// Issue подписывает HS256 токен для subject. Используется командой token
// для локальной разработки и в тестах.
func (r *Resolver) Issue(subject, email string, ttl time.Duration) (string, error) {
	if len(r.cfg.Secret) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	if subject == "" {
		return "", errors.New("subject cannot be empty")
	}

	issuer := r.cfg.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(r.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// BearerToken извлекает токен из заголовка Authorization формата "Bearer <token>"
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("%w: expected bearer scheme", ErrInvalidToken)
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
