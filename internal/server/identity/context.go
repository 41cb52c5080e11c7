package identity

import (
	"context"

	"github.com/iudanet/passkeeper/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity кладет идентичность вызывающего в контекст
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext возвращает идентичность, положенную auth middleware
func FromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(models.Identity)
	if !ok || id.ID == "" {
		return models.Identity{}, false
	}
	return id, true
}
