package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/passkeeper/internal/server/handlers"
	"github.com/iudanet/passkeeper/internal/server/identity"
)

// AuthMiddleware создает middleware, которое резолвит bearer токен в идентичность
// и кладет ее в контекст запроса. Без валидного токена запрос не доходит до handler'а.
func AuthMiddleware(logger *slog.Logger, resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := identity.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				logger.Warn("Missing or malformed Authorization header",
					"method", r.Method,
					"path", sanitizePath(r.URL.Path),
				)
				handlers.SendError(logger, w, "Authorization token required", http.StatusUnauthorized)
				return
			}

			caller, err := resolver.Resolve(token)
			if err != nil {
				// Сам токен в лог не пишем
				logger.Warn("Invalid access token", "error", err)

				message := "Invalid token"
				if errors.Is(err, identity.ErrMissingToken) {
					message = "Authorization token required"
				}
				handlers.SendError(logger, w, message, http.StatusUnauthorized)
				return
			}

			logger.Debug("User authenticated", "user_id", caller.ID)

			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), caller)))
		})
	}
}
