package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/passkeeper/internal/server/identity"
	"github.com/iudanet/passkeeper/pkg/api"
)

// pingTimeout ограничивает проверку хранилища в health check
const pingTimeout = 2 * time.Second

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	store   Pinger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, store Pinger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		store:   store,
		version: version,
	}
}

// Health обрабатывает GET /api/health
// Health check endpoint для мониторинга
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "storage is unavailable", slog.Any("error", err))
		sendJSON(h.logger, w, api.HealthResponse{
			Status:  "unavailable",
			Message: "Storage is unavailable",
			Version: h.version,
		}, http.StatusServiceUnavailable)
		return
	}

	sendJSON(h.logger, w, api.HealthResponse{
		Status:  "ok",
		Message: "Server is running",
		Version: h.version,
	}, http.StatusOK)
}

// Protected обрабатывает GET /api/protected
// Возвращает идентичность, полученную из токена
func Protected(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := identity.FromContext(r.Context())
		if !ok {
			SendError(logger, w, "Authorization token required", http.StatusUnauthorized)
			return
		}

		var resp api.IdentityResponse
		resp.Message = "This is a protected route!"
		resp.User.ID = caller.ID
		resp.User.Email = caller.Email

		sendJSON(logger, w, resp, http.StatusOK)
	}
}
