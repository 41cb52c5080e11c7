package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/passkeeper/internal/models"
	"github.com/iudanet/passkeeper/internal/server/credentials"
	"github.com/iudanet/passkeeper/internal/server/identity"
	"github.com/iudanet/passkeeper/internal/validation"
	"github.com/iudanet/passkeeper/pkg/api"
)

// DefaultMaxBodyBytes лимит тела запроса по умолчанию (20 KiB)
const DefaultMaxBodyBytes int64 = 20 << 10

// PasswordHandler обрабатывает запросы к /api/passwords
type PasswordHandler struct {
	logger       *slog.Logger
	service      *credentials.Service
	maxBodyBytes int64
}

// NewPasswordHandler создает новый handler для записей.
// maxBodyBytes <= 0 означает DefaultMaxBodyBytes.
func NewPasswordHandler(logger *slog.Logger, service *credentials.Service, maxBodyBytes int64) *PasswordHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &PasswordHandler{
		logger:       logger,
		service:      service,
		maxBodyBytes: maxBodyBytes,
	}
}

// Register регистрирует маршруты в mux, оборачивая каждый в middlewares
// (первый в списке выполняется первым)
func (h *PasswordHandler) Register(mux *http.ServeMux, middlewares ...func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"GET /api/passwords":         h.List,
		"POST /api/passwords":        h.Create,
		"PUT /api/passwords/{id}":    h.Update,
		"DELETE /api/passwords/{id}": h.Delete,
	}

	for pattern, fn := range routes {
		mux.Handle(pattern, Chain(fn, middlewares...))
	}
}

// Chain оборачивает handler в middlewares так, что первый в списке выполняется первым
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// List обрабатывает GET /api/passwords
func (h *PasswordHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	items, err := h.service.List(r.Context(), caller)
	if err != nil {
		h.handleError(w, r, err, "Failed to fetch passwords")
		return
	}

	data := make([]api.CredentialRecord, 0, len(items))
	for _, item := range items {
		data = append(data, toAPI(item))
	}

	sendSuccess(h.logger, w, "Passwords fetched successfully", data, http.StatusOK)
}

// Create обрабатывает POST /api/passwords
func (h *PasswordHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	record, err := h.service.Create(r.Context(), caller, in)
	if err != nil {
		h.handleError(w, r, err, "Failed to save password")
		return
	}

	sendSuccess(h.logger, w, "Password saved successfully", toAPI(record), http.StatusCreated)
}

// Update обрабатывает PUT /api/passwords/{id}
func (h *PasswordHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	record, err := h.service.Update(r.Context(), caller, r.PathValue("id"), in)
	if err != nil {
		h.handleError(w, r, err, "Failed to update password")
		return
	}

	sendSuccess(h.logger, w, "Password updated successfully", toAPI(record), http.StatusOK)
}

// Delete обрабатывает DELETE /api/passwords/{id}
func (h *PasswordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, _ := identity.FromContext(r.Context())

	if err := h.service.Delete(r.Context(), caller, r.PathValue("id")); err != nil {
		h.handleError(w, r, err, "Failed to delete password")
		return
	}

	sendSuccess(h.logger, w, "Password deleted successfully", nil, http.StatusOK)
}

// decode читает тело запроса с ограничением размера
func (h *PasswordHandler) decode(w http.ResponseWriter, r *http.Request) (validation.CredentialInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req api.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode credential request", slog.Any("error", err))

		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			SendError(h.logger, w, "Request body too large", http.StatusBadRequest)
			return validation.CredentialInput{}, false
		}
		SendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return validation.CredentialInput{}, false
	}

	return validation.CredentialInput{
		Website:  req.Website,
		Username: req.Username,
		Secret:   req.Password,
	}, true
}

// handleError переводит ошибку сервиса в HTTP статус.
// Детали ошибок хранилища логируются, но не отдаются клиенту.
func (h *PasswordHandler) handleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var vErr *validation.Error

	switch {
	case errors.As(err, &vErr):
		if errors.Is(vErr, validation.ErrFieldTooLong) {
			SendError(h.logger, w, vErr.Field+" is too long", http.StatusBadRequest)
			return
		}
		SendError(h.logger, w, "All fields (website, username, password) are required", http.StatusBadRequest)
	case errors.Is(err, credentials.ErrUnauthorized):
		SendError(h.logger, w, "Authorization token required", http.StatusUnauthorized)
	case errors.Is(err, credentials.ErrNotFound):
		SendError(h.logger, w, "Password not found", http.StatusNotFound)
	default:
		h.logger.ErrorContext(r.Context(), fallback,
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		SendError(h.logger, w, fallback, http.StatusInternalServerError)
	}
}

func toAPI(record *models.CredentialRecord) api.CredentialRecord {
	return api.CredentialRecord{
		ID:        record.ID,
		UserID:    record.OwnerID,
		Website:   record.Website,
		Username:  record.Username,
		Password:  record.Secret,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
