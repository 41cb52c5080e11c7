package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/passkeeper/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendSuccess отправляет успешный ответ в конверте api.Response
func sendSuccess(logger *slog.Logger, w http.ResponseWriter, message string, data any, statusCode int) {
	sendJSON(logger, w, api.Response{
		Success: true,
		Message: message,
		Data:    data,
	}, statusCode)
}

// SendError отправляет JSON ответ с ошибкой.
// Экспортирован для middleware, чтобы все ответы имели одинаковый формат.
func SendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.Response{
		Success: false,
		Message: message,
		Error:   http.StatusText(statusCode),
	}, statusCode)
}
