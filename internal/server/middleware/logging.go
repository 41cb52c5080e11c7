package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/iudanet/passkeeper/internal/server/metrics"
)

// maxLoggedPathLen длина пути, после которой он обрезается в логах
const maxLoggedPathLen = 256

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the number of bytes written
func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// LoggingMiddleware создает middleware для логирования HTTP запросов и сбора метрик.
// Логирует метод, путь, статус, время выполнения, размер ответа.
// НЕ логирует тело запроса и заголовки (токены, пароли).
// Пути из skipPaths не логируются, но попадают в метрики.
func LoggingMiddleware(logger *slog.Logger, m *metrics.Metrics, skipPaths ...string) func(http.Handler) http.Handler {
	skipMap := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skipMap[path] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK, // default status
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			m.ObserveHTTP(r.Method, routeLabel(r), wrapped.statusCode, duration)

			if skipMap[r.URL.Path] {
				return
			}

			// Определяем уровень логирования на основе статуса
			logLevel := slog.LevelInfo
			if wrapped.statusCode >= 500 {
				logLevel = slog.LevelError
			} else if wrapped.statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			logger.Log(r.Context(), logLevel, "HTTP request",
				"method", r.Method,
				"path", sanitizePath(r.URL.Path),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"bytes_written", wrapped.written,
			)
		})
	}
}

// routeLabel возвращает шаблон маршрута ServeMux вместо фактического пути,
// чтобы id записей не раздували кардинальность метрик
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	// "GET /api/passwords/{id}" -> "/api/passwords/{id}"
	if _, route, ok := strings.Cut(r.Pattern, " "); ok {
		return route
	}
	return r.Pattern
}

// sanitizePath убирает управляющие символы и обрезает слишком длинные пути,
// чтобы запрос не мог подделать строки лога
func sanitizePath(path string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, path)

	if len(clean) > maxLoggedPathLen {
		return clean[:maxLoggedPathLen] + "..."
	}
	return clean
}
