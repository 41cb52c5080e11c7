package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/passkeeper/internal/server/handlers"
)

// RateLimiter представляет rate limiter на основе фиксированного окна:
// каждый ключ получает rate запросов на window
type RateLimiter struct {
	buckets    map[string]*bucket
	logger     *slog.Logger
	cleanupC   chan struct{}
	stopOnce   sync.Once
	rate       int
	window     time.Duration
	mu         sync.Mutex
	trustProxy bool // брать IP из X-Forwarded-For / X-Real-IP
}

// RateLimiterOption настраивает RateLimiter
type RateLimiterOption func(*RateLimiter)

// WithTrustedProxy включает чтение IP клиента из заголовков прокси.
// Включать только за reverse proxy, который перезаписывает эти заголовки.
func WithTrustedProxy(trust bool) RateLimiterOption {
	return func(rl *RateLimiter) { rl.trustProxy = trust }
}

// bucket представляет bucket для конкретного IP
type bucket struct {
	lastRefill time.Time
	tokens     int
}

// NewRateLimiter создает новый rate limiter
// rate - максимальное количество запросов в окно
// window - временное окно (например, 1 минута)
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		window:   window,
		logger:   logger,
		cleanupC: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}

	// Запускаем периодическую очистку старых buckets
	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет неактивные buckets для экономии памяти
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets(time.Now())
		case <-rl.cleanupC:
			return
		}
	}
}

// cleanupOldBuckets удаляет buckets, которые не использовались дольше двух окон
func (rl *RateLimiter) cleanupOldBuckets(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
	}
}

// Stop останавливает cleanup goroutine. Повторный вызов безопасен.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.cleanupC) })
}

// Allow проверяет, разрешен ли запрос для данного ключа (обычно IP адрес)
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, exists := rl.buckets[key]
	if !exists || now.Sub(b.lastRefill) >= rl.window {
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[key] = b
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// Middleware ограничивает частоту запросов по IP клиента
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := getClientIP(r, rl.trustProxy)

		if !rl.Allow(key) {
			rl.logger.Warn("Rate limit exceeded",
				"ip", key,
				"method", r.Method,
				"path", sanitizePath(r.URL.Path),
			)

			handlers.SendError(rl.logger, w, "Rate limit exceeded, please try again later", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getClientIP извлекает IP адрес клиента из запроса.
// Заголовки X-Forwarded-For и X-Real-IP учитываются только при trustProxy,
// иначе клиент мог бы менять ключ на каждом запросе.
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// Берем первый IP из X-Forwarded-For (реальный клиент)
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}

		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			return xri
		}
	}

	// RemoteAddr содержит порт, который меняется между соединениями
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
