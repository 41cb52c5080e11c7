// Package server assembles the HTTP API and runs it until the context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/passkeeper/internal/server/credentials"
	"github.com/iudanet/passkeeper/internal/server/handlers"
	"github.com/iudanet/passkeeper/internal/server/identity"
	"github.com/iudanet/passkeeper/internal/server/metrics"
	"github.com/iudanet/passkeeper/internal/server/middleware"
)

// Config параметры HTTP сервера
type Config struct {
	Addr            string
	Version         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateWindow      time.Duration
	MaxBodyBytes    int64
	RateLimit       int
	// TrustProxy: ключ rate limit берется из X-Forwarded-For / X-Real-IP
	TrustProxy      bool
}

// Deps зависимости, собранные в cmd/server
type Deps struct {
	Service  *credentials.Service
	Store    handlers.Pinger
	Resolver *identity.Resolver
	// Metrics и Gatherer опциональны; без Gatherer /metrics не регистрируется
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// Server HTTP сервер менеджера паролей
type Server struct {
	logger  *slog.Logger
	cfg     Config
	srv     *http.Server
	limiter *middleware.RateLimiter
}

// New собирает маршруты и middleware. Сервер, который не будет запущен через Serve,
// нужно закрыть через Close.
func New(logger *slog.Logger, cfg Config, deps Deps) *Server {
	s := &Server{
		logger: logger,
		cfg:    cfg,
	}

	mux := http.NewServeMux()

	// Публичные маршруты
	mux.HandleFunc("GET /api/health", handlers.NewHealthHandler(logger, deps.Store, cfg.Version).Health)
	if deps.Gatherer != nil {
		mux.Handle("GET /metrics", metrics.Handler(deps.Gatherer))
	}

	// Маршруты, требующие идентичности
	protected := []func(http.Handler) http.Handler{}
	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, logger, middleware.WithTrustedProxy(cfg.TrustProxy))
		protected = append(protected, s.limiter.Middleware)
	}
	protected = append(protected, middleware.AuthMiddleware(logger, deps.Resolver))

	handlers.NewPasswordHandler(logger, deps.Service, cfg.MaxBodyBytes).Register(mux, protected...)
	mux.Handle("GET /api/protected", handlers.Chain(handlers.Protected(logger), protected...))

	handler := handlers.Chain(mux,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger, deps.Metrics, "/api/health", "/metrics"),
	)

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// Handler возвращает корневой handler (используется в тестах)
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run слушает cfg.Addr до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.Close()
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает соединения из ln до отмены ctx
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.Close()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown error: %w", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}

// Close освобождает фоновые ресурсы сервера (очистку rate limiter).
// Serve вызывает его сам; при использовании только Handler вызывать явно.
// Повторный вызов безопасен.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
