// Package server собирает HTTP сервер записей: маршруты, middleware и
// корректное завершение работы.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/gophqueue/internal/server/handlers"
	"github.com/iudanet/gophqueue/internal/server/middleware"
	"github.com/iudanet/gophqueue/internal/server/storage"
	"github.com/iudanet/gophqueue/pkg/api"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Store хранилище, которое нужно серверу
type Store interface {
	storage.RecordStorage
	handlers.Pinger
}

// Options параметры сервера
type Options struct {
	Addr       string
	JWT        handlers.JWTConfig
	RateWindow time.Duration
	RateLimit  int
}

// Server HTTP сервер записей
type Server struct {
	httpServer *http.Server
	limiter    *middleware.RateLimiter
	logger     *slog.Logger
}

// New создает сервер. Маршруты записей требуют access token и ограничены
// по частоте запросов на пользователя.
func New(opts Options, store Store, logger *slog.Logger) *Server {
	limiter := middleware.NewRateLimiter(opts.RateLimit, opts.RateWindow, logger)
	auth := middleware.AuthMiddleware(logger, opts.JWT)

	mux := http.NewServeMux()

	health := handlers.NewHealthHandler(logger, store)
	mux.HandleFunc("GET "+api.HealthPath, health.Health)

	records := handlers.NewRecordsHandler(logger, store)
	records.Register(mux, func(h http.Handler) http.Handler {
		return middleware.Chain(h, auth, limiter.Middleware)
	})

	handler := middleware.Chain(mux,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingWithSkip(logger, []string{api.HealthPath}),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// Handler возвращает корневой handler со всеми middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run обслуживает запросы до отмены ctx, затем дожидается завершения
// активных запросов
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server started", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
