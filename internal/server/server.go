// Пакет server — HTTP-сервер Ref Module с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на API Gateway.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bigkaa/gorefbook/internal/api/handlers"
	"github.com/bigkaa/gorefbook/internal/api/middleware"
	"github.com/bigkaa/gorefbook/internal/config"
	"github.com/bigkaa/gorefbook/internal/openapi"
)

// Server — HTTP-сервер Ref Module.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
// apiDoc — провалидированный OpenAPI-контракт (может быть nil,
// тогда /openapi.json не регистрируется).
func New(cfg *config.Config, logger *slog.Logger, handler *handlers.APIHandler, apiDoc *openapi3.T) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// Справочник
	router.Route("/api/v1/references", func(r chi.Router) {
		r.Get("/", handler.ListReferences)
		r.Post("/", handler.CreateReference)
		r.Get("/active", handler.ListActiveReferences)
		r.Get("/code/{code}", handler.GetReferenceByCode)
		r.Get("/{id}", handler.GetReference)
		r.Put("/{id}", handler.UpdateReference)
		r.Delete("/{id}", handler.DeleteReference)
		r.Head("/{id}", handler.ReferenceExists)
	})

	// Демонстрационные сообщения и информация о сервисе
	router.Get("/api/v1/hello", handler.Hello)
	router.Get("/api/v1/messages", handler.ListMessages)
	router.Post("/api/v1/messages", handler.CreateMessage)
	router.Get("/api/v1/info", handler.GetInfo)

	// Health и метрики — проверяются Kubernetes напрямую, без API Gateway
	router.Get("/health/live", handler.HealthLive)
	router.Get("/health/ready", handler.HealthReady)
	router.Get("/metrics", handler.GetMetrics)

	// OpenAPI-контракт
	if apiDoc != nil {
		router.Get("/openapi.json", openapi.Handler(apiDoc))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
