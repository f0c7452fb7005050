// Точка входа Ref Module — HTTP-сервис справочника.
// Загружает конфигурацию, подключается к PostgreSQL (или поднимает
// in-memory хранилище), применяет миграции, создаёт сервисный слой
// и API handlers, запускает мониторинг зависимостей,
// HTTP-сервер и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/gorefbook/internal/api/handlers"
	"github.com/bigkaa/gorefbook/internal/config"
	"github.com/bigkaa/gorefbook/internal/database"
	"github.com/bigkaa/gorefbook/internal/openapi"
	"github.com/bigkaa/gorefbook/internal/repository"
	"github.com/bigkaa/gorefbook/internal/server"
	"github.com/bigkaa/gorefbook/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Ref Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("storage_backend", cfg.StorageBackend),
	)

	// 3. OpenAPI-контракт: парсинг и валидация при старте
	ctx := context.Background()
	apiDoc, err := openapi.Load(ctx)
	if err != nil {
		logger.Error("Ошибка загрузки OpenAPI-контракта", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Хранилище справочника: PostgreSQL или память процесса
	var (
		refRepo        repository.ReferenceRepository
		storageChecker handlers.ReadinessChecker
		dephealthSvc   *service.DephealthService
	)

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		// 4.1 Применение миграций БД
		logger.Info("Применение миграций БД...")
		if err := database.Migrate(cfg, logger); err != nil {
			logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
			os.Exit(1)
		}

		// 4.2 Подключение к PostgreSQL (pgxpool)
		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		refRepo = repository.NewReferenceRepository(pool)
		storageChecker = database.NewReadinessChecker(pool)

		// 4.3 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
		// Проверка здоровья PostgreSQL идёт через существующий пул соединений,
		// что позволяет обнаружить его исчерпание.
		pgDB := stdlib.OpenDBFromPool(pool)
		defer pgDB.Close()

		dephealthSvc, err = service.NewDephealthService(
			"ref-module",
			cfg.DephealthGroup,
			pgDB,
			cfg.DatabaseURL(),
			cfg.DephealthCheckInterval,
			logger,
		)
		if err != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", err.Error()),
			)
			dephealthSvc = nil
		}

	case config.BackendMemory:
		logger.Warn("Используется in-memory хранилище: данные будут потеряны при рестарте")
		refRepo = repository.NewMemoryReferenceRepository()
		storageChecker = handlers.MemoryChecker{}
	}

	// 5. Репозиторий сообщений (всегда in-memory)
	msgRepo := repository.NewMemoryMessageRepository()

	// 6. Сервисный слой
	refSvc := service.NewReferenceService(refRepo, logger)
	msgSvc := service.NewMessageService(msgRepo, cfg.Environment, logger)

	// 7. API handlers
	healthHandler := handlers.NewHealthHandler(storageChecker)
	apiHandler := handlers.NewAPIHandler(refSvc, msgSvc, healthHandler, logger)

	// 8. Запуск мониторинга зависимостей
	if dephealthSvc != nil {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
			dephealthSvc = nil
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 9. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, apiDoc)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 10. Graceful shutdown фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Ref Module остановлен")
}
