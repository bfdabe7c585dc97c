// Package gestorfacturas собирает HTTP-приложение: хранилище, миграции,
// кеш, сервисы и маршруты. Все зависимости создаются один раз на старте
// процесса и передаются явно, без глобального состояния.
package gestorfacturas

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/Franklp24/gestor-facturas/internal/cache"
	"github.com/Franklp24/gestor-facturas/internal/config"
	"github.com/Franklp24/gestor-facturas/internal/migrations"
	invoiceservice "github.com/Franklp24/gestor-facturas/internal/services/invoice"
	"github.com/Franklp24/gestor-facturas/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StoragePath)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	invoiceService := invoiceservice.NewInvoiceService(db, cacheRedis, logger, cfg.AlertWindowDays)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, invoiceService)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.cache.Close()
		_ = a.db.Close()
		return err
	}
}
