// Package subscriptiontracker собирает приложение: бэкенд хранения,
// коллекцию подписок, бизнес-логику и HTTP-сервер.
package subscriptiontracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/kv"
	"github.com/magabrotheeeer/subscription-tracker/internal/migrations"
	subsservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// App держит HTTP-сервер и ресурсы, которые нужно освободить при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	closer func() error
}

// New инициализирует приложение: выбирает бэкенд хранения по конфигу,
// загружает коллекцию (бэкенд -> снапшот -> встроенные записи) и
// регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	persister, closer, err := newPersister(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, persister, cfg.SnapshotPath, logger)
	if err != nil {
		return nil, err
	}

	subscriptionService := subsservice.NewSubscriptionService(store, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, subscriptionService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		closer: closer,
	}, nil
}

func newPersister(ctx context.Context, cfg *config.Config) (storage.Persister, func() error, error) {
	switch cfg.Driver {
	case "redis":
		client, err := kv.NewRedis(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	case "postgres":
		db, err := kv.NewPostgres(cfg.PostgresConnectionString)
		if err != nil {
			return nil, nil, err
		}
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case "file":
		return kv.NewFile(cfg.FilePath), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// или фатальной ошибки сервера.
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
		if a.closer != nil {
			if closeErr := a.closer(); closeErr != nil {
				a.logger.Error("failed to close storage backend", slog.Any("err", closeErr))
			}
		}
		return err
	}
}
