package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/custodia-labs/deep-core/internal/adapters/driven/file"
	"github.com/custodia-labs/deep-core/internal/adapters/driven/opener"
	"github.com/custodia-labs/deep-core/internal/adapters/driven/postgres"
	"github.com/custodia-labs/deep-core/internal/adapters/driven/providers/composite"
	"github.com/custodia-labs/deep-core/internal/adapters/driven/providers/filesystem"
	"github.com/custodia-labs/deep-core/internal/adapters/driven/providers/stub"
	redisadapter "github.com/custodia-labs/deep-core/internal/adapters/driven/redis"
	"github.com/custodia-labs/deep-core/internal/classifiers"
	"github.com/custodia-labs/deep-core/internal/config"
	"github.com/custodia-labs/deep-core/internal/core/ports/driven"
	"github.com/custodia-labs/deep-core/internal/core/services"
	"github.com/custodia-labs/deep-core/internal/runtime"
)

// pingFunc adapts a health check function to http.Pinger
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// app holds the wired core shared by every command
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	store     driven.KeyValueStore
	pinger    pingFunc // nil for the file backend
	indexing  *services.IndexingService
	providers *runtime.Providers

	closers []func() error
}

// newApp connects storage, loads indexed paths and registers providers
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.indexing = services.NewIndexingService(ctx, services.IndexingServiceConfig{
		Store:  a.store,
		Logger: logger,
	})

	if err := a.registerProviders(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.Storage.Backend {
	case config.BackendRedis:
		a.logger.Info("connecting to redis")
		client, err := redisadapter.Connect(ctx, a.cfg.Storage.RedisURL)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Close)
		a.store = redisadapter.NewKeyValueStore(client)
		a.pinger = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		a.logger.Info("using redis storage")

	case config.BackendPostgres:
		a.logger.Info("connecting to postgres")
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(a.cfg.Storage.DatabaseURL))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := db.InitSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		a.store = postgres.NewKeyValueStore(db)
		a.pinger = db.Ping
		a.logger.Info("using postgres storage")

	default:
		store := file.NewKeyValueStore(a.cfg.Storage.FilePath, a.logger)
		a.store = store
		a.logger.Info("using file storage", "path", store.Path())
	}
	return nil
}

func (a *app) registerProviders() error {
	stubProvider := stub.New(stub.Config{
		Latency: a.cfg.Search.StubLatency,
		Logger:  a.logger,
	})
	files := filesystem.New(filesystem.Config{
		Paths:       a.indexing,
		Classifiers: classifiers.DefaultRegistry(),
		MaxResults:  a.cfg.Search.MaxResults,
		MaxDepth:    a.cfg.Search.MaxDepth,
		Logger:      a.logger,
	})
	all := composite.New(composite.Config{
		Providers:  []driven.SearchProvider{files, stubProvider},
		MaxResults: a.cfg.Search.MaxResults,
		Logger:     a.logger,
	})

	a.providers = runtime.NewProviders()
	a.providers.Register(config.ProviderStub, stubProvider)
	a.providers.Register(config.ProviderFilesystem, files)
	a.providers.Register(config.ProviderAll, all)

	if err := a.providers.SetActive(a.cfg.Search.Provider); err != nil {
		return err
	}
	a.logger.Info("search provider selected", "provider", a.cfg.Search.Provider, "name", a.providers.Name())
	return nil
}

// newController builds a search controller over the provider registry
func (a *app) newController(withOpener bool) *services.SearchController {
	cfg := services.SearchControllerConfig{
		Provider:      a.providers,
		Logger:        a.logger,
		Debounce:      a.cfg.Search.Debounce,
		DetailEnabled: a.cfg.Search.DetailEnabled,
	}
	if withOpener {
		cfg.Opener = opener.New(opener.Config{Logger: a.logger})
	}
	return services.NewSearchController(cfg)
}

// Close releases storage connections
func (a *app) Close() {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("failed to close storage", "error", err)
	}
}
