// tasksd serves the tasks resource over HTTP. Storage is selected at
// startup: in-memory for development, SQLite for single-node deployments,
// PostgreSQL (optionally fronted by a Redis cache) for everything else.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/crudkit/modules/tasks"
	"github.com/dmitrymomot/crudkit/pkg/config"
	"github.com/dmitrymomot/crudkit/pkg/httpserver"
	"github.com/dmitrymomot/crudkit/pkg/logger"
	"github.com/dmitrymomot/crudkit/pkg/pg"
	"github.com/dmitrymomot/crudkit/pkg/redis"
)

type storageConfig struct {
	// Driver selects the task store: memory, sqlite or postgres.
	Driver     string `env:"STORAGE_DRIVER" envDefault:"memory"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"tasks.db"`
}

type cacheConfig struct {
	Enabled bool          `env:"CACHE_ENABLED" envDefault:"false"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

type listConfig struct {
	PageSize    int `env:"LIST_PAGE_SIZE" envDefault:"20"`
	MaxPageSize int `env:"LIST_MAX_PAGE_SIZE" envDefault:"100"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg, logger.WithAttrs(logger.Component("tasksd")))

	store, cleanup, err := openStore(ctx, log)
	if err != nil {
		return err
	}
	defer cleanup()

	var listCfg listConfig
	config.MustLoad(&listCfg)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", httpserver.Healthcheck())
	r.Mount("/tasks", tasks.Router(tasks.RouterOptions{
		Store:       store,
		Logger:      log,
		PageSize:    listCfg.PageSize,
		MaxPageSize: listCfg.MaxPageSize,
	}))

	var srvCfg httpserver.Config
	config.MustLoad(&srvCfg)
	srv := httpserver.New(
		httpserver.WithConfig(srvCfg),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, r)
}

// openStore builds the configured store and returns a cleanup to run at
// shutdown.
func openStore(ctx context.Context, log *slog.Logger) (tasks.Store, func(), error) {
	var cfg storageConfig
	config.MustLoad(&cfg)

	noop := func() {}

	switch cfg.Driver {
	case "memory":
		log.InfoContext(ctx, "using in-memory task store")
		return tasks.NewMemoryStore(), noop, nil

	case "sqlite":
		store, err := tasks.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		log.InfoContext(ctx, "using sqlite task store", slog.String("path", cfg.SQLitePath))
		return store, func() { _ = store.Close() }, nil

	case "postgres":
		var pgCfg pg.Config
		config.MustLoad(&pgCfg)
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, noop, err
		}
		if err := pg.Migrate(ctx, pool, tasks.Migrations, tasks.MigrationsDir, log); err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.InfoContext(ctx, "using postgres task store")

		store := tasks.Store(tasks.NewPostgresStore(pool))
		cleanup := func() { pool.Close() }

		var cacheCfg cacheConfig
		config.MustLoad(&cacheCfg)
		if cacheCfg.Enabled {
			var redisCfg redis.Config
			config.MustLoad(&redisCfg)
			client, err := redis.Connect(ctx, redisCfg)
			if err != nil {
				cleanup()
				return nil, noop, err
			}
			log.InfoContext(ctx, "task cache enabled", slog.Duration("ttl", cacheCfg.TTL))
			store = tasks.NewCachedStore(store, client, cacheCfg.TTL)
			cleanup = func() {
				_ = client.Close()
				pool.Close()
			}
		}
		return store, cleanup, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
