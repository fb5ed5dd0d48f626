// Package factory wires the application together from configuration.
package factory

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pocketarcade/pocketarcade/internal/config"
	"github.com/pocketarcade/pocketarcade/internal/dependencies/clock"
	"github.com/pocketarcade/pocketarcade/internal/dependencies/random"
	"github.com/pocketarcade/pocketarcade/internal/engine"
	"github.com/pocketarcade/pocketarcade/internal/games"
	"github.com/pocketarcade/pocketarcade/internal/services/identity"
	"github.com/pocketarcade/pocketarcade/internal/services/leaderboard"
	"github.com/pocketarcade/pocketarcade/internal/services/notify"
	"github.com/pocketarcade/pocketarcade/internal/storage"
	"github.com/pocketarcade/pocketarcade/internal/storage/memory"
	redisstorage "github.com/pocketarcade/pocketarcade/internal/storage/redis"
	"github.com/pocketarcade/pocketarcade/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	Storage storage.Store

	Clock  clock.Clock
	Random random.Random

	Engine      *engine.Engine
	Leaderboard *leaderboard.Service
	Notifier    notify.Notifier
	Resolver    identity.Resolver
}

// New creates an application with the storage backend and services the
// configuration asks for
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	var store storage.Store
	switch cfg.Storage {
	case config.StorageMemory:
		store = memory.New(clk)
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisStore, err := redisstorage.New(redisCfg, clk)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		store = redisStore
	case config.StorageSQLite:
		sqliteStore, err := sqlite.New(cfg.SQLiteStoragePath, clk)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite storage: %w", err)
		}
		store = sqliteStore
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	deps := games.Deps{
		Store:         store,
		Notifier:      notify.NewLogNotifier(logger),
		Resolver:      identity.NewStoreResolver(store),
		Clock:         clk,
		Random:        random.New(),
		Logger:        logger,
		AllowSelfPlay: cfg.Game.AllowSelfPlay,
		IdleThreshold: cfg.Game.TurnPingAfter,
	}

	return newWithDependencies(deps, cfg.Leaderboard.PageSize), nil
}

// newWithDependencies wires services onto already-built dependencies
func newWithDependencies(deps games.Deps, pageSize int) *App {
	board := leaderboard.New(deps.Store, deps.Resolver, pageSize)

	return &App{
		Storage:     deps.Store,
		Clock:       deps.Clock,
		Random:      deps.Random,
		Engine:      engine.New(deps, board),
		Leaderboard: board,
		Notifier:    deps.Notifier,
		Resolver:    deps.Resolver,
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
