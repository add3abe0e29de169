// Package app builds the store backend selected by STORE_BACKEND and owns its connection lifecycle.
package app

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"adoptapi/internal/config"
	"adoptapi/internal/database"
	"adoptapi/internal/database/migration"
	"adoptapi/internal/model"
	"adoptapi/internal/repository"
	"adoptapi/internal/repository/memory"
	mongostore "adoptapi/internal/repository/mongo"
	pgstore "adoptapi/internal/repository/postgres"
)

// Backend bundles the per-collection stores of one backend with its connection handle.
type Backend struct {
	Name      string
	Pets      repository.Store[model.Pet]
	Users     repository.Store[model.User]
	Adoptions repository.Store[model.Adoption]

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the underlying store is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases the underlying connection.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// NewBackend connects to the configured backend. The caller must Close it on shutdown.
func NewBackend(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		return newMongoBackend(ctx, cfg.Mongo, log)
	case config.BackendPostgres:
		return newPostgresBackend(ctx, cfg.Database, log)
	case config.BackendMemory:
		log.WarnContext(ctx, "store_backend_memory", "detail", "records are kept in process memory and lost on restart")
		return NewMemoryBackend(), nil
	default:
		return nil, errors.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// NewMemoryBackend returns empty in-process stores.
func NewMemoryBackend() *Backend {
	return &Backend{
		Name:      config.BackendMemory,
		Pets:      memory.New[model.Pet](),
		Users:     memory.New[model.User](),
		Adoptions: memory.New[model.Adoption](),
	}
}

func newMongoBackend(ctx context.Context, c config.MongoConfig, log *slog.Logger) (*Backend, error) {
	client, err := database.ConnectMongo(ctx, c)
	if err != nil {
		return nil, err
	}
	db := client.Database(c.Database)

	users := mongostore.New[model.User](db)
	if err := users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.InfoContext(ctx, "store_backend_ready", "backend", config.BackendMongo, "database", c.Database)

	return &Backend{
		Name:      config.BackendMongo,
		Pets:      mongostore.New[model.Pet](db),
		Users:     users,
		Adoptions: mongostore.New[model.Adoption](db),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}

func newPostgresBackend(ctx context.Context, c config.DatabaseConfig, log *slog.Logger) (*Backend, error) {
	db, err := database.NewPostgres(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := migration.EnsureMigrated(ctx, db, log, c.Host); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.InfoContext(ctx, "store_backend_ready", "backend", config.BackendPostgres, "db_host", c.Host)

	return &Backend{
		Name:      config.BackendPostgres,
		Pets:      pgstore.New[model.Pet](db),
		Users:     pgstore.New[model.User](db),
		Adoptions: pgstore.New[model.Adoption](db),
		ping:      db.PingContext,
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}
