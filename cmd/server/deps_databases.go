package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/config"
	"github.com/wataru0019/enconapp/internal/handler"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// Databases holds the storage connections. Exactly one of SQLite and
// Postgres is open, selected by the configured driver.
type Databases struct {
	Driver   string
	SQLite   *database.SQLiteDB
	Postgres *database.PostgresDB
	Redis    *redis.Client
}

// initDatabases opens the configured database backend, plus Redis when
// rate limiting is enabled.
func initDatabases(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Databases, error) {
	dbs := &Databases{Driver: cfg.Database.Driver}

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.NewSQLite(cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		dbs.SQLite = db

	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		if err := db.InitSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize PostgreSQL schema: %w", err)
		}
		dbs.Postgres = db

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	if cfg.RateLimit.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			// The limiter fails open, so a missing Redis is a warning, not a
			// startup failure.
			logger.Warn("redis unreachable, rate limiting will fail open", zap.Error(err))
		}
		dbs.Redis = client
	}

	return dbs, nil
}

// Active returns the open backend for health checks.
func (d *Databases) Active() handler.Pinger {
	if d.SQLite != nil {
		return d.SQLite
	}
	return d.Postgres
}

// Close closes all open connections.
func (d *Databases) Close() {
	if d.SQLite != nil {
		_ = d.SQLite.Close()
	}
	if d.Postgres != nil {
		d.Postgres.Close()
	}
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
}
