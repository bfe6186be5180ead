package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ramatoys/storefront/internal/platform/db"
	"github.com/ramatoys/storefront/internal/platform/docdb"
	"github.com/ramatoys/storefront/internal/store"
)

// OpenStore connects the configured store driver. The returned close
// function releases driver resources; the shared redis client is left open.
func OpenStore(ctx context.Context, cfg *Config, redisClient *redis.Client, logger *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case store.DriverRedis:
		return store.NewRedisStore(redisClient), func() {}, nil
	case store.DriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		pgStore := store.NewPostgresStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgStore, pool.Close, nil
	case store.DriverMongo:
		client, err := docdb.New(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("mongo disconnect", slog.Any("error", err))
			}
		}
		return store.NewMongoStore(client.Database(cfg.MongoDatabase)), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
