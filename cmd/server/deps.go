package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/film-recommender/internal/cache"
	"github.com/actuallystonmai/film-recommender/internal/catalog"
	"github.com/actuallystonmai/film-recommender/internal/config"
	"github.com/actuallystonmai/film-recommender/internal/logging"
	"github.com/actuallystonmai/film-recommender/internal/repository"
	"github.com/actuallystonmai/film-recommender/internal/service"
)

func openPool(ctx context.Context, c *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(c.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(c.Database.PoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := waitForDB(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logging.Info().Msg("connected to PostgreSQL")
	return pool, nil
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logging.Info().Msgf("waiting for database... (%d/30)", i+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

// openCache opens the configured backend and loads the store from it.
func openCache(ctx context.Context, c *config.Config) (*cache.Store, error) {
	var backend cache.Backend
	switch c.Cache.Backend {
	case config.BackendBadger:
		b, err := cache.OpenBadger(c.Cache.Path, c.Cache.SyncWrites)
		if err != nil {
			return nil, err
		}
		backend = b
	case config.BackendRedis:
		opts, err := redis.ParseURL(c.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		b := cache.NewRedisBackend(redis.NewClient(opts))
		if err := b.Ping(ctx); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logging.Info().Msg("connected to Redis")
		backend = b
	default:
		backend = cache.NewMemoryBackend()
	}

	store := cache.Open(ctx, backend, logging.Component("cache"), cache.WithTTL(c.Cache.TTL))
	logging.Info().Str("backend", c.Cache.Backend).Int("entries", store.Len()).Msg("cache opened")
	return store, nil
}

// catalogSource returns the configured source and a cleanup func.
func catalogSource(ctx context.Context, c *config.Config) (service.CatalogSource, func(), error) {
	if c.Catalog.Source == config.SourcePostgres {
		pool, err := openPool(ctx, c)
		if err != nil {
			return nil, nil, err
		}
		return repository.New(pool), pool.Close, nil
	}
	return catalog.FileSource{Path: c.Catalog.Path}, func() {}, nil
}
