package main

import (
	"context"
	"fmt"
	"time"

	"prompt-refiner/internal/config"
	"prompt-refiner/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	maxRetries = 50
	retryDelay = 3 * time.Second
)

// stores holds the selected user store and the connections behind it.
type stores struct {
	users repository.UserStore
	pg    *pgxpool.Pool
	redis *redis.Client
}

func (s *stores) Close() {
	if s.pg != nil {
		s.pg.Close()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			zap.L().Warn("Failed to close Redis client", zap.Error(err))
		}
	}
}

// setupStores builds the UserStore selected by USER_STORE.
func setupStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.UserStore {
	case config.StorePostgres:
		pool, err := setupPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		zap.L().Info("Connected to PostgreSQL")
		if err := repository.RunMigrations(cfg.PostgresDSN(), logger.Named("Migrations")); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{users: repository.NewPgUserStore(pool, logger), pg: pool}, nil

	case config.StoreRedis:
		client, err := setupRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		zap.L().Info("Connected to Redis")
		return &stores{users: repository.NewRedisUserStore(client, logger), redis: client}, nil

	default:
		zap.L().Warn("Using in-memory user store, registered users are lost on restart")
		return &stores{users: repository.NewMemoryUserStore(logger)}, nil
	}
}

// setupPostgres initializes the PostgreSQL connection pool with retry logic.
func setupPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	zap.L().Debug("Setting up PostgreSQL connection...")
	poolConfig, err := pgxpool.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	var lastErr error
	zap.L().Info("Attempting to connect to PostgreSQL", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		connectCancel()
		if err != nil {
			lastErr = fmt.Errorf("unable to create postgres connection pool (attempt %d/%d): %w", attempt, maxRetries, err)
			zap.L().Warn("Postgres connection pool creation failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
			if !sleepOrDone(ctx, i) {
				break
			}
			continue
		}

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = pool.Ping(pingCtx)
		pingCancel()
		if err == nil {
			zap.L().Info("Successfully connected and pinged PostgreSQL", zap.Int("attempt", attempt))
			return pool, nil
		}

		pool.Close()
		lastErr = fmt.Errorf("unable to ping postgres database (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Postgres ping failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if !sleepOrDone(ctx, i) {
			break
		}
	}

	return nil, fmt.Errorf("failed to connect to postgres: %w", lastErr)
}

// setupRedis initializes the Redis client with retry logic.
func setupRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	zap.L().Debug("Setting up Redis connection...")
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	zap.L().Info("Redis connection options configured", zap.String("address", redisOpts.Addr), zap.Int("db", redisOpts.DB))

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		client := redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()
		if err == nil {
			zap.L().Info("Successfully connected and pinged Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Redis ping failed, retrying...", zap.Int("attempt", attempt), zap.Error(err))
		if !sleepOrDone(ctx, i) {
			break
		}
	}

	return nil, fmt.Errorf("failed to connect to redis: %w", lastErr)
}

// sleepOrDone waits retryDelay before the next attempt. It reports false when
// the attempts are exhausted or ctx is done.
func sleepOrDone(ctx context.Context, attempt int) bool {
	if attempt >= maxRetries-1 {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(retryDelay):
		return true
	}
}
