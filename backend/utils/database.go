package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aebonlee/stepup-cloud/backend/config"
	"github.com/aebonlee/stepup-cloud/backend/revocation"
	"github.com/aebonlee/stepup-cloud/backend/store"
	"github.com/aebonlee/stepup-cloud/backend/store/gormstore"
	"github.com/aebonlee/stepup-cloud/backend/store/pgstore"
)

const connectTimeout = 15 * time.Second

// InitDB opens the store selected by cfg. Production with a Postgres URL uses pgx; if that
// connection fails the server falls back to the SQLite file so it can still come up.
func InitDB(cfg *config.Config, logger *log.Logger) (store.Store, error) {
	if cfg.UsePostgres() {
		logger.Println("Connecting to PostgreSQL...")
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		st, err := pgstore.Open(ctx, cfg.DatabaseURL, logger)
		if err == nil {
			logger.Println("PostgreSQL connected")
			return st, nil
		}
		logger.Printf("PostgreSQL unavailable, falling back to SQLite: %v", err)
	}

	logger.Printf("Opening SQLite database at %s", cfg.SQLitePath)
	return gormstore.Open(cfg.SQLitePath, logger)
}

// InitRevocations uses Redis when REDIS_ADDR is configured and an in-process list otherwise.
func InitRevocations(cfg *config.Config, logger *log.Logger) (revocation.List, error) {
	if cfg.RedisAddr == "" {
		return revocation.NewMemory(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Println("Redis connection successfully opened.")
	return revocation.NewRedis(client), nil
}
