package redis

import (
	"context"
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedis connects the store that holds permission edit sessions and the
// token blacklist. An unreachable server is fatal at startup.
func NewRedis(log *logrus.Logger, config *env.Config) *redis.Client {
	rdb := redis.NewClient(newOptions(config))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	log.WithField("addr", config.Redis.Address).Info("Redis connection established successfully")
	return rdb
}

func newOptions(config *env.Config) *redis.Options {
	pool := config.Redis.Pool

	return &redis.Options{
		Addr:     config.Redis.Address,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,

		// Connection pool settings
		PoolSize:        pool.Size,
		MinIdleConns:    pool.MinIdle,
		MaxIdleConns:    pool.MaxIdle,
		ConnMaxLifetime: time.Duration(pool.Lifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(pool.IdleTimeout) * time.Second,

		// Connection timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}
