package service

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// redisClient is the subset of *redis.Client the service needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type RedisService struct {
	client redisClient
	logger *logrus.Logger
	tracer trace.Tracer
}

func NewRedisService(client redisClient, logger *logrus.Logger) *RedisService {
	return &RedisService{client, logger, otel.Tracer("RedisService")}
}

// Get returns the raw value at key. A miss is reported as ok=false with a
// nil error; any other failure is returned.
func (r *RedisService) Get(ctx context.Context, key string) (string, bool, error) {
	spanCtx, span := r.tracer.Start(ctx, "RedisService.Get")
	defer span.End()

	logger := r.logger.WithContext(spanCtx).WithField("key", key)

	cached, err := r.client.Get(spanCtx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug("Redis key miss")
		return "", false, nil
	}

	if err != nil {
		logger.WithError(err).Error("Redis get failed")
		return "", false, err
	}

	logger.Debug("Redis key hit")
	return cached, true, nil
}

// GetJSON decodes the value at key into dst.
func (r *RedisService) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithField("key", key).Error("Failed to unmarshal redis value")
		return false, err
	}
	return true, nil
}

// Set marshals value to JSON and stores it in Redis with TTL.
func (r *RedisService) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) (string, error) {
	spanCtx, span := r.tracer.Start(ctx, "RedisService.Set")
	defer span.End()

	logger := r.logger.WithContext(spanCtx).WithField("key", key)

	json, err := json.Marshal(data)
	if err != nil {
		logger.WithError(err).Warn("Failed to marshal redis value")
		return "", err
	}
	if err := r.client.Set(spanCtx, key, json, ttl).Err(); err != nil {
		logger.WithError(err).Error("Failed to store data to redis")
		return "", err
	}

	return string(json), nil
}

// Del removes key. Deleting a missing key is not an error.
func (r *RedisService) Del(ctx context.Context, key string) error {
	spanCtx, span := r.tracer.Start(ctx, "RedisService.Del")
	defer span.End()

	if err := r.client.Del(spanCtx, key).Err(); err != nil {
		r.logger.WithContext(spanCtx).WithError(err).WithField("key", key).Error("Failed to delete redis key")
		return err
	}
	return nil
}
