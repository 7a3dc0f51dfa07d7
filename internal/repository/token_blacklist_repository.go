package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/constant"

	"github.com/redis/go-redis/v9"
)

type TokenBlacklistRepository interface {
	Add(ctx context.Context, token string, tokenType constant.TokenType, duration time.Duration) error
	IsBlacklisted(ctx context.Context, token string, tokenType constant.TokenType) (bool, error)
}

// TokenBlacklist is an in-memory blacklist for single-instance setups and tests.
type TokenBlacklist struct {
	blacklist map[string]time.Time
	mutex     sync.RWMutex
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{blacklist: make(map[string]time.Time)}
}

func (tb *TokenBlacklist) Add(_ context.Context, token string, tokenType constant.TokenType, duration time.Duration) error {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	tb.blacklist[blacklistKey(token, tokenType)] = time.Now().Add(duration)
	return nil
}

func (tb *TokenBlacklist) IsBlacklisted(_ context.Context, token string, tokenType constant.TokenType) (bool, error) {
	tb.mutex.RLock()
	defer tb.mutex.RUnlock()
	until, exists := tb.blacklist[blacklistKey(token, tokenType)]
	return exists && time.Now().Before(until), nil
}

type RedisTokenBlacklist struct {
	client *redis.Client
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client}
}

func (r *RedisTokenBlacklist) Add(ctx context.Context, token string, tokenType constant.TokenType, duration time.Duration) error {
	return r.client.Set(ctx, blacklistKey(token, tokenType), "1", duration).Err()
}

func (r *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, token string, tokenType constant.TokenType) (bool, error) {
	result, err := r.client.Get(ctx, blacklistKey(token, tokenType)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result == "1", nil
}

func blacklistKey(token string, tokenType constant.TokenType) string {
	return fmt.Sprintf("%s:%s:%s", constant.BlacklistKeyPrefix, tokenType, token)
}
