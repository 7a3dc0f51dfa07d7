package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/constant"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestTokenBlacklist_InMemory(t *testing.T) {
	ctx := context.Background()

	type tc struct {
		name   string
		action func(tb *TokenBlacklist) (bool, error)
		assert func(t *testing.T, got bool, err error)
	}

	cases := []tc{
		{
			name: "AddAndCheckTrue",
			action: func(tb *TokenBlacklist) (bool, error) {
				require.NoError(t, tb.Add(ctx, "tok1", constant.TokenTypeAccess, 10*time.Second))
				return tb.IsBlacklisted(ctx, "tok1", constant.TokenTypeAccess)
			},
			assert: func(t *testing.T, got bool, err error) {
				require.NoError(t, err)
				require.True(t, got)
			},
		},
		{
			name: "CheckFalseWhenNotAdded",
			action: func(tb *TokenBlacklist) (bool, error) {
				return tb.IsBlacklisted(ctx, "tok2", constant.TokenTypeAccess)
			},
			assert: func(t *testing.T, got bool, err error) {
				require.NoError(t, err)
				require.False(t, got)
			},
		},
		{
			name: "ExpiredEntryIgnored",
			action: func(tb *TokenBlacklist) (bool, error) {
				require.NoError(t, tb.Add(ctx, "tok3", constant.TokenTypeAccess, -time.Second))
				return tb.IsBlacklisted(ctx, "tok3", constant.TokenTypeAccess)
			},
			assert: func(t *testing.T, got bool, err error) {
				require.NoError(t, err)
				require.False(t, got)
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tb := NewTokenBlacklist()
			got, err := c.action(tb)
			c.assert(t, got, err)
		})
	}
}

func TestRedisTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisTokenBlacklist(client)

	ok, err := repo.IsBlacklisted(ctx, "hash-1", constant.TokenTypeAccess)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Add(ctx, "hash-1", constant.TokenTypeAccess, time.Minute))
	require.True(t, mr.Exists("blacklist:access:hash-1"))
	require.Equal(t, time.Minute, mr.TTL("blacklist:access:hash-1"))

	ok, err = repo.IsBlacklisted(ctx, "hash-1", constant.TokenTypeAccess)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = repo.IsBlacklisted(ctx, "hash-1", constant.TokenTypeAccess)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisTokenBlacklist_ConnectionError(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()

	repo := NewRedisTokenBlacklist(client)
	_, err = repo.IsBlacklisted(context.Background(), "hash", constant.TokenTypeAccess)
	require.Error(t, err)
}
