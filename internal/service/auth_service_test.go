package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/constant"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/repository"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"

	"github.com/stretchr/testify/require"
)

func TestAuthService_Logout(t *testing.T) {
	cfg := testEnvConfig()
	log := testLogger()
	jwtSvc := NewJwtService(log, cfg)

	t.Run("BlacklistsToken", func(t *testing.T) {
		repo := repository.NewTokenBlacklist()
		blacklist := NewBlacklistService(log, cfg, jwtSvc, repo)
		svc := NewAuthService(blacklist, log)

		token := makeAccessToken(t, cfg.JWT.Secret, "admin-1", time.Now().Add(time.Hour))
		require.NoError(t, svc.Logout(context.Background(), token))
		require.ErrorIs(t, blacklist.IsTokenBlacklisted(context.Background(), token, constant.TokenTypeAccess), errcode.ErrUnauthorized)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		repo := &blFakeRepo{add: func(string, constant.TokenType, time.Duration) error { return errors.New("down") }}
		svc := NewAuthService(NewBlacklistService(log, cfg, jwtSvc, repo), log)

		err := svc.Logout(context.Background(), "opaque")
		require.ErrorIs(t, err, errcode.ErrRedisSet)
	})
}
