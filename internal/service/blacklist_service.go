package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/constant"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/repository"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type BlacklistService struct {
	log                 *logrus.Logger
	config              *env.Config
	JwtService          *JwtService
	BlacklistRepository repository.TokenBlacklistRepository
	tracer              trace.Tracer
}

func NewBlacklistService(log *logrus.Logger, config *env.Config, jwtService *JwtService, repo repository.TokenBlacklistRepository) *BlacklistService {
	return &BlacklistService{log, config, jwtService, repo, otel.Tracer("BlacklistService")}
}

func (b *BlacklistService) IsTokenBlacklisted(ctx context.Context, token string, tokenType constant.TokenType) error {
	spanCtx, span := b.tracer.Start(ctx, "BlacklistService.IsTokenBlacklisted")
	defer span.End()

	logout, err := b.BlacklistRepository.IsBlacklisted(spanCtx, b.generateTokenHash(token), tokenType)
	if err != nil {
		b.log.WithContext(spanCtx).WithError(err).Error("Failed to read token blacklist")
		return errcode.ErrRedisGet
	}

	if logout {
		return errcode.ErrUnauthorized
	}

	return nil
}

// Add blacklists token until it would have expired anyway.
func (b *BlacklistService) Add(ctx context.Context, token string, tokenType constant.TokenType) error {
	spanCtx, span := b.tracer.Start(ctx, "BlacklistService.Add")
	defer span.End()

	// Generate hash for security & efficiency
	tokenHash := b.generateTokenHash(token)

	ttl := b.config.GetBlacklistFallback()
	if claims, err := b.JwtService.ParseUnverified(token); err == nil && claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			// Token is expired, no need to blacklist
			return nil
		}
	}

	if err := b.BlacklistRepository.Add(spanCtx, tokenHash, tokenType, ttl); err != nil {
		b.log.WithContext(spanCtx).WithError(err).Error("Failed to write token blacklist")
		return errcode.ErrRedisSet
	}

	return nil
}

// Generate SHA256 hash
func (b *BlacklistService) generateTokenHash(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
