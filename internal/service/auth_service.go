package service

import (
	"context"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/constant"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// AuthService handles the session side of the CRM token. Login and refresh
// stay with the CRM backend; this service only revokes tokens locally.
type AuthService struct {
	blacklistService *BlacklistService
	logger           *logrus.Logger
	tracer           trace.Tracer
}

func NewAuthService(blacklistService *BlacklistService, logger *logrus.Logger) *AuthService {
	return &AuthService{blacklistService, logger, otel.Tracer("AuthService")}
}

// Logout blacklists the access token so later requests carrying it are
// rejected before any backend call.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	spanCtx, span := s.tracer.Start(ctx, "AuthService.Logout")
	defer span.End()
	logger := s.logger.WithContext(spanCtx)

	if err := s.blacklistService.Add(spanCtx, accessToken, constant.TokenTypeAccess); err != nil {
		logger.WithError(err).Error("Failed to invalidate access token to redis")
		return err
	}

	return nil
}
