package service

import (
	"context"
	"errors"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Claims are the fields the CRM backend puts in its access tokens.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Actor identifies the signed-in admin, preferring userId over sub.
func (c *Claims) Actor() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// JwtService validates tokens issued by the CRM backend. This service never
// issues tokens; the secret is shared with the backend.
type JwtService struct {
	log    *logrus.Logger
	config *env.Config
	tracer trace.Tracer
}

func NewJwtService(log *logrus.Logger, config *env.Config) *JwtService {
	return &JwtService{log, config, otel.Tracer("JwtService")}
}

func (j *JwtService) ValidateAccessToken(ctx context.Context, token string) (*Claims, error) {
	spanCtx, span := j.tracer.Start(ctx, "ValidateAccessToken")
	defer span.End()

	return j.validateToken(spanCtx, token, j.config.GetAccessSecret())
}

// ParseUnverified reads claims without checking the signature. It is only
// used to size blacklist entries.
func (j *JwtService) ParseUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (j *JwtService) validateToken(ctx context.Context, tokenString string, secretKey string) (*Claims, error) {
	logger := j.log.WithContext(ctx)
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			logger.Error("Token method not match")
			return nil, errcode.ErrUnexpectedSignMethod
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		logger.WithError(err).Warn("Failed to parse with claims")
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, errcode.ErrTokenIsExpired
		case errors.Is(err, errcode.ErrUnexpectedSignMethod):
			return nil, errcode.ErrUnexpectedSignMethod
		default:
			return nil, errcode.ErrInvalidToken
		}
	}

	if !token.Valid {
		logger.Error("Token invalid")
		return nil, errcode.ErrInvalidToken
	}

	return claims, nil
}
