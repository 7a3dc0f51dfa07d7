package middleware

import (
	"strings"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/constant"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/service"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const (
	bearerKeyword = "Bearer"
	bearerLen     = len(bearerKeyword)
	authKey       = "auth"
	tokenKey      = "token"
)

// AuthMiddleware accepts CRM-issued bearer tokens. The raw token is kept so
// controllers can forward it to the CRM backend unchanged.
func AuthMiddleware(jwtService *service.JwtService, blacklistService *service.BlacklistService, log *logrus.Logger) fiber.Handler {
	tracer := otel.Tracer("AuthMiddleware")
	return func(c *fiber.Ctx) error {
		spanCtx, span := tracer.Start(c.UserContext(), "AuthMiddleware")
		defer span.End()

		logger := log.WithContext(spanCtx)

		// Fast path for missing header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			logger.Warn("authorization header missing")
			return errcode.ErrAuthorizationHeader
		}

		// Check prefix first (be lenient: allow "Bearer" without trailing space)
		if !strings.HasPrefix(authHeader, bearerKeyword) {
			logger.Warn("invalid authorization header format")
			return errcode.ErrBearerHeader
		}

		// Extract token after the "Bearer" keyword and trim spaces
		accessToken := strings.TrimSpace(authHeader[bearerLen:])
		if accessToken == "" {
			logger.Warn("access token missing in header")
			return errcode.ErrAccessTokenMissing
		}

		// Check blacklist first
		if err := blacklistService.IsTokenBlacklisted(spanCtx, accessToken, constant.TokenTypeAccess); err != nil {
			logger.WithError(err).Warn("access token rejected by blacklist")
			return err
		}

		claims, err := jwtService.ValidateAccessToken(spanCtx, accessToken)
		if err != nil {
			logger.WithError(err).Warn("access token is invalid or expired")
			return err
		}

		c.Locals(authKey, claims)
		c.Locals(tokenKey, accessToken)
		return c.Next()
	}
}

// GetUser retrieves user claims from fiber context with type assertion
func GetUser(ctx *fiber.Ctx) *service.Claims {
	return ctx.Locals(authKey).(*service.Claims)
}

// GetToken returns the bearer token accepted by AuthMiddleware.
func GetToken(ctx *fiber.Ctx) string {
	token, _ := ctx.Locals(tokenKey).(string)
	return token
}
