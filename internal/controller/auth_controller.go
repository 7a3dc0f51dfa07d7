package controller

import (
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/dto"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/middleware"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type AuthController struct {
	AuthService *service.AuthService
	Logger      *logrus.Logger
	Tracer      trace.Tracer
}

func NewAuthController(authService *service.AuthService, logger *logrus.Logger) *AuthController {
	return &AuthController{authService, logger, otel.Tracer("AuthController")}
}

// Logout revokes the bearer token the request was authenticated with.
func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	userContext, span := c.Tracer.Start(ctx.UserContext(), "Logout")
	defer span.End()

	if err := c.AuthService.Logout(userContext, middleware.GetToken(ctx)); err != nil {
		c.Logger.WithContext(userContext).WithError(err).Error("Failed to logout")
		return err
	}

	return ctx.JSON(dto.WebResponse[string]{Data: "Logout successfully"})
}
