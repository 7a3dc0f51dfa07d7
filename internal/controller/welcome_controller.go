package controller

import (
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type WelcomeController struct {
	config *env.Config
	tracer trace.Tracer
}

// NewWelcomeController creates a new instance of WelcomeController
func NewWelcomeController(config *env.Config) *WelcomeController {
	return &WelcomeController{config, otel.Tracer("WelcomeController")}
}

func (r *WelcomeController) Hello(ctx *fiber.Ctx) error {
	_, span := r.tracer.Start(ctx.UserContext(), "Hello")
	defer span.End()

	return ctx.JSON(dto.WebResponse[interface{}]{
		Data: map[string]string{
			"Message": "Welcome to " + r.config.App.Name + "!",
			"Events":  r.config.Events.Path,
		},
	})
}
