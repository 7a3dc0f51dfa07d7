package web

import (
	"errors"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/validation"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/dto"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/middleware"
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/utils/errcode"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// NewFiber initializes the API app: goccy JSON codecs, panic recovery,
// tracing and CORS for the dashboard origin.
func NewFiber(log *logrus.Logger, config *env.Config) *fiber.App {
	var app = fiber.New(fiber.Config{
		AppName:      config.App.Name,
		ErrorHandler: newErrorHandler(log),
		Prefork:      config.Web.Prefork,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Cors(config))

	return app
}

// newErrorHandler renders every failure as dto.ErrorResponse. Client
// errors are logged at warn, server and upstream errors at error.
func newErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		response := dto.ErrorResponse{Message: "Internal server error"}

		var (
			validationErr *validation.ValidationError
			fiberErr      *fiber.Error
		)
		switch {
		case errors.As(err, &validationErr):
			status = fiber.StatusBadRequest
			response.Message = "Validation failed"
			response.Errors = validationErr.Errors
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			response.Message = fiberErr.Message
		default:
			if code, ok := errcode.GetHTTPStatus(err); ok {
				status = code
				response.Message = err.Error()
			}
		}

		entry := log.WithContext(ctx.UserContext()).WithError(err).WithFields(logrus.Fields{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": status,
		})
		if status >= fiber.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Warn("Request rejected")
		}

		return ctx.Status(status).JSON(response)
	}
}
