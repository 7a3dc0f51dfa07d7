package middleware

import (
	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// Cors lets the browser dashboard call the API with its bearer token.
func Cors(config *env.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     config.Web.Cors.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
		MaxAge:           600,
	})
}
