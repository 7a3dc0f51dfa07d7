package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harsh28r/DeltaFrontend-sub002/internal/config/env"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// helper to build a minimal config
func corsTestConfig(allowOrigins string) *env.Config {
	cfg := &env.Config{}
	cfg.Web.Cors.AllowOrigins = allowOrigins
	return cfg
}

// Table-driven tests for CORS middleware covering preflight, actual, and disallowed origins
func TestCors_Table(t *testing.T) {
	const allowedOrigin = "https://dashboard.example"

	app := fiber.New()
	app.Use(Cors(corsTestConfig(allowedOrigin)))
	app.Put("/api/permission-sessions/s1/permissions", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	type tc struct {
		name          string
		method        string
		origin        string
		reqHeaders    map[string]string
		expectStatus  int
		expectHeaders map[string]string
	}

	cases := []tc{
		{
			name:   "PreflightAllowed",
			method: http.MethodOptions,
			origin: allowedOrigin,
			reqHeaders: map[string]string{
				"Access-Control-Request-Method":  "PUT",
				"Access-Control-Request-Headers": "Authorization",
			},
			expectStatus: fiber.StatusNoContent,
			expectHeaders: map[string]string{
				"Access-Control-Allow-Origin":      allowedOrigin,
				"Access-Control-Allow-Methods":     "GET,POST,PUT,DELETE,OPTIONS",
				"Access-Control-Allow-Headers":     "Origin,Content-Type,Accept,Authorization",
				"Access-Control-Allow-Credentials": "true",
			},
		},
		{
			name:         "ActualRequestAllowed",
			method:       http.MethodPut,
			origin:       allowedOrigin,
			expectStatus: fiber.StatusOK,
			expectHeaders: map[string]string{
				"Access-Control-Allow-Origin":      allowedOrigin,
				"Access-Control-Allow-Credentials": "true",
				"Access-Control-Expose-Headers":    "Content-Length",
			},
		},
		{
			name:         "DisallowedOrigin",
			method:       http.MethodPut,
			origin:       "https://evil.example",
			expectStatus: fiber.StatusOK,
			expectHeaders: map[string]string{
				"Access-Control-Allow-Origin": "",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(c.method, "/api/permission-sessions/s1/permissions", nil)
			req.Header.Set("Origin", c.origin)
			for k, v := range c.reqHeaders {
				req.Header.Set(k, v)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			require.Equal(t, c.expectStatus, resp.StatusCode)
			for k, v := range c.expectHeaders {
				require.Equal(t, v, resp.Header.Get(k), k)
			}
		})
	}
}
