package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sira-labs/sira-api/internal/config"
	"github.com/sira-labs/sira-api/internal/handler"
	"github.com/sira-labs/sira-api/internal/middleware"
	"github.com/sira-labs/sira-api/internal/models"
	"github.com/sira-labs/sira-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler      *handler.AuthHandler
	StudentHandler   *handler.StudentHandler
	AnalyticsHandler *handler.AnalyticsHandler
	JWTMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Read routes on
// students and analytics are public; every mutation sits behind the JWT
// middleware plus an admin role check, so failures surface in order:
// authentication, authorization, validation, not-found.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(app.Group("/auth"), jwtMiddleware)
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(app.Group("/students"), jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
	}

	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.Register(app.Group("/analytics"))
	}
}
