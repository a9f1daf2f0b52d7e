package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-activities-api/internal/config"
	"github.com/noah-isme/gema-activities-api/internal/handler"
	"github.com/noah-isme/gema-activities-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler             *handler.AuthHandler
	AccountHandler          *handler.AccountHandler
	ActivityHandler         *handler.ActivityHandler
	AttendanceHandler       *handler.AttendanceHandler
	AttendanceStreamHandler *handler.AttendanceStreamHandler
	DashboardHandler        *handler.DashboardHandler
	AdminUserHandler        *handler.AdminUserHandler
	Authenticate            fiber.Handler
	HealthProbe             handler.HealthProbe
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbe))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	authenticate := deps.Authenticate
	if authenticate == nil {
		authenticate = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AccountHandler != nil {
		deps.AccountHandler.Register(api.Group("/account", authenticate))
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activities", authenticate))
	}

	attendance := api.Group("/attendance", authenticate)
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(attendance)
	}
	if deps.AttendanceStreamHandler != nil {
		deps.AttendanceStreamHandler.Register(attendance)
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", authenticate))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(api.Group("/admin/users", authenticate))
	}
}
