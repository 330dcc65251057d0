package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/http/handlers"
	"github.com/spec-kit/inspection-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Dashboard         *handlers.DashboardHandler
	Inspections       *handlers.InspectionsHandler
	API               *handlers.APIHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusFound)
	})

	app.Get("/login", cfg.SessionMiddleware.RedirectIfAuthenticated, cfg.Auth.LoginPage)
	app.Post("/login", cfg.Auth.Login)
	app.Post("/logout", cfg.Auth.Logout)

	protected := app.Group("", cfg.SessionMiddleware.RequireUser)
	protected.Get("/dashboard", cfg.Dashboard.Dashboard)
	protected.Get("/inspection/new", cfg.Inspections.NewForm)
	protected.Post("/inspection/new", cfg.Inspections.Create)
	protected.Get("/inspection/:id", cfg.Inspections.Detail)

	api := app.Group("/api/v1", cfg.SessionMiddleware.RequireUser)
	api.Get("/inspections", cfg.API.List)
	api.Post("/inspections", cfg.API.Create)
	api.Get("/inspections/:id", cfg.API.Get)
}
