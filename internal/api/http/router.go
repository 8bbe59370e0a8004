package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voucher-service/internal/api/http/handlers"
	"github.com/spec-kit/voucher-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Orders            *handlers.OrdersHandler
	Reports           *handlers.ReportsHandler
	Workers           *handlers.WorkersHandler
	Companies         *handlers.CompaniesHandler
	Settings          *handlers.SettingsHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Mutating admin operations pass through
// the session gate; order submission, the ticket view and reports stay open.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	api := app.Group("/api")

	api.Post("/orders", cfg.Orders.Submit)
	api.Get("/orders/:id", cfg.Orders.Get)
	api.Get("/reports", cfg.Reports.Get)
	api.Get("/workers", cfg.Workers.List)
	api.Get("/companies", cfg.Companies.List)
	api.Get("/settings", cfg.Settings.Get)

	admin := api.Group("", cfg.SessionMiddleware.Handle)
	admin.Patch("/orders/:id", cfg.Orders.UpdatePrinted)
	admin.Delete("/orders/:id", cfg.Orders.Delete)
	admin.Post("/workers", cfg.Workers.Create)
	admin.Put("/workers", cfg.Workers.Update)
	admin.Delete("/workers", cfg.Workers.Delete)
	admin.Post("/companies", cfg.Companies.Create)
	admin.Put("/companies", cfg.Companies.Update)
	admin.Delete("/companies/:id", cfg.Companies.Delete)
	admin.Post("/settings", cfg.Settings.Update)
}
