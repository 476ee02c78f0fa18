package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-service/internal/api/http/handlers"
	"github.com/spec-kit/customer-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Customers      *handlers.CustomersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/accounts/register", cfg.Accounts.Register)
	authGroup.Post("/accounts/login", cfg.Accounts.Login)

	customers := app.Group("/customers", cfg.AuthMiddleware.Handle)
	customers.Post("/", cfg.Customers.Create)
	customers.Get("/", cfg.Customers.List)
	customers.Post("/bulk", cfg.Customers.BulkCreate)
	customers.Get("/:id", cfg.Customers.Get)
	customers.Put("/:id", cfg.Customers.Update)
	customers.Delete("/:id", cfg.Customers.Delete)
}
