package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tansu/stockroom/api-gateway/config"
	"github.com/tansu/stockroom/api-gateway/health"
	"github.com/tansu/stockroom/api-gateway/middleware"
	"github.com/tansu/stockroom/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool // Requires authentication
	RequireAdmin bool // Requires admin role
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	// Public routes (no auth required)
	{
		Prefix:       "/auth",
		ServiceName:  "user",
		Description:  "Authentication endpoints (login, register)",
		RequireAuth:  false,
		RequireAdmin: false,
	},

	// User service routes
	{
		Prefix:       "/users",
		ServiceName:  "user",
		Description:  "Profile endpoints for the authenticated user",
		RequireAuth:  true,
		RequireAdmin: false,
	},
	{
		Prefix:       "/admin/users",
		ServiceName:  "user",
		Description:  "User administration (admin only)",
		RequireAuth:  true,
		RequireAdmin: true,
	},

	// Inventory service routes
	{
		Prefix:       "/api/items",
		ServiceName:  "inventory",
		Description:  "Item catalog and stock management (mixed: some need admin)",
		RequireAuth:  true,
		RequireAdmin: false,
	},
	{
		Prefix:       "/api/requests",
		ServiceName:  "inventory",
		Description:  "Borrow request lifecycle (mixed: some need admin)",
		RequireAuth:  true,
		RequireAdmin: false,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager) {
	// Create reverse proxy
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Create health checker
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// Circuit breaker statistics
	app.Get("/gateway/circuits", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.GetAllStats())
	})

	// Load balancer statistics
	app.Get("/gateway/balancers", func(c *fiber.Ctx) error {
		stats := make(map[string]interface{})
		for name, lb := range reverseProxy.GetLoadBalancers() {
			stats[name] = lb.GetStats()
		}
		return c.JSON(stats)
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Stockroom API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	// Apply middleware based on route requirements
	var middlewares []fiber.Handler

	if route.RequireAdmin {
		// Admin routes need both auth and admin check
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}
	// Public routes have no middleware

	// Create a route group for this service
	group := app.Group(route.Prefix, middlewares...)

	// Handle all HTTP methods with wildcard path
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
