package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/cedarmart/commerce/api-gateway/config"
	"github.com/cedarmart/commerce/api-gateway/health"
	"github.com/cedarmart/commerce/api-gateway/middleware"
	"github.com/cedarmart/commerce/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix            string
	ServiceName       string
	Description       string
	RequireAuth       bool
	RequireSuperAdmin bool
	RateLimitCheckout bool
}

// Routes holds all route definitions. Role checks finer than super admin
// are enforced by the backend itself.
var Routes = []RouteDefinition{
	{
		Prefix:      "/auth",
		ServiceName: "commerce",
		Description: "Authentication endpoints (login, register)",
	},
	{
		Prefix:      "/products",
		ServiceName: "commerce",
		Description: "Product catalog (reads public, writes need product manager)",
	},
	{
		Prefix:      "/categories",
		ServiceName: "commerce",
		Description: "Category catalog",
	},
	{
		Prefix:      "/subcategories",
		ServiceName: "commerce",
		Description: "Subcategory catalog",
	},
	{
		Prefix:      "/reviews",
		ServiceName: "commerce",
		Description: "Product reviews (reads public, writes need auth)",
	},
	{
		Prefix:      "/users",
		ServiceName: "commerce",
		Description: "Profile and wishlist",
		RequireAuth: true,
	},
	{
		Prefix:      "/cart",
		ServiceName: "commerce",
		Description: "Shopping cart",
		RequireAuth: true,
	},
	{
		Prefix:            "/orders",
		ServiceName:       "commerce",
		Description:       "Orders and returns",
		RequireAuth:       true,
		RateLimitCheckout: true,
	},
	{
		Prefix:      "/promotions",
		ServiceName: "commerce",
		Description: "Promotions",
		RequireAuth: true,
	},
	{
		Prefix:      "/coupons",
		ServiceName: "commerce",
		Description: "Coupons",
		RequireAuth: true,
	},
	{
		Prefix:      "/inventory",
		ServiceName: "commerce",
		Description: "Warehouse inventory (inventory manager only, enforced by backend)",
		RequireAuth: true,
	},
	{
		Prefix:            "/admin",
		ServiceName:       "commerce",
		Description:       "User administration and audit trail",
		RequireAuth:       true,
		RequireSuperAdmin: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, redisClient *redis.Client) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks backend replicas)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllInstances(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed replica health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		return c.JSON(healthChecker.CheckAllInstances(ctx))
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CedarMart API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy, redisClient)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy, redisClient *redis.Client) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler

	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}
	if route.RequireSuperAdmin {
		middlewares = append(middlewares, middleware.SuperAdminMiddleware())
	}
	if route.RateLimitCheckout && redisClient != nil {
		middlewares = append(middlewares, middleware.CheckoutRateLimiter(redisClient))
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
