package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RegisterRoutes configures all API routes, middleware, and error handlers
func RegisterRoutes(e *echo.Echo, h *Handlers, cfg ServerConfig) {
	// Set custom error handler for consistent JSON responses
	e.HTTPErrorHandler = NotFoundJSON()

	// Apply global middleware
	e.Use(SetJSONContentType) // Ensure all responses are JSON
	e.Use(SetNoCacheHeaders)  // Prevent caching of API responses

	// Optional API key authentication
	if cfg.APIKey != "" {
		e.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "header:X-API-Key",
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == cfg.APIKey, nil
			},
		}))
	}

	api := e.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/tokens", h.Tokens)
	api.GET("/prices", h.Prices)
	api.GET("/ws", h.PriceFeed)

	// AI analysis with rate limiting
	aigroup := api.Group("/gemini")
	aigroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(0.5), // 1 request every 2 seconds
		Burst:     3,
		ExpiresIn: 2 * time.Minute,
	})))
	aigroup.POST("/analyze", h.Analyze)

	// Simulated swap lifecycle
	swapGroup := api.Group("/swap")
	swapGroup.POST("/execute", h.SwapExecute)
	swapGroup.GET("/status", h.SwapStatus)
	swapGroup.POST("/reset", h.SwapReset)

	// Per-wallet settings
	api.POST("/settings", h.SettingsSave)
	api.GET("/settings/:walletAddress", h.SettingsGet)

	// Catch-all route for 404 responses
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Code: http.StatusNotFound})
	})
}
