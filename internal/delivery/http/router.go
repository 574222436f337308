package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "stockfolio/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler      *AuthHandler
	PortfolioHandler *PortfolioHandler
	TradeHandler     *TradeHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for health checks to reduce noise
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "stockfolio-api",
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
	}

	// User routes (protected with AuthMiddleware)
	user := api.Group("/user", custommiddleware.AuthMiddleware)
	{
		user.GET("/me", config.AuthHandler.GetMe)
		user.POST("/password", config.AuthHandler.ChangePassword)
	}

	// Quote and portfolio routes (protected)
	protected := api.Group("", custommiddleware.AuthMiddleware)
	{
		protected.GET("/quote/:symbol", config.PortfolioHandler.GetQuote)
		protected.GET("/portfolio", config.PortfolioHandler.GetPortfolio)
		protected.GET("/portfolio/history", config.PortfolioHandler.GetHistory)
		protected.GET("/portfolio/symbols", config.PortfolioHandler.GetSymbols)
		protected.POST("/trade/buy", config.TradeHandler.Buy)
		protected.POST("/trade/sell", config.TradeHandler.Sell)
	}
}
