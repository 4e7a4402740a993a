package http

import (
	"github.com/gin-gonic/gin"
	"github.com/shopsight/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		analytics := v1.Group("/analytics")
		{
			analytics.POST("/dataset", handler.SubmitDataset)
			analytics.POST("/recommendations/products", handler.RecommendProducts)
			analytics.POST("/recommendations/users", handler.RecommendForUser)
			analytics.GET("/forecast", handler.GetForecast)
		}
	}

	return router
}
