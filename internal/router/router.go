package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/api"
	"github.com/pageza/nutriplan/backend/internal/middleware"
)

// SetupRouter configures the application routes. generateLimiter may be nil.
func SetupRouter(
	db *gorm.DB,
	validator middleware.TokenValidator,
	services api.Services,
	generateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Health check endpoint (no auth required)
	router.GET("/health", api.HealthCheck(db))

	v1 := router.Group("/api/v1")
	v1.GET("/health", api.HealthCheck(db))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	api.RegisterRoutes(protected, services, generateLimiter)

	return router
}
