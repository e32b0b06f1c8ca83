package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/nutriplan/backend/internal/database"
	"github.com/pageza/nutriplan/backend/internal/middleware"
	"github.com/pageza/nutriplan/backend/internal/service"
)

// HealthCheck returns the health status of the API and its database
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "database unavailable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "NutriPlan API is running",
			"version": "v1.0.0",
		})
	}
}

// Services are the dependencies of the v1 handlers
type Services struct {
	Generator     service.IShoppingListGenerator
	ShoppingLists service.IShoppingListService
	Diets         service.IDietService
	Preferences   service.IPreferenceService
	Inventory     service.IInventoryService
	Catalog       service.ICatalogService
	Avatars       service.IAvatarService
}

// RegisterRoutes mounts every authenticated v1 route on group
func RegisterRoutes(group *gin.RouterGroup, svc Services, generateLimiter *middleware.RateLimiter) {
	NewShoppingListHandler(svc.Generator, svc.ShoppingLists, generateLimiter).RegisterRoutes(group)
	NewNutritionHandler(svc.Catalog).RegisterRoutes(group)
	NewDietHandler(svc.Diets, svc.Preferences).RegisterRoutes(group)
	NewInventoryHandler(svc.Inventory).RegisterRoutes(group)
	NewAvatarHandler(svc.Avatars).RegisterRoutes(group)
}
