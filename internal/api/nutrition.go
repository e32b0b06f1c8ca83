package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriplan/backend/internal/nutrition"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// NutritionHandler computes totals for ad-hoc portions
type NutritionHandler struct {
	catalog service.ICatalogService
}

func NewNutritionHandler(catalog service.ICatalogService) *NutritionHandler {
	return &NutritionHandler{catalog: catalog}
}

func (h *NutritionHandler) RegisterRoutes(router *gin.RouterGroup) {
	n := router.Group("/nutrition")
	{
		n.POST("/totals", h.Totals)
		n.GET("/nutrients", h.Nutrients)
		n.GET("/units", h.Units)
	}
}

// Totals answers {key: {value, unit}} for the requested nutrients
func (h *NutritionHandler) Totals(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.NutritionTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keys := req.NutrientKeys
	if len(keys) == 0 {
		keys = nutrition.DefaultTracked()
	}

	items, err := h.catalog.HydrateItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		respondError(c, err, "load products")
		return
	}
	c.JSON(http.StatusOK, nutrition.AggregateAll(items, keys))
}

// Nutrients lists the supported nutrient keys with their labels and units
func (h *NutritionHandler) Nutrients(c *gin.Context) {
	keys := nutrition.KnownNutrients()
	out := make([]gin.H, 0, len(keys))
	for _, k := range keys {
		out = append(out, gin.H{"key": k, "label": nutrition.LabelFor(k), "unit": nutrition.UnitFor(k)})
	}
	c.JSON(http.StatusOK, gin.H{"nutrients": out, "default": nutrition.DefaultTracked()})
}

func (h *NutritionHandler) Units(c *gin.Context) {
	units, err := h.catalog.ListUnits(c.Request.Context())
	if err != nil {
		respondError(c, err, "fetch measurement units")
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units})
}
