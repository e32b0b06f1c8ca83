package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriplan/backend/internal/nutrition"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/types"
)

type DietHandler struct {
	diets       service.IDietService
	preferences service.IPreferenceService
}

func NewDietHandler(diets service.IDietService, preferences service.IPreferenceService) *DietHandler {
	return &DietHandler{diets: diets, preferences: preferences}
}

func (h *DietHandler) RegisterRoutes(router *gin.RouterGroup) {
	diets := router.Group("/diets")
	{
		diets.GET("", h.ListDiets)
		diets.POST("", h.CreateDiet)
		diets.GET("/:id", h.GetDiet)
		diets.POST("/:id/activate", h.ActivateDiet)
		diets.GET("/:id/totals", h.GetTotals)
		diets.GET("/:id/tracked-nutrients", h.GetTrackedNutrients)
		diets.PUT("/:id/tracked-nutrients", h.SetTrackedNutrients)
		diets.POST("/:id/meals", h.AddMeal)
	}
	router.POST("/meals/:id/items", h.AddItem)
}

func (h *DietHandler) ListDiets(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	diets, err := h.diets.ListDiets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "fetch diets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"diets": diets})
}

func (h *DietHandler) CreateDiet(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.CreateDietRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	diet, err := h.diets.CreateDiet(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "create diet")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"diet": diet})
}

// GetDiet returns a diet with its meals and items
func (h *DietHandler) GetDiet(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	dietID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	diet, err := h.diets.GetDietWithItems(c.Request.Context(), userID, dietID)
	if err != nil {
		respondError(c, err, "fetch diet")
		return
	}
	c.JSON(http.StatusOK, gin.H{"diet": diet})
}

func (h *DietHandler) ActivateDiet(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	dietID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	diet, err := h.diets.ActivateDiet(c.Request.Context(), userID, dietID)
	if err != nil {
		respondError(c, err, "activate diet")
		return
	}
	c.JSON(http.StatusOK, gin.H{"diet": diet})
}

// GetTotals reports diet and per-meal totals. The nutrients query parameter
// (comma separated) overrides the saved preference for this request.
func (h *DietHandler) GetTotals(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	dietID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	diet, err := h.diets.GetDietWithItems(ctx, userID, dietID)
	if err != nil {
		respondError(c, err, "fetch diet")
		return
	}

	var keys []string
	if q := c.Query("nutrients"); q != "" {
		keys = nutrition.NormalizeTrackedNutrients(strings.Split(q, ","))
	} else if keys, err = h.preferences.GetTrackedNutrients(ctx, diet.ID); err != nil {
		respondError(c, err, "fetch tracked nutrients")
		return
	}

	c.JSON(http.StatusOK, nutrition.SummarizeDiet(diet, keys))
}

func (h *DietHandler) GetTrackedNutrients(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	dietID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.diets.GetDiet(ctx, userID, dietID); err != nil {
		respondError(c, err, "fetch diet")
		return
	}
	keys, err := h.preferences.GetTrackedNutrients(ctx, dietID)
	if err != nil {
		respondError(c, err, "fetch tracked nutrients")
		return
	}
	c.JSON(http.StatusOK, types.TrackedNutrientsResponse{DietID: dietID, NutrientKeys: keys})
}

func (h *DietHandler) SetTrackedNutrients(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	dietID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req types.TrackedNutrientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if _, err := h.diets.GetDiet(ctx, userID, dietID); err != nil {
		respondError(c, err, "fetch diet")
		return
	}
	keys, err := h.preferences.SetTrackedNutrients(ctx, dietID, req.NutrientKeys)
	if err != nil {
		respondError(c, err, "save tracked nutrients")
		return
	}
	c.JSON(http.StatusOK, types.TrackedNutrientsResponse{DietID: dietID, NutrientKeys: keys})
}

func (h *DietHandler) AddMeal(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	dietID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req types.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := h.diets.AddMeal(c.Request.Context(), userID, dietID, &req)
	if err != nil {
		respondError(c, err, "create meal")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

func (h *DietHandler) AddItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	mealID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req types.CreateDietItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.diets.AddItem(c.Request.Context(), userID, mealID, &req)
	if err != nil {
		respondError(c, err, "create diet item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}
