package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriplan/backend/internal/database"
	"github.com/pageza/nutriplan/backend/internal/middleware"
	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/shopping"
	"github.com/pageza/nutriplan/backend/internal/types"
)

// remediation hints shown next to generation errors
var generationHints = map[shopping.ErrorKind]string{
	shopping.KindInvalidInput:       "Choose a period between 1 and 90 days.",
	shopping.KindNoActiveDiet:       "Create a diet and activate it first.",
	shopping.KindEmptyDiet:          "Add meals and foods to your active diet.",
	shopping.KindNothingToBuy:       "Your inventory already covers this period.",
	shopping.KindPersistenceFailure: "Please try again later or contact support.",
}

type ShoppingListHandler struct {
	generator service.IShoppingListGenerator
	lists     service.IShoppingListService
	limiter   *middleware.RateLimiter
}

func NewShoppingListHandler(generator service.IShoppingListGenerator, lists service.IShoppingListService, limiter *middleware.RateLimiter) *ShoppingListHandler {
	return &ShoppingListHandler{
		generator: generator,
		lists:     lists,
		limiter:   limiter,
	}
}

func (h *ShoppingListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/shopping-lists")
	{
		if h.limiter != nil {
			lists.POST("/generate", h.limiter.RateLimitMiddleware(), h.Generate)
		} else {
			lists.POST("/generate", h.Generate)
		}
		lists.GET("/generation-quota", h.GenerationQuota)
		lists.GET("", h.ListShoppingLists)
		lists.GET("/:id", h.GetShoppingList)
		lists.PATCH("/:id", h.UpdateShoppingList)
		lists.DELETE("/:id", h.DeleteShoppingList)
		lists.PATCH("/:id/items/:itemId", h.UpdateItem)
	}
}

// Generate builds a shopping list from the user's active diet
func (h *ShoppingListHandler) Generate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.GenerateShoppingListRequest
	if body := c.Request.Body; body != nil && body != http.NoBody {
		// chunked requests report ContentLength -1, so decode and accept
		// an empty stream as "no body"
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, types.GenerateShoppingListResponse{
				Error: &types.ErrorDetail{
					Kind:    string(shopping.KindInvalidInput),
					Message: "invalid request body",
					Hint:    generationHints[shopping.KindInvalidInput],
				},
			})
			return
		}
	}
	days := shopping.DefaultDays
	if req.Days != nil {
		days = *req.Days
	}

	result, err := h.generator.Generate(c.Request.Context(), userID, days)
	if err != nil {
		status, detail := generationFailure(err)
		c.JSON(status, types.GenerateShoppingListResponse{Error: detail})
		return
	}

	c.JSON(http.StatusCreated, types.GenerateShoppingListResponse{
		Success:        true,
		ShoppingListID: &result.ShoppingListID,
		ItemsCount:     result.ItemsCount,
	})
}

// GenerationQuota reports the caller's remaining generations
func (h *ShoppingListHandler) GenerationQuota(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if !h.limiter.Enabled() {
		c.JSON(http.StatusOK, types.GenerationQuotaResponse{Limited: false})
		return
	}

	remaining, resetAt, err := h.limiter.GetRemainingRequests(c.Request.Context(), userID.String())
	if err != nil {
		log.Printf("[ShoppingListHandler] failed to read generation quota for user %s: %v", userID, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rate limit status unavailable"})
		return
	}
	c.JSON(http.StatusOK, types.GenerationQuotaResponse{
		Limited:   true,
		Limit:     h.limiter.Limit(),
		Remaining: &remaining,
		ResetAt:   &resetAt,
	})
}

// generationFailure turns a generator error into a status and a message
// the client can act on. Data problems are the user's to fix; anything
// else is a 500.
func generationFailure(err error) (int, *types.ErrorDetail) {
	var genErr *shopping.GenerationError
	if !errors.As(err, &genErr) {
		log.Printf("[ShoppingListHandler] unexpected generation error: %v", err)
		return http.StatusInternalServerError, &types.ErrorDetail{
			Kind:    string(shopping.KindPersistenceFailure),
			Message: "failed to generate shopping list",
			Hint:    generationHints[shopping.KindPersistenceFailure],
		}
	}

	detail := &types.ErrorDetail{
		Kind:    string(genErr.Kind),
		Message: genErr.Message,
		Hint:    generationHints[genErr.Kind],
	}
	if genErr.IsDataError() {
		return http.StatusBadRequest, detail
	}

	log.Printf("[ShoppingListHandler] generation failed: %v", err)
	if database.IsPermissionDenied(err) {
		detail.Message = "the database refused the operation (permission denied)"
		detail.Hint = "Check your account permissions or contact support."
	}
	return http.StatusInternalServerError, detail
}

func (h *ShoppingListHandler) ListShoppingLists(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	lists, err := h.lists.ListShoppingLists(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "fetch shopping lists")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
}

func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	list, err := h.lists.GetShoppingList(c.Request.Context(), userID, listID)
	if err != nil {
		respondError(c, err, "fetch shopping list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_list": list})
}

func (h *ShoppingListHandler) UpdateShoppingList(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req types.UpdateShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.lists.SetCompleted(c.Request.Context(), userID, listID, *req.IsCompleted)
	if err != nil {
		respondError(c, err, "update shopping list")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shopping_list": list})
}

func (h *ShoppingListHandler) UpdateItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "itemId")
	if !ok {
		return
	}
	var req types.UpdateShoppingListItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := h.lists.SetItemPurchased(c.Request.Context(), userID, listID, itemID, *req.IsPurchased)
	if err != nil {
		respondError(c, err, "update shopping list item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *ShoppingListHandler) DeleteShoppingList(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.lists.DeleteShoppingList(c.Request.Context(), userID, listID); err != nil {
		respondError(c, err, "delete shopping list")
		return
	}
	c.Status(http.StatusNoContent)
}
