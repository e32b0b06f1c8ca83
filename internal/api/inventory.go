package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/types"
)

type InventoryHandler struct {
	inventory service.IInventoryService
}

func NewInventoryHandler(inventory service.IInventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inv := router.Group("/inventory")
	{
		inv.GET("", h.ListInventory)
		inv.POST("", h.AddEntry)
		inv.DELETE("/:id", h.RemoveEntry)
	}
}

func (h *InventoryHandler) ListInventory(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entries, err := h.inventory.ListInventory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "fetch inventory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": entries})
}

func (h *InventoryHandler) AddEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.inventory.AddEntry(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err, "create inventory entry")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *InventoryHandler) RemoveEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	entryID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.inventory.RemoveEntry(c.Request.Context(), userID, entryID); err != nil {
		respondError(c, err, "delete inventory entry")
		return
	}
	c.Status(http.StatusNoContent)
}
