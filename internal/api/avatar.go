package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriplan/backend/internal/service"
	"github.com/pageza/nutriplan/backend/internal/types"
)

type AvatarHandler struct {
	avatars service.IAvatarService
}

func NewAvatarHandler(avatars service.IAvatarService) *AvatarHandler {
	return &AvatarHandler{avatars: avatars}
}

func (h *AvatarHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/profile/avatar/upload-url", h.CreateUploadURL)
}

// CreateUploadURL returns a presigned URL the client PUTs the image to
func (h *AvatarHandler) CreateUploadURL(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	upload, err := h.avatars.CreateUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondError(c, err, "create avatar upload URL")
		return
	}
	c.JSON(http.StatusOK, upload)
}
