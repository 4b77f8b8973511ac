package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ===========================
// 📋 List Notifications - GET /notifications
func (h *Handler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	unreadOnly := c.Query("unread_only") == "true"
	page, err := h.service.List(c.Request.Context(), principal.UserID, unreadOnly, common.ParsePagination(c))
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// ===========================
// 🔢 Unread Count - GET /notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), principal.UserID)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// ===========================
// ✅ Mark Read - PATCH /notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, principal.UserID); err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// ===========================
// 📱 Register Device - POST /notifications/devices
func (h *Handler) RegisterDevice(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.service.RegisterDevice(c.Request.Context(), principal.UserID, req); err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "device registered successfully"})
}

// ===========================
// 🗑️ Remove Device - DELETE /notifications/devices
func (h *Handler) RemoveDevice(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if err := h.service.RemoveDevice(c.Request.Context(), principal.UserID, req.Token); err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "device removed successfully"})
}
