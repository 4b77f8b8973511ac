package auditlog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farhanputra/event-management-backend/internal/common"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ===========================
// 📋 List Audit Logs - GET /auditlogs (admin only, enforced in routes)
func (h *Handler) List(c *gin.Context) {
	var filter Filter
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			uid := uint(id)
			filter.UserID = &uid
		}
	}
	if raw := c.Query("event_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			eid := uint(id)
			filter.EventID = &eid
		}
	}
	filter.Action = c.Query("action")
	filter.Status = c.Query("status")
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.FromDate = &t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.ToDate = &t
		}
	}

	page, err := h.service.List(c.Request.Context(), filter, common.ParsePagination(c))
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// ===========================
// 🔍 Get Audit Log - GET /auditlogs/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audit log id"})
		return
	}

	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}
