package reports

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
// 📊 Export Budget - GET /budgets/:id/export?format=xlsx|pdf|csv
func (h *Handler) ExportBudget(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}

	format := c.DefaultQuery("format", FormatExcel)
	data, filename, contentType, err := h.service.BudgetExport(c.Request.Context(), principal, id, format)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

// ===========================
// 📊 Export Guest List - GET /events/:id/guests/export?format=xlsx|csv
func (h *Handler) ExportGuestList(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)
	data, filename, contentType, err := h.service.GuestListExport(c.Request.Context(), principal, id, format)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
