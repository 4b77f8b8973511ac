package ai

import (
	"context"
	"encoding/json"
	"errors"
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
// 🤖 Analyze Event - GET /ai/analyze-event/:id
func (h *Handler) AnalyzeEvent(c *gin.Context) {
	h.relay(c, h.service.AnalyzeEvent)
}

// ===========================
// 📈 Predict Attendance - GET /ai/predict-attendance/:id
func (h *Handler) PredictAttendance(c *gin.Context) {
	h.relay(c, h.service.PredictAttendance)
}

// ===========================
// 💡 Recommendations - GET /ai/recommendations/:id
func (h *Handler) Recommendations(c *gin.Context) {
	h.relay(c, h.service.Recommendations)
}

func (h *Handler) relay(c *gin.Context, fn func(ctx context.Context, p *middleware.Principal, eventID uint) (json.RawMessage, error)) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	result, err := fn(c.Request.Context(), principal, id)
	if err != nil {
		if errors.Is(err, ErrDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}
