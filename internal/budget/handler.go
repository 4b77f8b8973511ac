package budget

import (
	"net/http"
	"strconv"

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
// 🎯 Create Budget - POST /budgets
func (h *Handler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), principal, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "budget created successfully", "budget": b})
}

// ===========================
// 📋 List Budgets - GET /budgets
func (h *Handler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	eventID, _ := strconv.ParseUint(c.Query("event_id"), 10, 64)
	filters := ListFilters{
		EventID: uint(eventID),
		Status:  c.Query("status"),
	}

	page, err := h.service.List(c.Request.Context(), principal, filters, common.ParsePagination(c))
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// ===========================
// 🔍 Get Budget - GET /budgets/:id
func (h *Handler) Get(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}

	b, err := h.service.Get(c.Request.Context(), principal, id)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"budget":           b,
		"remaining_budget": b.RemainingBudget(),
	})
}

// ===========================
// ✏️ Update Budget - PUT /budgets/:id
func (h *Handler) Update(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	b, err := h.service.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "budget updated successfully", "budget": b})
}

// ===========================
// 💰 Create Item - POST /budgets/:id/items
func (h *Handler) CreateItem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	budgetID, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), principal, budgetID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "budget item created successfully", "item": item})
}

// ===========================
// 📋 List Items - GET /budgets/:id/items
func (h *Handler) ListItems(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	budgetID, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid budget id"})
		return
	}

	page, err := h.service.ListItems(c.Request.Context(), principal, budgetID, common.ParsePagination(c))
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// ===========================
// ✏️ Update Item - PUT /budgets/items/:itemId
func (h *Handler) UpdateItem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	itemID, ok := common.ParseUintParam(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), principal, itemID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "budget item updated successfully", "item": item})
}

// ===========================
// 🗑️ Delete Item - DELETE /budgets/items/:itemId
func (h *Handler) DeleteItem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	itemID, ok := common.ParseUintParam(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), principal, itemID); err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "budget item deleted successfully"})
}

// ===========================
// 🧾 Add Expense - POST /budgets/items/:itemId/expenses
func (h *Handler) AddExpense(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	itemID, ok := common.ParseUintParam(c, "itemId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	e, err := h.service.AddExpense(c.Request.Context(), principal, itemID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "expense recorded successfully", "expense": e})
}
