package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farhanputra/event-management-backend/internal/common"
	"github.com/farhanputra/event-management-backend/middleware"
	"github.com/farhanputra/event-management-backend/utils"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func parseFilters(c *gin.Context) ListFilters {
	venueID, _ := strconv.ParseUint(c.Query("venue_id"), 10, 64)
	filters := ListFilters{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		EventType: c.Query("event_type"),
		VenueID:   uint(venueID),
	}
	if raw := c.Query("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.From = &t
		}
	}
	if raw := c.Query("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filters.To = &t
		}
	}
	return filters
}

// ===========================
// 🎯 Create Event - POST /events
func (h *Handler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ev, err := h.service.Create(c.Request.Context(), principal, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "event created successfully", "event": ev})
}

// ===========================
// 📋 List Events - GET /events
func (h *Handler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), principal, parseFilters(c), common.ParsePagination(c))
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// ===========================
// 🔍 Get Event - GET /events/:id
func (h *Handler) Get(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ev, err := h.service.Get(c.Request.Context(), principal, id)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ev)
}

// ===========================
// ✏️ Update Event - PUT /events/:id
func (h *Handler) Update(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ev, err := h.service.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event updated successfully", "event": ev})
}

// ===========================
// 🗑️ Delete Event - DELETE /events/:id
func (h *Handler) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal, id); err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
}

// ===========================
// 🖼️ Upload Cover - POST /events/:id/upload-cover
func (h *Handler) UploadCover(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	id, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	url, err := utils.SaveUploadedFile(c, file, "events")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := h.service.SetCoverImage(c.Request.Context(), principal, id, url)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cover image uploaded successfully", "event": ev})
}

// ===========================
// 👥 Guests

func (h *Handler) AddGuest(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	eventID, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req AddGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	g, err := h.service.AddGuest(c.Request.Context(), principal, eventID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "guest invited successfully", "guest": g})
}

func (h *Handler) ListGuests(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	eventID, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	page, err := h.service.ListGuests(c.Request.Context(), principal, eventID, common.ParsePagination(c))
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) UpdateGuest(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	guestID, ok := common.ParseUintParam(c, "guestId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}

	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	g, err := h.service.UpdateGuest(c.Request.Context(), principal, guestID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "guest updated successfully", "guest": g})
}

func (h *Handler) DeleteGuest(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	guestID, ok := common.ParseUintParam(c, "guestId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}

	if err := h.service.DeleteGuest(c.Request.Context(), principal, guestID); err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "guest removed successfully"})
}

func (h *Handler) CheckInGuest(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	guestID, ok := common.ParseUintParam(c, "guestId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return
	}

	g, err := h.service.CheckInGuest(c.Request.Context(), principal, guestID)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "guest checked in", "guest": g})
}

// ===========================
// 🏪 Vendors

func (h *Handler) AddVendor(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	eventID, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req AddVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	v, err := h.service.AddVendor(c.Request.Context(), principal, eventID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "vendor assigned successfully", "vendor": v})
}

func (h *Handler) ListVendors(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	eventID, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	page, err := h.service.ListVendors(c.Request.Context(), principal, eventID, common.ParsePagination(c))
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) UpdateVendor(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	vendorID, ok := common.ParseUintParam(c, "vendorId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendor id"})
		return
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	v, err := h.service.UpdateVendor(c.Request.Context(), principal, vendorID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vendor updated successfully", "vendor": v})
}

func (h *Handler) DeleteVendor(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	vendorID, ok := common.ParseUintParam(c, "vendorId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendor id"})
		return
	}

	if err := h.service.DeleteVendor(c.Request.Context(), principal, vendorID); err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vendor removed successfully"})
}

// ===========================
// 🧑‍💼 Staff

func (h *Handler) AddStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	eventID, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req AddStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	st, err := h.service.AddStaff(c.Request.Context(), principal, eventID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "staff assigned successfully", "staff": st})
}

func (h *Handler) ListStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	eventID, ok := common.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	page, err := h.service.ListStaff(c.Request.Context(), principal, eventID, common.ParsePagination(c))
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	staffID, ok := common.ParseUintParam(c, "staffId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	st, err := h.service.UpdateStaff(c.Request.Context(), principal, staffID, req)
	if err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "staff updated successfully", "staff": st})
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return
	}

	staffID, ok := common.ParseUintParam(c, "staffId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff id"})
		return
	}

	if err := h.service.DeleteStaff(c.Request.Context(), principal, staffID); err != nil {
		c.JSON(common.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "staff removed successfully"})
}
