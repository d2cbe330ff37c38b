package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/cache"
	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

type AvailabilityHandler struct {
	db    *gorm.DB
	cache *cache.Client
}

func NewAvailabilityHandler(db *gorm.DB, cache *cache.Client) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, cache: cache}
}

// --------- Requests ---------

type CreateAvailabilityRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateAvailabilityRequest struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

func validSlotTimes(date, start, end string) bool {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return false
	}
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return s.Before(e)
}

// --------- Handlers ---------

// ListOpen returns the bookable slots. This is the public surface the
// booking page polls, so it goes through the cache.
func (h *AvailabilityHandler) ListOpen(c *gin.Context) {
	ctx := c.Request.Context()

	if slots, ok := h.cache.GetOpenSlots(ctx); ok {
		c.JSON(http.StatusOK, slots)
		return
	}

	var slots []models.Availability
	if err := h.db.
		Where("is_booked = ?", false).
		Order("date ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_availability", err.Error())
		return
	}

	h.cache.SetOpenSlots(ctx, slots)
	c.JSON(http.StatusOK, slots)
}

// ListAll is the admin view, booked slots included.
func (h *AvailabilityHandler) ListAll(c *gin.Context) {
	var slots []models.Availability
	if err := h.db.
		Order("date ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	var req CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validSlotTimes(req.Date, req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_slot_times", "Start time must be before end time.")
		return
	}

	slot := models.Availability{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_availability", err.Error())
		return
	}

	h.cache.InvalidateOpenSlots(c.Request.Context())
	c.JSON(http.StatusCreated, slot)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var slot models.Availability
	if err := h.db.First(&slot, id).Error; err != nil {
		httperr.NotFound(c, "availability_not_found", "Slot not found.")
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Date != nil {
		slot.Date = *req.Date
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}

	if !validSlotTimes(slot.Date, slot.StartTime, slot.EndTime) {
		httperr.BadRequest(c, "invalid_slot_times", "Start time must be before end time.")
		return
	}

	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_update_availability", err.Error())
		return
	}

	h.cache.InvalidateOpenSlots(c.Request.Context())
	c.JSON(http.StatusOK, slot)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var slot models.Availability
	if err := h.db.First(&slot, id).Error; err != nil {
		httperr.NotFound(c, "availability_not_found", "Slot not found.")
		return
	}

	if slot.IsBooked {
		httperr.BadRequest(c, "slot_booked", "Cannot delete a booked slot.")
		return
	}

	if err := h.db.Delete(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_availability", err.Error())
		return
	}

	h.cache.InvalidateOpenSlots(c.Request.Context())
	c.Status(http.StatusNoContent)
}
