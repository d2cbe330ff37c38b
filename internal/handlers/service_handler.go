package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/audit"
	"github.com/tanyourpeach/tan-scheduler/internal/cache"
	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/middleware"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	cache *cache.Client
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, cache *cache.Client, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, cache: cache, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	BasePrice       float64 `json:"base_price" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	BasePrice       *float64 `json:"base_price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	IsActive        *bool    `json:"is_active,omitempty"`
}

type UsageRowRequest struct {
	ItemID       uint `json:"item_id" binding:"required"`
	QuantityUsed int  `json:"quantity_used" binding:"required,min=1"`
}

// --------- Handlers ---------

// ListActive is the public catalog, served from cache when possible.
func (h *ServiceHandler) ListActive(c *gin.Context) {
	ctx := c.Request.Context()

	if services, ok := h.cache.GetServices(ctx); ok {
		c.JSON(http.StatusOK, services)
		return
	}

	var services []models.TanService
	if err := h.db.
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", err.Error())
		return
	}

	h.cache.SetServices(ctx, services)
	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var svc models.TanService
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.TanService{
		Name:            req.Name,
		Description:     req.Description,
		BasePrice:       req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", err.Error())
		return
	}

	h.cache.InvalidateServices(c.Request.Context())
	h.dispatch(c, "service_created", svc.ID)
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var svc models.TanService
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", err.Error())
		return
	}

	h.cache.InvalidateServices(c.Request.Context())
	h.dispatch(c, "service_updated", svc.ID)
	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var svc models.TanService
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", err.Error())
		return
	}

	h.cache.InvalidateServices(c.Request.Context())
	h.dispatch(c, "service_deleted", svc.ID)
	c.Status(http.StatusNoContent)
}

// --------- Inventory usage configuration ---------

func (h *ServiceHandler) GetUsage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var usages []models.ServiceInventoryUsage
	if err := h.db.
		Preload("Item").
		Where("service_id = ?", id).
		Find(&usages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_usage", err.Error())
		return
	}

	c.JSON(http.StatusOK, usages)
}

// PutUsage replaces the usage configuration for a service in one shot.
func (h *ServiceHandler) PutUsage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var svc models.TanService
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var rows []UsageRowRequest
	if err := c.ShouldBindJSON(&rows); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	for _, row := range rows {
		var count int64
		h.db.Model(&models.InventoryItem{}).Where("id = ?", row.ItemID).Count(&count)
		if count == 0 {
			httperr.BadRequest(c, "item_not_found", "Unknown inventory item.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("service_id = ?", svc.ID).
			Delete(&models.ServiceInventoryUsage{}).Error; err != nil {
			return err
		}

		for _, row := range rows {
			usage := models.ServiceInventoryUsage{
				ServiceID:    svc.ID,
				ItemID:       row.ItemID,
				QuantityUsed: row.QuantityUsed,
			}
			if err := tx.Create(&usage).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_usage", err.Error())
		return
	}

	h.dispatch(c, "service_usage_updated", svc.ID)
	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) dispatch(c *gin.Context, action string, entityID uint) {
	actor := middleware.ActorFrom(c)
	var userID *uint
	if actor != nil {
		userID = &actor.UserID
	}
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "service",
		EntityID: &entityID,
	})
}
