package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/audit"
	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/middleware"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

type InventoryHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewInventoryHandler(db *gorm.DB, audit *audit.Dispatcher) *InventoryHandler {
	return &InventoryHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateInventoryItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int     `json:"quantity" binding:"min=0"`
	UnitCost float64 `json:"unit_cost" binding:"min=0"`
}

type UpdateInventoryItemRequest struct {
	Name     *string  `json:"name,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	UnitCost *float64 `json:"unit_cost,omitempty"`
}

type RestockRequest struct {
	Quantity int      `json:"quantity" binding:"required,min=1"`
	UnitCost *float64 `json:"unit_cost,omitempty"`
}

// --------- Handlers ---------

func (h *InventoryHandler) List(c *gin.Context) {
	var items []models.InventoryItem
	if err := h.db.Order("id ASC").Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_inventory", err.Error())
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Inventory item not found.")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	item := models.InventoryItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_item", err.Error())
		return
	}

	h.dispatch(c, "inventory_item_created", item.ID)
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Inventory item not found.")
		return
	}

	var req UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		httperr.BadRequest(c, "negative_quantity", "Quantity cannot be negative.")
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		item.UnitCost = *req.UnitCost
	}

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", err.Error())
		return
	}

	h.dispatch(c, "inventory_item_updated", item.ID)
	c.JSON(http.StatusOK, item)
}

// Restock increments stock and books the purchase as an expense in the
// financial log, in one transaction.
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Inventory item not found.")
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	unitCost := item.UnitCost
	if req.UnitCost != nil {
		unitCost = *req.UnitCost
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.InventoryItem{}).
			Where("id = ?", item.ID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
			return err
		}
		if req.UnitCost != nil {
			if err := tx.Model(&models.InventoryItem{}).
				Where("id = ?", item.ID).
				UpdateColumn("unit_cost", unitCost).Error; err != nil {
				return err
			}
		}

		source := "inventory"
		entry := models.FinancialLog{
			Type:        models.FinancialLogTypeExpense,
			Source:      &source,
			ReferenceID: &item.ID,
			Description: fmt.Sprintf("Restock %s x%d", item.Name, req.Quantity),
			Amount:      unitCost * float64(req.Quantity),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_restock", err.Error())
		return
	}

	if err := h.db.First(&item, id).Error; err != nil {
		httperr.Internal(c, "failed_to_reload_item", err.Error())
		return
	}

	h.dispatch(c, "inventory_item_restocked", item.ID)
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "item_not_found", "Inventory item not found.")
		return
	}

	var usageCount int64
	h.db.Model(&models.ServiceInventoryUsage{}).
		Where("item_id = ?", item.ID).
		Count(&usageCount)
	if usageCount > 0 {
		httperr.BadRequest(c, "item_in_use", "Item is referenced by a service usage row.")
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_item", err.Error())
		return
	}

	h.dispatch(c, "inventory_item_deleted", item.ID)
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) dispatch(c *gin.Context, action string, entityID uint) {
	actor := middleware.ActorFrom(c)
	var userID *uint
	if actor != nil {
		userID = &actor.UserID
	}
	h.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   action,
		Entity:   "inventory_item",
		EntityID: &entityID,
	})
}
