package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

type ReceiptHandler struct {
	db *gorm.DB
}

func NewReceiptHandler(db *gorm.DB) *ReceiptHandler {
	return &ReceiptHandler{db: db}
}

// --------- Requests ---------

type UpdatePaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// --------- Handlers ---------

func (h *ReceiptHandler) List(c *gin.Context) {
	var receipts []models.Receipt
	if err := h.db.Order("created_at DESC").Find(&receipts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_receipts", err.Error())
		return
	}

	c.JSON(http.StatusOK, receipts)
}

func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var receipt models.Receipt
	if err := h.db.First(&receipt, id).Error; err != nil {
		httperr.NotFound(c, "receipt_not_found", "Receipt not found.")
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// UpdatePayment records how a receipt was settled (cash, card, ...).
func (h *ReceiptHandler) UpdatePayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var receipt models.Receipt
	if err := h.db.First(&receipt, id).Error; err != nil {
		httperr.NotFound(c, "receipt_not_found", "Receipt not found.")
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	receipt.PaymentMethod = req.PaymentMethod
	if err := h.db.Save(&receipt).Error; err != nil {
		httperr.Internal(c, "failed_to_update_receipt", err.Error())
		return
	}

	c.JSON(http.StatusOK, receipt)
}
