package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

type FinancialLogHandler struct {
	db *gorm.DB
}

func NewFinancialLogHandler(db *gorm.DB) *FinancialLogHandler {
	return &FinancialLogHandler{db: db}
}

// --------- Requests ---------

// Amount is a pointer so a missing amount is distinguishable from zero;
// Source stays nullable on purpose.
type FinancialLogRequest struct {
	Type        string   `json:"type"`
	Source      *string  `json:"source"`
	ReferenceID *uint    `json:"reference_id"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
}

func (r *FinancialLogRequest) validate() (string, bool) {
	if r.Type != models.FinancialLogTypeRevenue && r.Type != models.FinancialLogTypeExpense {
		return "type must be revenue or expense", false
	}
	if r.Amount == nil {
		return "amount is required", false
	}
	if *r.Amount < 0 {
		return "amount must be non-negative", false
	}
	return "", true
}

// --------- Handlers ---------

func (h *FinancialLogHandler) List(c *gin.Context) {
	q := h.db.Model(&models.FinancialLog{})

	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}
	if source := c.Query("source"); source != "" {
		q = q.Where("source = ?", source)
	}

	var logs []models.FinancialLog
	if err := q.Order("created_at DESC").Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_logs", err.Error())
		return
	}

	c.JSON(http.StatusOK, logs)
}

func (h *FinancialLogHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var entry models.FinancialLog
	if err := h.db.First(&entry, id).Error; err != nil {
		httperr.NotFound(c, "log_not_found", "Financial log not found.")
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *FinancialLogHandler) Create(c *gin.Context) {
	var req FinancialLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if msg, ok := req.validate(); !ok {
		httperr.BadRequest(c, "invalid_financial_log", msg)
		return
	}

	entry := models.FinancialLog{
		Type:        req.Type,
		Source:      req.Source,
		ReferenceID: req.ReferenceID,
		Description: req.Description,
		Amount:      *req.Amount,
	}

	if err := h.db.Create(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_create_log", err.Error())
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *FinancialLogHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req FinancialLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if msg, ok := req.validate(); !ok {
		httperr.BadRequest(c, "invalid_financial_log", msg)
		return
	}

	var entry models.FinancialLog
	if err := h.db.First(&entry, id).Error; err != nil {
		httperr.NotFound(c, "log_not_found", "Financial log not found.")
		return
	}

	entry.Type = req.Type
	entry.Source = req.Source
	entry.ReferenceID = req.ReferenceID
	entry.Description = req.Description
	entry.Amount = *req.Amount

	if err := h.db.Save(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_update_log", err.Error())
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *FinancialLogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var entry models.FinancialLog
	if err := h.db.First(&entry, id).Error; err != nil {
		httperr.NotFound(c, "log_not_found", "Financial log not found.")
		return
	}

	if err := h.db.Delete(&entry).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_log", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
