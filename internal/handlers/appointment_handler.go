package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tanyourpeach/tan-scheduler/internal/auth"
	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/middleware"
	ucAppointment "github.com/tanyourpeach/tan-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	deleteUC *ucAppointment.DeleteAppointment
	queries  *ucAppointment.AppointmentQueries
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	queries *ucAppointment.AppointmentQueries,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		queries:  queries,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	ServiceID      uint `json:"service_id"`
	AvailabilityID uint `json:"availability_id"`

	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email" binding:"omitempty,email"`
	ClientAddress string `json:"client_address"`

	AppointmentDateTime time.Time `json:"appointment_date_time"`

	Status string `json:"status"`

	TravelFee  *float64 `json:"travel_fee"`
	TotalPrice *float64 `json:"total_price"`
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

// writeAppointmentError translates the workflow's error kinds into the
// transport taxonomy: not-found 404, validation and business rules 400,
// anything else 500 with the message exposed.
func writeAppointmentError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	switch code {
	case "appointment_not_found":
		httperr.NotFound(c, code, "Appointment not found.")
	case "missing_client_name":
		httperr.BadRequest(c, code, "Client name is required.")
	case "missing_client_address":
		httperr.BadRequest(c, code, "Client address is required.")
	case "missing_service", "service_not_found":
		httperr.BadRequest(c, code, "A valid service is required.")
	case "missing_availability", "availability_not_found":
		httperr.BadRequest(c, code, "A valid availability slot is required.")
	case "slot_already_booked":
		httperr.BadRequest(c, code, "The slot is already booked.")
	case "invalid_status":
		httperr.BadRequest(c, code, "Unknown appointment status.")
	case "insufficient_inventory":
		httperr.BadRequest(c, code, "Not enough inventory to confirm this appointment.")
	case "receipt_already_exists":
		httperr.BadRequest(c, code, "A receipt already exists for this appointment.")
	default:
		httperr.Internal(c, "internal_error", err.Error())
	}
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if !auth.CanAccess(actor, auth.AdminResource(), auth.ActionList) {
		httperr.Forbidden(c, "forbidden", "Admin role required.")
		return
	}

	aps, err := h.queries.ListAll(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "internal_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) MyAppointments(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		httperr.Unauthorized(c, "unauthorized", "Authentication required.")
		return
	}

	aps, err := h.queries.ListForActor(c.Request.Context(), actor)
	if err != nil {
		httperr.Internal(c, "internal_error", err.Error())
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	actor := middleware.ActorFrom(c)
	if !auth.CanAccess(actor, auth.AppointmentResource(ap), auth.ActionRead) {
		httperr.Forbidden(c, "forbidden", "Not allowed to view this appointment.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	actor := middleware.ActorFrom(c)

	ap, err := h.createUC.Execute(c.Request.Context(), actor, ucAppointment.CreateAppointmentInput{
		ServiceID:           req.ServiceID,
		AvailabilityID:      req.AvailabilityID,
		ClientName:          req.ClientName,
		ClientEmail:         req.ClientEmail,
		ClientAddress:       req.ClientAddress,
		AppointmentDateTime: req.AppointmentDateTime,
		TravelFee:           req.TravelFee,
		TotalPrice:          req.TotalPrice,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// UPDATE (status transitions included)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	actor := middleware.ActorFrom(c)
	if !auth.CanAccess(actor, auth.AppointmentResource(ap), auth.ActionUpdate) {
		httperr.Forbidden(c, "forbidden", "Not allowed to update this appointment.")
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Status == "" {
		req.Status = ap.Status
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), id, actor, ucAppointment.UpdateAppointmentInput{
		ServiceID:           req.ServiceID,
		AvailabilityID:      req.AvailabilityID,
		ClientName:          req.ClientName,
		ClientEmail:         req.ClientEmail,
		ClientAddress:       req.ClientAddress,
		AppointmentDateTime: req.AppointmentDateTime,
		Status:              req.Status,
		TravelFee:           req.TravelFee,
		TotalPrice:          req.TotalPrice,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	actor := middleware.ActorFrom(c)
	if !auth.CanAccess(actor, auth.AdminResource(), auth.ActionDelete) {
		httperr.Forbidden(c, "forbidden", "Admin role required.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, actor); err != nil {
		writeAppointmentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
