package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tanyourpeach/tan-scheduler/internal/audit"
	"github.com/tanyourpeach/tan-scheduler/internal/auth"
	domain "github.com/tanyourpeach/tan-scheduler/internal/domain/appointment"
	"github.com/tanyourpeach/tan-scheduler/internal/domain/inventory"
	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/metrics"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type UpdateAppointmentInput struct {
	ServiceID      uint
	AvailabilityID uint

	ClientName    string
	ClientEmail   string
	ClientAddress string

	AppointmentDateTime time.Time

	Status string

	TravelFee  *float64
	TotalPrice *float64
}

// ======================================================
// USE CASE
// ======================================================

// UpdateAppointment applies field updates and, when the status changes,
// runs the transition workflow: history append, then on confirmation the
// inventory check and deduction, receipt and revenue log. Everything runs
// in one transaction; an insufficient-inventory failure leaves no writes
// behind.
type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	actor *auth.Actor,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	prevStatus := domain.Status(ap.Status)
	prevServiceID := ap.ServiceID
	prevSlotID := ap.AvailabilityID

	applyFields(ap, in)
	if err := domain.ValidateCore(ap); err != nil {
		return nil, err
	}

	if ap.ServiceID != prevServiceID {
		if _, err := uc.repo.GetService(ctx, ap.ServiceID); err != nil {
			return nil, err
		}
	}

	slotMoved := ap.AvailabilityID != prevSlotID

	// No transition: field updates only, plus the slot swap when the
	// appointment was reassigned.
	if newStatus == prevStatus {
		if !slotMoved {
			if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
				return nil, err
			}
			return ap, nil
		}

		err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
			if err := uc.moveSlot(ctx, tx, prevSlotID, ap, newStatus); err != nil {
				return err
			}
			return tx.SaveAppointment(ctx, ap)
		})
		if err != nil {
			return nil, err
		}
		return ap, nil
	}

	ap.Status = string(newStatus)

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {
		history := models.AppointmentStatusHistory{
			AppointmentID: ap.ID,
			Status:        string(newStatus),
			ChangedAt:     time.Now(),
		}
		if actor != nil {
			history.ChangedByUserID = &actor.UserID
		}
		if err := tx.CreateStatusHistory(ctx, &history); err != nil {
			return err
		}

		if newStatus == domain.StatusConfirmed {
			if err := uc.confirm(ctx, tx, ap); err != nil {
				return err
			}
		}

		if slotMoved {
			if err := uc.moveSlot(ctx, tx, prevSlotID, ap, newStatus); err != nil {
				return err
			}
		}
		if err := uc.syncSlot(ctx, tx, ap, newStatus); err != nil {
			return err
		}

		return tx.SaveAppointment(ctx, ap)
	})
	if err != nil {
		if httperr.IsBusiness(err, "insufficient_inventory") {
			metrics.ConfirmationsRejectedTotal.
				WithLabelValues("insufficient_inventory").Inc()
		}
		return nil, err
	}

	switch newStatus {
	case domain.StatusConfirmed:
		metrics.AppointmentsConfirmedTotal.Inc()
	case domain.StatusCancelled:
		metrics.AppointmentsCancelledTotal.Inc()
	}

	var actorID *uint
	if actor != nil {
		actorID = &actor.UserID
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"from": string(prevStatus),
			"to":   string(newStatus),
		},
	})

	return ap, nil
}

// confirm runs the CONFIRMED side effects. A pre-existing receipt means the
// appointment was already confirmed once: history is still recorded by the
// caller, but no duplicate receipt, log, or deduction is produced.
func (uc *UpdateAppointment) confirm(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
) error {

	existing, err := tx.GetReceiptByAppointment(ctx, ap.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	ledger := inventory.NewLedger(tx)
	if err := ledger.CheckAvailability(ctx, ap.ServiceID); err != nil {
		return err
	}
	if err := ledger.Deduct(ctx, ap.ServiceID); err != nil {
		return err
	}
	metrics.InventoryDeductionsTotal.Inc()

	svc, err := tx.GetService(ctx, ap.ServiceID)
	if err != nil {
		return err
	}
	amount := domain.ReceiptAmount(ap, svc)

	receipt := models.Receipt{
		AppointmentID: ap.ID,
		ReceiptNumber: uuid.NewString(),
		TotalAmount:   amount,
		PaymentMethod: "Unpaid",
	}
	if err := tx.CreateReceipt(ctx, &receipt); err != nil {
		return err
	}
	metrics.ReceiptsIssuedTotal.Inc()

	source := "appointment"
	logEntry := models.FinancialLog{
		Type:        models.FinancialLogTypeRevenue,
		Source:      &source,
		ReferenceID: &ap.ID,
		Description: fmt.Sprintf("Appointment #%d confirmed", ap.ID),
		Amount:      amount,
	}
	return tx.CreateFinancialLog(ctx, &logEntry)
}

// moveSlot handles a reassignment to a different availability: the old slot
// is released and the new one claimed, rejecting slots already held by
// another appointment. A missing old slot is tolerated, matching delete.
func (uc *UpdateAppointment) moveSlot(
	ctx context.Context,
	tx domain.Repository,
	prevSlotID uint,
	ap *models.Appointment,
	status domain.Status,
) error {

	old, err := tx.GetAvailability(ctx, prevSlotID)
	if err == nil && old.IsBooked {
		old.IsBooked = false
		if err := tx.SaveAvailability(ctx, old); err != nil {
			return err
		}
	}

	next, err := tx.GetAvailability(ctx, ap.AvailabilityID)
	if err != nil {
		return err
	}
	if next.IsBooked {
		return httperr.ErrBusiness("slot_already_booked")
	}

	if status.IsActive() {
		next.IsBooked = true
		return tx.SaveAvailability(ctx, next)
	}
	return nil
}

// syncSlot keeps the availability flag in line with the status: active
// statuses hold the slot, a cancellation releases it.
func (uc *UpdateAppointment) syncSlot(
	ctx context.Context,
	tx domain.Repository,
	ap *models.Appointment,
	status domain.Status,
) error {

	av, err := tx.GetAvailability(ctx, ap.AvailabilityID)
	if err != nil {
		return err
	}

	booked := status.IsActive()
	if av.IsBooked == booked {
		return nil
	}

	av.IsBooked = booked
	return tx.SaveAvailability(ctx, av)
}

func applyFields(ap *models.Appointment, in UpdateAppointmentInput) {
	if in.ServiceID != 0 {
		ap.ServiceID = in.ServiceID
	}
	if in.AvailabilityID != 0 {
		ap.AvailabilityID = in.AvailabilityID
	}
	ap.ClientName = in.ClientName
	ap.ClientEmail = in.ClientEmail
	ap.ClientAddress = in.ClientAddress
	if !in.AppointmentDateTime.IsZero() {
		ap.AppointmentDateTime = in.AppointmentDateTime
	}
	if in.TravelFee != nil {
		ap.TravelFee = in.TravelFee
	}
	if in.TotalPrice != nil {
		ap.TotalPrice = in.TotalPrice
	}
}
