package appointment

import (
	"context"
	"time"

	"github.com/tanyourpeach/tan-scheduler/internal/audit"
	"github.com/tanyourpeach/tan-scheduler/internal/auth"
	domain "github.com/tanyourpeach/tan-scheduler/internal/domain/appointment"
	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/metrics"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID      uint
	AvailabilityID uint

	ClientName    string
	ClientEmail   string
	ClientAddress string

	AppointmentDateTime time.Time

	TravelFee  *float64
	TotalPrice *float64
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books an appointment: PENDING status, initial history entry, and
// the slot flagged booked, in one transaction. The actor is nil for
// anonymous bookings.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor *auth.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap := &models.Appointment{
		ServiceID:           in.ServiceID,
		AvailabilityID:      in.AvailabilityID,
		ClientName:          in.ClientName,
		ClientEmail:         in.ClientEmail,
		ClientAddress:       in.ClientAddress,
		AppointmentDateTime: in.AppointmentDateTime,
		Status:              string(domain.InitialStatus()),
		TravelFee:           in.TravelFee,
		TotalPrice:          in.TotalPrice,
	}
	if actor != nil {
		ap.UserID = &actor.UserID
	}

	if err := domain.ValidateCore(ap); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetService(ctx, in.ServiceID); err != nil {
		return nil, err
	}

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		av, err := tx.GetAvailability(ctx, in.AvailabilityID)
		if err != nil {
			return err
		}
		if av.IsBooked {
			return httperr.ErrBusiness("slot_already_booked")
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		history := models.AppointmentStatusHistory{
			AppointmentID: ap.ID,
			Status:        ap.Status,
			ChangedAt:     time.Now(),
			ChangedByUserID: func() *uint {
				if actor != nil {
					return &actor.UserID
				}
				return nil
			}(),
		}
		if err := tx.CreateStatusHistory(ctx, &history); err != nil {
			return err
		}

		av.IsBooked = true
		return tx.SaveAvailability(ctx, av)
	})
	if err != nil {
		return nil, err
	}

	metrics.AppointmentsCreatedTotal.Inc()

	uc.audit.Dispatch(audit.Event{
		UserID:   ap.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
