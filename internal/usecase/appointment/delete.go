package appointment

import (
	"context"

	"github.com/tanyourpeach/tan-scheduler/internal/audit"
	"github.com/tanyourpeach/tan-scheduler/internal/auth"
	domain "github.com/tanyourpeach/tan-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the appointment with its owned history chain and releases
// the slot. Receipts and financial logs are independent records and stay.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id uint,
	actor *auth.Actor,
) error {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return err
	}

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {
		if err := tx.DeleteStatusHistoryFor(ctx, ap.ID); err != nil {
			return err
		}

		av, err := tx.GetAvailability(ctx, ap.AvailabilityID)
		if err == nil && av.IsBooked {
			av.IsBooked = false
			if err := tx.SaveAvailability(ctx, av); err != nil {
				return err
			}
		}

		return tx.DeleteAppointment(ctx, ap)
	})
	if err != nil {
		return err
	}

	var actorID *uint
	if actor != nil {
		actorID = &actor.UserID
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
