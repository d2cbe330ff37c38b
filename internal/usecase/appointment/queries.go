package appointment

import (
	"context"

	"github.com/tanyourpeach/tan-scheduler/internal/auth"
	domain "github.com/tanyourpeach/tan-scheduler/internal/domain/appointment"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

type AppointmentQueries struct {
	repo domain.Repository
}

func NewAppointmentQueries(repo domain.Repository) *AppointmentQueries {
	return &AppointmentQueries{repo: repo}
}

func (q *AppointmentQueries) Get(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {
	return q.repo.GetAppointment(ctx, id)
}

func (q *AppointmentQueries) ListAll(
	ctx context.Context,
) ([]models.Appointment, error) {
	return q.repo.ListAppointments(ctx)
}

func (q *AppointmentQueries) ListForActor(
	ctx context.Context,
	actor *auth.Actor,
) ([]models.Appointment, error) {
	return q.repo.ListAppointmentsByClient(ctx, actor.Email, actor.UserID)
}
