package appointment

import (
	"context"

	"github.com/tanyourpeach/tan-scheduler/internal/domain/inventory"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

// Repository is the persistence surface of the appointment workflow. It
// embeds the inventory store so the ledger can run against the same
// transaction as the rest of a confirmation.
type Repository interface {
	inventory.Store

	// InTx runs fn against a repository bound to one database transaction;
	// any error rolls the whole unit of work back.
	InTx(ctx context.Context, fn func(Repository) error) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListAppointmentsByClient(
		ctx context.Context,
		email string,
		userID uint,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- References --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.TanService, error)

	GetAvailability(
		ctx context.Context,
		id uint,
	) (*models.Availability, error)

	SaveAvailability(
		ctx context.Context,
		av *models.Availability,
	) error

	// -------- Status history --------
	CreateStatusHistory(
		ctx context.Context,
		h *models.AppointmentStatusHistory,
	) error

	DeleteStatusHistoryFor(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Confirmation side effects --------
	GetReceiptByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Receipt, error)

	CreateReceipt(
		ctx context.Context,
		r *models.Receipt,
	) error

	CreateFinancialLog(
		ctx context.Context,
		l *models.FinancialLog,
	) error
}
