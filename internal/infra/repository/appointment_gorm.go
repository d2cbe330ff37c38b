package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/tanyourpeach/tan-scheduler/internal/domain/appointment"
	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewAppointmentGormRepository(tx))
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Availability").
		Order("appointment_date_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByClient(
	ctx context.Context,
	email string,
	userID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Availability").
		Where("client_email = ? OR user_id = ?", email, userID).
		Order("appointment_date_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	if isUniqueViolation(err) {
		return httperr.ErrBusiness("slot_already_booked")
	}
	return err
}

func (r *AppointmentGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(ap).Error
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.TanService, error) {

	var svc models.TanService
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetAvailability(
	ctx context.Context,
	id uint,
) (*models.Availability, error) {

	var av models.Availability
	if err := r.db.WithContext(ctx).First(&av, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("availability_not_found")
		}
		return nil, err
	}
	return &av, nil
}

func (r *AppointmentGormRepository) SaveAvailability(
	ctx context.Context,
	av *models.Availability,
) error {
	return r.db.WithContext(ctx).Save(av).Error
}

// --------------------------------------------------
// Status history
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateStatusHistory(
	ctx context.Context,
	h *models.AppointmentStatusHistory,
) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *AppointmentGormRepository) DeleteStatusHistoryFor(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.AppointmentStatusHistory{}).Error
}

// --------------------------------------------------
// Receipt / financial log
// --------------------------------------------------

// GetReceiptByAppointment returns (nil, nil) when no receipt exists.
func (r *AppointmentGormRepository) GetReceiptByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Receipt, error) {

	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&receipt).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *AppointmentGormRepository) CreateReceipt(
	ctx context.Context,
	receipt *models.Receipt,
) error {
	err := r.db.WithContext(ctx).Create(receipt).Error
	if isUniqueViolation(err) {
		// A concurrent confirmation already issued the receipt.
		return httperr.ErrBusiness("receipt_already_exists")
	}
	return err
}

func (r *AppointmentGormRepository) CreateFinancialLog(
	ctx context.Context,
	l *models.FinancialLog,
) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// --------------------------------------------------
// Inventory (inventory.Store)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListUsages(
	ctx context.Context,
	serviceID uint,
) ([]models.ServiceInventoryUsage, error) {

	var usages []models.ServiceInventoryUsage
	if err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

func (r *AppointmentGormRepository) GetItem(
	ctx context.Context,
	itemID uint,
) (*models.InventoryItem, error) {

	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("item_not_found")
		}
		return nil, err
	}
	return &item, nil
}

// DeductItem subtracts qty in a single conditional update so concurrent
// confirmations cannot drive the quantity negative. Zero rows affected
// means the stock check lost a race and the caller must roll back.
func (r *AppointmentGormRepository) DeductItem(
	ctx context.Context,
	itemID uint,
	qty int,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND quantity >= ?", itemID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("insufficient_inventory")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
