package appointment

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tanyourpeach/tan-scheduler/internal/audit"
	"github.com/tanyourpeach/tan-scheduler/internal/db"
	domain "github.com/tanyourpeach/tan-scheduler/internal/domain/appointment"
	"github.com/tanyourpeach/tan-scheduler/internal/infra/repository"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

// newTestEnv opens a per-test in-memory database. The shared-cache DSN keeps
// the database alive across the pool's connections.
func newTestEnv(t *testing.T) (*gorm.DB, *repository.AppointmentGormRepository, *audit.Dispatcher) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	tdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(tdb))

	repo := repository.NewAppointmentGormRepository(tdb)
	dispatcher := audit.NewDispatcher(audit.New(tdb))
	return tdb, repo, dispatcher
}

type fixture struct {
	service models.TanService
	item    models.InventoryItem
	slot    models.Availability
	ap      models.Appointment
}

// seedBooking creates a PENDING appointment on a booked slot for a service
// that consumes qtyUsed gloves per session, with itemQty gloves on hand.
func seedBooking(t *testing.T, tdb *gorm.DB, itemQty, qtyUsed int) *fixture {
	t.Helper()

	f := &fixture{
		service: models.TanService{Name: "Spray Tan", BasePrice: 50, DurationMinutes: 30, IsActive: true},
		item:    models.InventoryItem{Name: "Gloves", Quantity: itemQty},
		slot:    models.Availability{Date: "2026-09-10", StartTime: "10:00", EndTime: "10:30", IsBooked: true},
	}
	require.NoError(t, tdb.Create(&f.service).Error)
	require.NoError(t, tdb.Create(&f.item).Error)
	require.NoError(t, tdb.Create(&f.slot).Error)

	if qtyUsed > 0 {
		usage := models.ServiceInventoryUsage{ServiceID: f.service.ID, ItemID: f.item.ID, QuantityUsed: qtyUsed}
		require.NoError(t, tdb.Create(&usage).Error)
	}

	f.ap = models.Appointment{
		ServiceID:      f.service.ID,
		AvailabilityID: f.slot.ID,
		ClientName:     "Jane Doe",
		ClientEmail:    "jane@example.com",
		ClientAddress:  "123 Sun St",
		Status:         string(domain.StatusPending),
	}
	require.NoError(t, tdb.Create(&f.ap).Error)

	history := models.AppointmentStatusHistory{
		AppointmentID: f.ap.ID,
		Status:        f.ap.Status,
	}
	require.NoError(t, tdb.Create(&history).Error)

	return f
}

func updateInputFrom(ap *models.Appointment, status string) UpdateAppointmentInput {
	return UpdateAppointmentInput{
		ServiceID:      ap.ServiceID,
		AvailabilityID: ap.AvailabilityID,
		ClientName:     ap.ClientName,
		ClientEmail:    ap.ClientEmail,
		ClientAddress:  ap.ClientAddress,
		Status:         status,
	}
}

func countRows[T any](t *testing.T, tdb *gorm.DB, where ...any) int64 {
	t.Helper()

	var model T
	var n int64
	q := tdb.Model(&model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
