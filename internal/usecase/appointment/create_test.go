package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanyourpeach/tan-scheduler/internal/auth"
	domain "github.com/tanyourpeach/tan-scheduler/internal/domain/appointment"
	"github.com/tanyourpeach/tan-scheduler/internal/httperr"
	"github.com/tanyourpeach/tan-scheduler/internal/models"
)

func TestCreateBooksSlotAndRecordsHistory(t *testing.T) {
	tdb, repo, dispatcher := newTestEnv(t)

	svc := models.TanService{Name: "Spray Tan", BasePrice: 50, IsActive: true}
	require.NoError(t, tdb.Create(&svc).Error)
	slot := models.Availability{Date: "2026-09-10", StartTime: "10:00", EndTime: "10:30"}
	require.NoError(t, tdb.Create(&slot).Error)

	uc := NewCreateAppointment(repo, dispatcher)
	actor := &auth.Actor{UserID: 8, Email: "jane@example.com"}

	ap, err := uc.Execute(context.Background(), actor, CreateAppointmentInput{
		ServiceID:      svc.ID,
		AvailabilityID: slot.ID,
		ClientName:     "Jane Doe",
		ClientEmail:    "jane@example.com",
		ClientAddress:  "123 Sun St",
	})
	require.NoError(t, err)
	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	require.NotNil(t, ap.UserID)
	assert.Equal(t, uint(8), *ap.UserID)

	var stored models.Availability
	require.NoError(t, tdb.First(&stored, slot.ID).Error)
	assert.True(t, stored.IsBooked)

	var history models.AppointmentStatusHistory
	require.NoError(t, tdb.Where("appointment_id = ?", ap.ID).First(&history).Error)
	assert.Equal(t, string(domain.StatusPending), history.Status)
	require.NotNil(t, history.ChangedByUserID)
	assert.Equal(t, uint(8), *history.ChangedByUserID)
}

func TestCreateAnonymousBooking(t *testing.T) {
	tdb, repo, dispatcher := newTestEnv(t)

	svc := models.TanService{Name: "Spray Tan", BasePrice: 50, IsActive: true}
	require.NoError(t, tdb.Create(&svc).Error)
	slot := models.Availability{Date: "2026-09-10", StartTime: "11:00", EndTime: "11:30"}
	require.NoError(t, tdb.Create(&slot).Error)

	uc := NewCreateAppointment(repo, dispatcher)
	ap, err := uc.Execute(context.Background(), nil, CreateAppointmentInput{
		ServiceID:      svc.ID,
		AvailabilityID: slot.ID,
		ClientName:     "Walk In",
		ClientEmail:    "walkin@example.com",
		ClientAddress:  "456 Beach Ave",
	})
	require.NoError(t, err)
	assert.Nil(t, ap.UserID)
}

func TestCreateRejectsBookedSlot(t *testing.T) {
	tdb, repo, dispatcher := newTestEnv(t)
	f := seedBooking(t, tdb, 5, 0)

	uc := NewCreateAppointment(repo, dispatcher)
	_, err := uc.Execute(context.Background(), nil, CreateAppointmentInput{
		ServiceID:      f.service.ID,
		AvailabilityID: f.slot.ID,
		ClientName:     "Second Client",
		ClientEmail:    "second@example.com",
		ClientAddress:  "789 Palm Rd",
	})
	require.Error(t, err)
	assert.Equal(t, "slot_already_booked", httperr.BusinessCode(err))

	assert.EqualValues(t, 1, countRows[models.Appointment](t, tdb))
}

func TestCreateRejectsUnknownService(t *testing.T) {
	tdb, repo, dispatcher := newTestEnv(t)

	slot := models.Availability{Date: "2026-09-10", StartTime: "12:00", EndTime: "12:30"}
	require.NoError(t, tdb.Create(&slot).Error)

	uc := NewCreateAppointment(repo, dispatcher)
	_, err := uc.Execute(context.Background(), nil, CreateAppointmentInput{
		ServiceID:      999,
		AvailabilityID: slot.ID,
		ClientName:     "Jane Doe",
		ClientEmail:    "jane@example.com",
		ClientAddress:  "123 Sun St",
	})
	require.Error(t, err)
	assert.Equal(t, "service_not_found", httperr.BusinessCode(err))
}

func TestCreateValidatesClientFields(t *testing.T) {
	_, repo, dispatcher := newTestEnv(t)

	uc := NewCreateAppointment(repo, dispatcher)
	_, err := uc.Execute(context.Background(), nil, CreateAppointmentInput{
		ServiceID:      1,
		AvailabilityID: 1,
		ClientAddress:  "123 Sun St",
	})
	require.Error(t, err)
	assert.Equal(t, "missing_client_name", httperr.BusinessCode(err))
}
